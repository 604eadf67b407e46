package obfuscator

const shufflePasses = 8

// SubstitutionTable is a key-derived permutation of the byte values and its inverse.
type SubstitutionTable struct {
	Forward [256]byte
	Inverse [256]byte
}

// NewSubstitutionTable shuffles the identity permutation eight times with a
// generator owned by this call. Equal seeds give equal tables.
func NewSubstitutionTable(seed uint32) *SubstitutionTable {
	rng := newMT19937(seed)

	t := &SubstitutionTable{}
	for i := range t.Forward {
		t.Forward[i] = byte(i)
	}
	for pass := 0; pass < shufflePasses; pass++ {
		rng.shuffle(t.Forward[:])
	}
	for i, v := range t.Forward {
		t.Inverse[v] = byte(i)
	}
	return t
}

// Valid reports whether Forward is a permutation and Inverse undoes it.
func (t *SubstitutionTable) Valid() bool {
	var seen [256]bool
	for i, v := range t.Forward {
		if seen[v] || t.Inverse[v] != byte(i) {
			return false
		}
		seen[v] = true
	}
	return true
}
