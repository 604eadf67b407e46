package obfuscator

import "math/bits"

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// mt19937 is the 32-bit Mersenne Twister, seeded and sampled the way CPython's
// random module does it, so that tables built here match tables built by
// earlier releases written against that generator.
type mt19937 struct {
	state [mtN]uint32
	index int
}

// newMT19937 matches random.seed(seed) for a non-negative integer below 2^32.
func newMT19937(seed uint32) *mt19937 {
	m := &mt19937{}
	m.seedByArray([]uint32{seed})
	return m
}

func (m *mt19937) seedByValue(s uint32) {
	m.state[0] = s
	for i := 1; i < mtN; i++ {
		prev := m.state[i-1]
		m.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	m.index = mtN
}

func (m *mt19937) seedByArray(key []uint32) {
	m.seedByValue(19650218)
	i, j := 1, 0
	k := mtN
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := m.state[i-1]
		m.state[i] = (m.state[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			m.state[0] = m.state[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		prev := m.state[i-1]
		m.state[i] = (m.state[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			m.state[0] = m.state[mtN-1]
			i = 1
		}
	}
	m.state[0] = 0x80000000
	m.index = mtN
}

func (m *mt19937) twist() {
	for i := 0; i < mtN; i++ {
		y := (m.state[i] & mtUpperMask) | (m.state[(i+1)%mtN] & mtLowerMask)
		v := m.state[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			v ^= mtMatrixA
		}
		m.state[i] = v
	}
	m.index = 0
}

func (m *mt19937) Uint32() uint32 {
	if m.index >= mtN {
		m.twist()
	}
	y := m.state[m.index]
	m.index++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// bitsN returns the top k bits of the next output, 0 < k <= 32.
func (m *mt19937) bitsN(k int) uint32 {
	return m.Uint32() >> (32 - k)
}

// below returns a uniform value in [0, n) by rejection sampling on bitlen(n) bits.
func (m *mt19937) below(n int) int {
	k := bits.Len(uint(n))
	r := m.bitsN(k)
	for int(r) >= n {
		r = m.bitsN(k)
	}
	return int(r)
}

// shuffle is an in-place Fisher-Yates walking from the last index down.
func (m *mt19937) shuffle(p []byte) {
	for i := len(p) - 1; i > 0; i-- {
		j := m.below(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}
