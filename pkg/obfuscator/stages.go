package obfuscator

import (
	"bytes"
	"math/bits"
	"slices"

	"crypticoder-go/pkg/transform"
)

const rotateBits = 3

// Every stage copies its input; callers may keep using the slice they passed in.

type keystreamXOR struct{ digest [DigestSize]byte }

func (s *keystreamXOR) Apply(data []byte) ([]byte, error) {
	out := bytes.Clone(data)
	if out == nil {
		out = []byte{}
	}
	if err := XORKeystream(out, Keystream(s.digest, len(out))); err != nil {
		return nil, err
	}
	return out, nil
}

// XOR is its own inverse.
func (s *keystreamXOR) Reverse(data []byte) ([]byte, error) { return s.Apply(data) }

type substitution struct{ table *SubstitutionTable }

func (s *substitution) Apply(data []byte) ([]byte, error) {
	return substitute(data, &s.table.Forward), nil
}

func (s *substitution) Reverse(data []byte) ([]byte, error) {
	return substitute(data, &s.table.Inverse), nil
}

func substitute(data []byte, table *[256]byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = table[b]
	}
	return out
}

type rotation struct{}

func (rotation) Apply(data []byte) ([]byte, error)   { return rotate(data, rotateBits), nil }
func (rotation) Reverse(data []byte) ([]byte, error) { return rotate(data, -rotateBits), nil }

func rotate(data []byte, k int) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = bits.RotateLeft8(b, k)
	}
	return out
}

type reversal struct{}

func (reversal) Apply(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	slices.Reverse(out)
	return out, nil
}

func (r reversal) Reverse(data []byte) ([]byte, error) { return r.Apply(data) }

// Stages returns the four stages for key in encode order:
// keystream xor, substitution, rotate left by three, reversal.
func Stages(key string) []transform.Transform {
	digest := Digest(key)
	return []transform.Transform{
		&keystreamXOR{digest: digest},
		&substitution{table: NewSubstitutionTable(Seed(digest))},
		rotation{},
		reversal{},
	}
}
