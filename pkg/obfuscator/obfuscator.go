// Package obfuscator implements a reversible, key-dependent byte scrambler.
//
// It is an obfuscation, not encryption: there is no nonce and no
// authentication, and every input of a given length is combined with the
// same keystream under the same key.
package obfuscator

import (
	"errors"
	"fmt"

	"crypticoder-go/pkg/transform"
)

var ErrEmptyKey = errors.New("obfuscator: key must not be empty")

// Codec holds the stages derived from one key. It implements
// transform.Transform and is safe for concurrent use.
type Codec struct {
	pipeline *transform.Pipeline
}

// New derives a Codec from key.
func New(key string) (*Codec, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return newCodec(key), nil
}

func newCodec(key string) *Codec {
	p, err := transform.NewPipeline(Stages(key)...)
	if err != nil {
		panic(fmt.Sprintf("obfuscator: %v", err)) // Stages is never empty
	}
	return &Codec{pipeline: p}
}

// Apply encodes data.
func (c *Codec) Apply(data []byte) ([]byte, error) { return c.pipeline.Encode(data) }

// Reverse decodes data.
func (c *Codec) Reverse(data []byte) ([]byte, error) { return c.pipeline.Decode(data) }

// Encode scrambles data under key. The result has the same length as data.
func Encode(data []byte, key string) []byte {
	return must(newCodec(key).Apply(data))
}

// Decode undoes Encode for the same key.
func Decode(data []byte, key string) []byte {
	return must(newCodec(key).Reverse(data))
}

// must panics on a stage failure. The keystream is always sized to the
// data, so any error here is a broken stage, not bad input.
func must(out []byte, err error) []byte {
	if err != nil {
		panic(fmt.Sprintf("obfuscator: %v", err))
	}
	return out
}
