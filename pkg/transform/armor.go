package transform

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"unicode"
)

// base64Armor turns binary output into text that survives copy and paste.
// Padding is kept so that the output matches what earlier releases displayed.
type base64Armor struct{}

func NewBase64Armor() Transform { return &base64Armor{} }

func (a *base64Armor) Apply(data []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(out, data)
	return out, nil
}

// Reverse ignores whitespace anywhere in data, so wrapped or pasted text
// decodes the same as a single line.
func (a *base64Armor) Reverse(data []byte) ([]byte, error) {
	compact := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)
	out := make([]byte, base64.StdEncoding.DecodedLen(len(compact)))
	n, err := base64.StdEncoding.Decode(out, compact)
	if err != nil {
		return nil, fmt.Errorf("base64 reverse: malformed input: %w", err)
	}
	return out[:n], nil
}
