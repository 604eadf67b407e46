package transform

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

// tagTransform appends a tag byte on Apply and strips it on Reverse.
type tagTransform struct{ tag byte }

func (t *tagTransform) Apply(data []byte) ([]byte, error) {
	out := append([]byte{}, data...)
	return append(out, t.tag), nil
}

func (t *tagTransform) Reverse(data []byte) ([]byte, error) {
	if len(data) == 0 || data[len(data)-1] != t.tag {
		return nil, errors.New("tag mismatch")
	}
	return data[:len(data)-1], nil
}

func TestNewPipelineRequiresStage(t *testing.T) {
	if _, err := NewPipeline(); err == nil {
		t.Fatal("expected error for empty pipeline")
	}
	p, err := NewPipeline(NewNoOpTransform())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	if p.Len() != 1 {
		t.Errorf("Expected 1 stage, got %d", p.Len())
	}
}

func TestPipelineOrder(t *testing.T) {
	p, err := NewPipeline(&tagTransform{'a'}, &tagTransform{'b'}, &tagTransform{'c'})
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	out, err := p.Encode([]byte("x"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(out) != "xabc" {
		t.Fatalf("Expected forward order xabc, got %q", out)
	}
	back, err := p.Decode(out)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(back) != "x" {
		t.Errorf("Expected x after decode, got %q", back)
	}
}

func TestPipelineDecodeError(t *testing.T) {
	p, _ := NewPipeline(&tagTransform{'a'}, &tagTransform{'b'})
	_, err := p.Decode([]byte("xa"))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "transform 1") {
		t.Errorf("Expected failing stage index in error, got %v", err)
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	zt, err := NewZstdTransform(zstd.SpeedFastest)
	if err != nil {
		t.Fatalf("NewZstdTransform failed: %v", err)
	}
	tests := []struct {
		name string
		tr   Transform
	}{
		{"gzip", NewGzipTransform()},
		{"zstd", zt},
	}
	inputs := [][]byte{
		{},
		[]byte("a"),
		[]byte(strings.Repeat("crypticoder ", 200)),
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, in := range inputs {
				c, err := tt.tr.Apply(in)
				if err != nil {
					t.Fatalf("Apply failed: %v", err)
				}
				d, err := tt.tr.Reverse(c)
				if err != nil {
					t.Fatalf("Reverse failed: %v", err)
				}
				if !bytes.Equal(d, in) {
					t.Errorf("round trip mismatch for %d bytes", len(in))
				}
			}
		})
	}
}

func TestGzipReverseRejectsGarbage(t *testing.T) {
	if _, err := NewGzipTransform().Reverse([]byte("not gzip")); err == nil {
		t.Error("expected error for non-gzip input")
	}
}

func TestBase64Armor(t *testing.T) {
	a := NewBase64Armor()
	out, err := a.Apply([]byte{0x10, 0x4a, 0x18})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if string(out) != "EEoY" {
		t.Errorf("Expected EEoY, got %q", out)
	}
	back, err := a.Reverse([]byte("  EEoY\n"))
	if err != nil {
		t.Fatalf("Reverse failed: %v", err)
	}
	if !bytes.Equal(back, []byte{0x10, 0x4a, 0x18}) {
		t.Errorf("Unexpected decode %x", back)
	}
	if _, err := a.Reverse([]byte("@@@")); err == nil {
		t.Error("expected error for malformed base64")
	}
}

func TestBase64ArmorIgnoresInnerWhitespace(t *testing.T) {
	a := NewBase64Armor()
	want := []byte{0x10, 0x4a, 0x18, 0xd6, 0xd6, 0xce, 0xa2, 0x4a, 0x24, 0xd5, 0x1f, 0xdd, 0xd5}
	for _, in := range []string{
		"EEoY1tbOokok1R/d1Q==",
		"EEoY1tbO\nokok1R/d\n1Q==\n",
		"EEoY 1tbO\tokok\r\n1R/d 1Q==",
	} {
		got, err := a.Reverse([]byte(in))
		if err != nil {
			t.Fatalf("Reverse(%q) failed: %v", in, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Reverse(%q) = %x, expected %x", in, got, want)
		}
	}
}
