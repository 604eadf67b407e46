package obfuscator

import (
	"encoding/hex"
	"errors"
	"testing"
)

func TestDigestAndSeed(t *testing.T) {
	d := Digest("test")
	if got := hex.EncodeToString(d[:]); got != "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08" {
		t.Fatalf("Unexpected digest %s", got)
	}
	if s := Seed(d); s != 2676412545 {
		t.Errorf("Expected seed 2676412545, got %d", s)
	}
	if s := Seed(Digest("")); s != 3820012610 {
		t.Errorf("Expected seed 3820012610 for empty key, got %d", s)
	}
}

func TestKeystreamReference(t *testing.T) {
	ks := Keystream(Digest("test"), 40)
	want := "00e4ad247594a5b4001d77dca3703a75003788117513bcca00b5524fa38c23ad00e4ad247594a5b4"
	if got := hex.EncodeToString(ks); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestKeystreamLength(t *testing.T) {
	d := Digest("k")
	for _, n := range []int{-1, 0, 1, 31, 32, 33, 1000} {
		want := n
		if want < 0 {
			want = 0
		}
		if got := len(Keystream(d, n)); got != want {
			t.Errorf("Keystream(%d): expected length %d, got %d", n, want, got)
		}
	}
}

func TestKeystreamPeriod(t *testing.T) {
	ks := Keystream(Digest("period"), 96)
	for i := 32; i < len(ks); i++ {
		if ks[i] != ks[i-32] {
			t.Fatalf("keystream byte %d differs from byte %d", i, i-32)
		}
	}
}

func TestXORKeystreamLengthMismatch(t *testing.T) {
	buf := []byte{1, 2, 3}
	if err := XORKeystream(buf, []byte{1, 2}); !errors.Is(err, ErrKeystreamLength) {
		t.Fatalf("Expected ErrKeystreamLength, got %v", err)
	}
	if buf[0] != 1 || buf[1] != 2 || buf[2] != 3 {
		t.Errorf("buffer modified on error: %v", buf)
	}
}
