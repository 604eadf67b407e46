package obfuscator

import "errors"

var ErrKeystreamLength = errors.New("obfuscator: keystream length does not match data length")

// Keystream expands digest to n bytes. Byte i is digest[7i mod 32] ^ digest[3i mod 32],
// so the stream repeats every 32 bytes.
func Keystream(digest [DigestSize]byte, n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	ks := make([]byte, n)
	for i := range ks {
		ks[i] = digest[(i*7)%DigestSize] ^ digest[(i*3)%DigestSize]
	}
	return ks
}

// XORKeystream xors ks into buf in place. Both must have the same length.
func XORKeystream(buf, ks []byte) error {
	if len(buf) != len(ks) {
		return ErrKeystreamLength
	}
	for i := range buf {
		buf[i] ^= ks[i]
	}
	return nil
}
