package obfuscator

import (
	"crypto/sha256"
	"encoding/binary"
)

const DigestSize = sha256.Size

// Digest hashes the UTF-8 bytes of key with SHA-256.
func Digest(key string) [DigestSize]byte {
	return sha256.Sum256([]byte(key))
}

// Seed is the big-endian value of the first four digest bytes.
func Seed(digest [DigestSize]byte) uint32 {
	return binary.BigEndian.Uint32(digest[:4])
}
