package obfuscate

import (
	"crypto/sha1"
	"encoding/hex"
)

// SecretSize is the length of a derived secret in bytes.
const SecretSize = sha1.Size

// DeriveSecret mixes the device-local key with the application seed and
// digests the result into the per-store secret.
func DeriveSecret(seed, localKey []byte) []byte {
	sum := sha1.Sum(Mix(seed, localKey))
	return sum[:]
}

// KeyedHash returns the hex identifier a raw key is persisted under within
// group. The same key in a different group maps to a different identifier.
func KeyedHash(secret []byte, rawKey, group string) string {
	sum := sha1.Sum(Mix(secret, []byte(rawKey+group)))
	return hex.EncodeToString(Mix([]byte(rawKey), sum[:]))
}
