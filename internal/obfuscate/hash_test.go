package obfuscate

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testSecret = DeriveSecret([]byte("seed"), []byte("local-device-key"))

func TestDeriveSecret(t *testing.T) {
	assert.Len(t, testSecret, SecretSize)
	assert.Equal(t, testSecret, DeriveSecret([]byte("seed"), []byte("local-device-key")))
	assert.NotEqual(t, testSecret, DeriveSecret([]byte("seed"), []byte("other-device-key")))

	// an empty local key still yields a full-length secret
	assert.Len(t, DeriveSecret([]byte("seed"), nil), SecretSize)
}

func TestKeyedHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, KeyedHash(testSecret, "user", ""), KeyedHash(testSecret, "user", ""))
	})

	t.Run("hex of digest length", func(t *testing.T) {
		h := KeyedHash(testSecret, "user", "")
		assert.Len(t, h, 2*sha1.Size)
		_, err := hex.DecodeString(h)
		assert.NoError(t, err)
	})

	t.Run("group changes identifier", func(t *testing.T) {
		assert.NotEqual(t, KeyedHash(testSecret, "user", "a"), KeyedHash(testSecret, "user", "b"))
		assert.NotEqual(t, KeyedHash(testSecret, "user", ""), KeyedHash(testSecret, "user", "a"))
	})

	t.Run("secret changes identifier", func(t *testing.T) {
		other := DeriveSecret([]byte("seed"), []byte("another"))
		assert.NotEqual(t, KeyedHash(testSecret, "user", ""), KeyedHash(other, "user", ""))
	})

	t.Run("empty key is the bare digest", func(t *testing.T) {
		sum := sha1.Sum(Mix(testSecret, []byte("grp")))
		assert.Equal(t, hex.EncodeToString(sum[:]), KeyedHash(testSecret, "", "grp"))
	})
}
