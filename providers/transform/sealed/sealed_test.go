package sealed

import (
	"context"
	"errors"
	"testing"

	"github.com/hengadev/encset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyFunc func(context.Context) ([]byte, error)

func (f keyFunc) LocalStorageKey(ctx context.Context) ([]byte, error) { return f(ctx) }

var master = []byte("0123456789abcdef0123456789abcdef")

func TestTransformer_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tr, err := New(master)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		key  []byte
	}{
		{"simple", []byte("hello"), []byte("group-key")},
		{"empty context", []byte("hello"), nil},
		{"empty data", []byte{}, []byte("k")},
		{"binary", []byte{0, 1, 2, 0xff}, []byte{0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := tr.Encrypt(ctx, tt.data, tt.key)
			require.NoError(t, err)
			assert.NotEqual(t, tt.data, sealed)

			plain, err := tr.Decrypt(ctx, sealed, tt.key)
			require.NoError(t, err)
			assert.Equal(t, len(tt.data), len(plain))
			if len(tt.data) > 0 {
				assert.Equal(t, tt.data, plain)
			}
		})
	}
}

func TestTransformer_NonceIsRandom(t *testing.T) {
	ctx := context.Background()
	tr, err := New(master)
	require.NoError(t, err)

	a, err := tr.Encrypt(ctx, []byte("same"), []byte("k"))
	require.NoError(t, err)
	b, err := tr.Encrypt(ctx, []byte("same"), []byte("k"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTransformer_DetectsWrongKeyMaterial(t *testing.T) {
	ctx := context.Background()
	tr, err := New(master)
	require.NoError(t, err)
	sealed, err := tr.Encrypt(ctx, []byte("secret"), []byte("group-a"))
	require.NoError(t, err)

	_, err = tr.Decrypt(ctx, sealed, []byte("group-b"))
	assert.ErrorIs(t, err, encset.ErrTransformFailed)

	other, err := New([]byte("fedcba9876543210fedcba9876543210"))
	require.NoError(t, err)
	_, err = other.Decrypt(ctx, sealed, []byte("group-a"))
	assert.ErrorIs(t, err, encset.ErrTransformFailed)

	tampered := append([]byte(nil), sealed...)
	tampered[len(tampered)-1] ^= 1
	_, err = tr.Decrypt(ctx, tampered, []byte("group-a"))
	assert.ErrorIs(t, err, encset.ErrTransformFailed)

	_, err = tr.Decrypt(ctx, []byte("short"), []byte("group-a"))
	assert.ErrorIs(t, err, encset.ErrTransformFailed)
}

func TestNew_ShortKey(t *testing.T) {
	_, err := New([]byte("short"))
	assert.ErrorIs(t, err, encset.ErrInvalidConfiguration)
}

func TestFromKeyProvider(t *testing.T) {
	ctx := context.Background()

	tr, err := FromKeyProvider(ctx, keyFunc(func(context.Context) ([]byte, error) { return master, nil }))
	require.NoError(t, err)
	assert.NotNil(t, tr)

	_, err = FromKeyProvider(ctx, keyFunc(func(context.Context) ([]byte, error) { return nil, errors.New("locked") }))
	assert.ErrorIs(t, err, encset.ErrKeyUnavailable)
}
