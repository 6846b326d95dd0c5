package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_ReturnsCopy(t *testing.T) {
	input := []byte("device-key")
	p := New(input)
	input[0] = 'X'

	key, err := p.LocalStorageKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("device-key"), key)

	key[0] = 'Y'
	again, err := p.LocalStorageKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("device-key"), again)
}

func TestProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New([]byte("k")).LocalStorageKey(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
