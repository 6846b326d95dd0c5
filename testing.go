package encset

// This file provides test utilities for packages and examples that embed a
// Store.

import (
	"context"

	"github.com/hengadev/encset/providers/backend/memory"
	"github.com/hengadev/encset/providers/keys/static"
)

// TestLocalKey is the device key used by NewTestStore.
const TestLocalKey = "encset-test-device-key"

// NewTestStore creates a Store over an in-memory backend with a fixed device
// key, suitable for unit tests.
//
// Example:
//
//	store, err := encset.NewTestStore()
//	if err != nil {
//	    t.Fatal(err)
//	}
//	_ = store.SetValue(ctx, "theme", "dark")
func NewTestStore(opts ...Option) (*Store, error) {
	return NewTestStoreWithBackend(memory.New(), opts...)
}

// NewTestStoreWithBackend creates a Store over backend keyed by TestLocalKey.
func NewTestStoreWithBackend(backend Backend, opts ...Option) (*Store, error) {
	return New(context.Background(), backend, static.New([]byte(TestLocalKey)), opts...)
}
