//go:build !windows

package dpapi

import (
	"context"
	"fmt"

	"github.com/hengadev/encset"
)

// New fails outside Windows.
func New() (*Transformer, error) {
	return nil, fmt.Errorf("%w: dpapi is only available on windows", encset.ErrTransformFailed)
}

func (t *Transformer) Encrypt(ctx context.Context, data, key []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: dpapi is only available on windows", encset.ErrTransformFailed)
}

func (t *Transformer) Decrypt(ctx context.Context, data, key []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: dpapi is only available on windows", encset.ErrTransformFailed)
}
