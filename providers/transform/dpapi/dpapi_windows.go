//go:build windows

package dpapi

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/hengadev/encset"
	"golang.org/x/sys/windows"
)

// New returns a DPAPI transformer.
func New() (*Transformer, error) {
	return &Transformer{}, nil
}

func blob(b []byte) *windows.DataBlob {
	if len(b) == 0 {
		return &windows.DataBlob{}
	}
	return &windows.DataBlob{Size: uint32(len(b)), Data: &b[0]}
}

func entropy(key []byte) *windows.DataBlob {
	if len(key) == 0 {
		return nil
	}
	return blob(key)
}

// take copies the output blob and frees the memory DPAPI allocated for it.
func take(out *windows.DataBlob) []byte {
	defer windows.LocalFree(windows.Handle(unsafe.Pointer(out.Data)))
	if out.Size == 0 {
		return []byte{}
	}
	return append([]byte(nil), unsafe.Slice(out.Data, out.Size)...)
}

func (t *Transformer) flags() uint32 {
	flags := uint32(windows.CRYPTPROTECT_UI_FORBIDDEN)
	if t.LocalMachine {
		flags |= windows.CRYPTPROTECT_LOCAL_MACHINE
	}
	return flags
}

func (t *Transformer) Encrypt(ctx context.Context, data, key []byte) ([]byte, error) {
	name, err := windows.UTF16PtrFromString(description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", encset.ErrTransformFailed, err)
	}
	var out windows.DataBlob
	if err := windows.CryptProtectData(blob(data), name, entropy(key), 0, nil, t.flags(), &out); err != nil {
		return nil, fmt.Errorf("%w: CryptProtectData: %w", encset.ErrTransformFailed, err)
	}
	return take(&out), nil
}

func (t *Transformer) Decrypt(ctx context.Context, data, key []byte) ([]byte, error) {
	var out windows.DataBlob
	if err := windows.CryptUnprotectData(blob(data), nil, entropy(key), 0, nil, t.flags(), &out); err != nil {
		return nil, fmt.Errorf("%w: CryptUnprotectData: %w", encset.ErrTransformFailed, err)
	}
	return take(&out), nil
}
