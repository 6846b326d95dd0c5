package encseterr

import (
	"errors"
	"fmt"
)

var (
	// Store errors
	ErrKeyUnavailable       = errors.New("local storage key unavailable")
	ErrTransformFailed      = errors.New("byte transform failed")
	ErrInvalidFormat        = errors.New("invalid stored value format")
	ErrBackendUnavailable   = errors.New("backing store unavailable")
	ErrBackupFailed         = errors.New("backup failed")
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Group errors
	ErrGroupUnderflow       = errors.New("exit group without matching enter")
	ErrGroupIndexOutOfRange = errors.New("group index out of range")
)

func NewTransformError(action Action, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransformFailed, action, err)
}

func NewInvalidFormatError(key string, err error) error {
	return fmt.Errorf("%w: value for key %q is not valid base64: %w", ErrInvalidFormat, key, err)
}

func NewBackendError(action Action, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, action, err)
}

func NewBackupError(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBackupFailed, path, err)
}

func NewGroupIndexError(index, count int) error {
	return fmt.Errorf("%w: index %d, %d child groups", ErrGroupIndexOutOfRange, index, count)
}
