package encset

import (
	"errors"

	"github.com/hengadev/encset/internal/encseterr"
)

var (
	// ErrKeyUnavailable is returned when the KeyProvider cannot supply key material.
	ErrKeyUnavailable = encseterr.ErrKeyUnavailable

	// ErrTransformFailed wraps failures of the configured Transformer.
	ErrTransformFailed = encseterr.ErrTransformFailed

	// ErrInvalidFormat is returned when a stored value is not valid base64.
	// Under a Transformer without an integrity tag, a value written with
	// other key material decodes to garbage without error. Under Identity it
	// decodes to the original plaintext whatever the key material.
	ErrInvalidFormat = encseterr.ErrInvalidFormat

	// ErrBackendUnavailable wraps failures of the Backend.
	ErrBackendUnavailable = encseterr.ErrBackendUnavailable

	// ErrBackupFailed is returned by Sync when the backup could not be written
	// or uploaded. The flush itself has already succeeded at that point.
	ErrBackupFailed = encseterr.ErrBackupFailed

	// ErrInvalidConfiguration is returned by Config validation and providers.
	ErrInvalidConfiguration = encseterr.ErrInvalidConfiguration

	// ErrGroupUnderflow is returned by ExitGroup at the top level.
	ErrGroupUnderflow = encseterr.ErrGroupUnderflow

	// ErrGroupIndexOutOfRange is returned by EnterGroupAt.
	ErrGroupIndexOutOfRange = encseterr.ErrGroupIndexOutOfRange
)

// IsConfigurationError reports whether err stems from invalid configuration.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsStorageError reports whether err stems from the backend or the backup.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrBackendUnavailable) ||
		errors.Is(err, ErrBackupFailed)
}

// IsDecodeError reports whether a stored value could not be turned back
// into plaintext.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrTransformFailed)
}

// IsUsageError reports whether err comes from a group stack misuse.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrGroupUnderflow) ||
		errors.Is(err, ErrGroupIndexOutOfRange)
}
