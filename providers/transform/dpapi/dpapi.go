// Package dpapi provides an encset.Transformer using the Windows Data
// Protection API.
//
// Values are protected for the current Windows user with CryptProtectData;
// the per-group context key is passed as the optional entropy, so a value
// moved to another group cannot be unprotected there.
//
// On other platforms New fails with encset.ErrTransformFailed.
package dpapi

// description is stored in the protected blob.
const description = "encset"

// Transformer protects values with DPAPI for the current user.
type Transformer struct {
	// LocalMachine protects for every user of the machine instead of only
	// the current one.
	LocalMachine bool
}
