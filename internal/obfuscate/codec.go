package obfuscate

import (
	"context"
	"encoding/base64"

	"github.com/hengadev/encset/internal/encseterr"
)

// Transformer is the platform byte-transform applied in the middle of the
// value pipeline. The key argument is the group context key.
type Transformer interface {
	Encrypt(ctx context.Context, data, key []byte) ([]byte, error)
	Decrypt(ctx context.Context, data, key []byte) ([]byte, error)
}

// Codec encodes and decodes entries for one secret.
type Codec struct {
	secret      []byte
	transformer Transformer
}

// NewCodec returns a Codec over secret. The secret is copied.
func NewCodec(secret []byte, transformer Transformer) *Codec {
	return &Codec{
		secret:      append([]byte(nil), secret...),
		transformer: transformer,
	}
}

// Hash returns the persisted identifier for rawKey in group.
func (c *Codec) Hash(rawKey, group string) string {
	return KeyedHash(c.secret, rawKey, group)
}

// Encode transforms rawValue into its persisted form. Empty values are
// stored verbatim.
func (c *Codec) Encode(ctx context.Context, rawKey, group, rawValue string) (string, error) {
	if rawValue == "" {
		return rawValue, nil
	}
	k := []byte(c.Hash(rawKey, group))
	xValue := Mix(k, []byte(rawValue))
	xKey := Mix(k, []byte(group))

	encrypted, err := c.transformer.Encrypt(ctx, xValue, xKey)
	if err != nil {
		return "", encseterr.NewTransformError(encseterr.Encode, err)
	}
	return base64.StdEncoding.EncodeToString(Mix(k, encrypted)), nil
}

// Decode reverses Encode.
func (c *Codec) Decode(ctx context.Context, rawKey, group, stored string) (string, error) {
	if stored == "" {
		return stored, nil
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", encseterr.NewInvalidFormatError(rawKey, err)
	}
	k := []byte(c.Hash(rawKey, group))
	xValue := Mix(k, raw)
	xKey := Mix(k, []byte(group))

	decrypted, err := c.transformer.Decrypt(ctx, xValue, xKey)
	if err != nil {
		return "", encseterr.NewTransformError(encseterr.Decode, err)
	}
	return string(Mix(k, decrypted)), nil
}
