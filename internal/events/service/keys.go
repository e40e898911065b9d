package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// SigningKeySize is the size of generated signing keys in bytes.
const SigningKeySize = 32

// LoadSigningKey decodes the configured event signing key. When keyURI is set the
// decoded bytes are a KMS ciphertext and are decrypted with the keeper opened from
// keyURI (gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://).
// An empty encoded key yields a nil key.
func LoadSigningKey(ctx context.Context, encoded, keyURI string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode event signing key: %w", err)
	}

	if keyURI == "" {
		return raw, nil
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer keeper.Close() //nolint:errcheck

	key, err := keeper.Decrypt(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt event signing key: %w", err)
	}

	return key, nil
}

// GenerateSigningKey creates a random signing key and returns its configuration
// value: plain base64, or base64 of the KMS ciphertext when keyURI is set.
func GenerateSigningKey(ctx context.Context, keyURI string) (string, error) {
	key := make([]byte, SigningKeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate signing key: %w", err)
	}

	if keyURI == "" {
		return base64.StdEncoding.EncodeToString(key), nil
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer keeper.Close() //nolint:errcheck

	ciphertext, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt signing key with KMS: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
