package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	apperrors "github.com/allisson/accounts/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// keyService implements KeyService using gocloud.dev/secrets for KMS unwrapping.
type keyService struct{}

// NewKeyService creates a new key service instance.
func NewKeyService() KeyService {
	return &keyService{}
}

// LoadKey decodes base64 key material from configuration. When both
// encryptedKey and keyURI are set, the decoded material is treated as KMS
// ciphertext and decrypted through the keeper at keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *keyService) LoadKey(
	ctx context.Context,
	plainKey, encryptedKey, keyURI string,
) ([]byte, error) {
	if encryptedKey != "" && keyURI != "" {
		ciphertext, err := base64.StdEncoding.DecodeString(encryptedKey)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to decode encrypted key")
		}

		keeper, err := secrets.OpenKeeper(ctx, keyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			_ = keeper.Close()
		}()

		key, err := keeper.Decrypt(ctx, ciphertext)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt key with KMS: %w", err)
		}
		return key, nil
	}

	if plainKey == "" {
		return nil, apperrors.New("no key material configured")
	}

	key, err := base64.StdEncoding.DecodeString(plainKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode key")
	}
	if len(key) < 32 {
		return nil, apperrors.New("key must be at least 32 bytes")
	}

	return key, nil
}
