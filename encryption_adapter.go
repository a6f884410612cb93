package stationprefs

import (
	"github.com/CreativeUnicorns/stationprefs/encryption"
)

// EncryptionAdapter makes an encryption.Manager usable with WithEncryption.
type EncryptionAdapter struct {
	manager *encryption.Manager
}

// NewEncryptionAdapter reads the key material from the environment and
// fails fast when it is missing or too short.
func NewEncryptionAdapter() (*EncryptionAdapter, error) {
	manager, err := encryption.NewManager()
	if err != nil {
		return nil, err
	}
	return &EncryptionAdapter{manager: manager}, nil
}

// NewEncryptionAdapterWithKey builds an adapter from explicit key material.
func NewEncryptionAdapterWithKey(key []byte) (*EncryptionAdapter, error) {
	manager, err := encryption.NewManagerWithKey(key)
	if err != nil {
		return nil, err
	}
	return &EncryptionAdapter{manager: manager}, nil
}

func (e *EncryptionAdapter) Encrypt(plaintext string) (string, error) {
	return e.manager.Encrypt(plaintext)
}

func (e *EncryptionAdapter) Decrypt(encrypted string) (string, error) {
	return e.manager.Decrypt(encrypted)
}
