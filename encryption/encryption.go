// Package encryption seals sensitive station settings, such as third-party
// service passwords, with AES-256-GCM before they are persisted.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// MinKeyLength is the minimum length of the key material in bytes.
	MinKeyLength = 32
	// EnvKeyName is the environment variable holding the key material.
	EnvKeyName = "STATIONPREFS_ENCRYPTION_KEY"
)

var (
	ErrInvalidKeyLength  = errors.New("encryption key must be at least 32 bytes")
	ErrKeyNotFound       = errors.New("encryption key not found in environment variable " + EnvKeyName)
	ErrEncryptionFailed  = errors.New("encryption operation failed")
	ErrDecryptionFailed  = errors.New("decryption operation failed")
	ErrInvalidCiphertext = errors.New("invalid ciphertext: too short or malformed")
)

// Manager encrypts and decrypts values with a key derived from the
// configured key material by SHA-256, so any material of MinKeyLength or
// more yields an AES-256 key.
type Manager struct {
	aead cipher.AEAD
}

// NewManager reads the key material from EnvKeyName.
func NewManager() (*Manager, error) {
	material := os.Getenv(EnvKeyName)
	if material == "" {
		return nil, ErrKeyNotFound
	}
	return NewManagerWithKey([]byte(material))
}

// NewManagerWithKey builds a Manager from explicit key material.
func NewManagerWithKey(material []byte) (*Manager, error) {
	if len(material) < MinKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrInvalidKeyLength, len(material), MinKeyLength)
	}

	key := sha256.Sum256(material)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create cipher: %v", ErrEncryptionFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GCM: %v", ErrEncryptionFailed, err)
	}

	return &Manager{aead: aead}, nil
}

// Encrypt returns base64(nonce || ciphertext). The empty string encrypts to itself.
func (m *Manager) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, m.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: failed to generate nonce: %v", ErrEncryptionFailed, err)
	}

	sealed := m.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (m *Manager) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", ErrDecryptionFailed, err)
	}

	nonceSize := m.aead.NonceSize()
	if len(sealed) < nonceSize+m.aead.Overhead() {
		return "", ErrInvalidCiphertext
	}

	nonce, body := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := m.aead.Open(nil, nonce, body, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return string(plaintext), nil
}

// ValidateKey checks the key material in the environment without building a Manager.
func ValidateKey() error {
	material := os.Getenv(EnvKeyName)
	if material == "" {
		return ErrKeyNotFound
	}
	if len(material) < MinKeyLength {
		return fmt.Errorf("%w: got %d bytes, need at least %d", ErrInvalidKeyLength, len(material), MinKeyLength)
	}
	return nil
}
