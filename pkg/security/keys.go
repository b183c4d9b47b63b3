package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const contentKeyBytes = 32

// ErrSealedKeyMalformed signals a sealed key string that cannot be opened.
var ErrSealedKeyMalformed = errors.New("sealed key is malformed")

// NewContentKey generates a fresh 256-bit content key.
func NewContentKey() ([]byte, error) {
	key := make([]byte, contentKeyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate content key: %w", err)
	}
	return key, nil
}

// DeriveKEK stretches the configured system key into an AES-256 key-encryption
// key. The info string binds the derived key to its purpose, so the same
// system key can back more than one sealing context without key reuse.
func DeriveKEK(systemKey, info string) ([]byte, error) {
	if systemKey == "" {
		return nil, errors.New("system key is required")
	}
	reader := hkdf.New(sha256.New, []byte(systemKey), nil, []byte(info))
	kek := make([]byte, contentKeyBytes)
	if _, err := io.ReadFull(reader, kek); err != nil {
		return nil, fmt.Errorf("derive kek: %w", err)
	}
	return kek, nil
}

// SealKey encrypts a content key under the KEK with AES-GCM and returns
// base64(nonce || ciphertext).
func SealKey(kek, contentKey []byte) (string, error) {
	gcm, err := newGCM(kek)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := gcm.Seal(nonce, nonce, contentKey, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenKey reverses SealKey.
func OpenKey(kek []byte, sealed string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, ErrSealedKeyMalformed
	}
	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}
	if len(raw) < gcm.NonceSize() {
		return nil, ErrSealedKeyMalformed
	}
	nonce, ciphertext := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	key, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrSealedKeyMalformed
	}
	return key, nil
}

func newGCM(kek []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("kek must be a valid aes key: %w", err)
	}
	return cipher.NewGCM(block)
}
