package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

// Google refresh tokens are sealed with AES-256-GCM before they touch the
// account table. The key comes from REFRESH_TOKEN_ENCRYPTION_KEY and must be
// exactly 32 bytes.

var encryptionKey []byte

// InitCrypto loads and validates the token encryption key
func InitCrypto() error {
	key := os.Getenv("REFRESH_TOKEN_ENCRYPTION_KEY")
	if key == "" {
		return fmt.Errorf("required environment variable REFRESH_TOKEN_ENCRYPTION_KEY is not set")
	}
	if len(key) != 32 {
		return fmt.Errorf("REFRESH_TOKEN_ENCRYPTION_KEY must be exactly 32 bytes long for AES-256 encryption")
	}

	encryptionKey = []byte(key)
	log.Println("Token encryption initialized successfully")
	return nil
}

// tokenCipher builds the AEAD used for refresh token storage
func tokenCipher() (cipher.AEAD, error) {
	if len(encryptionKey) == 0 {
		return nil, errors.New("encryption key not initialized, call InitCrypto first")
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return cipher.NewGCM(block)
}

// EncryptRefreshToken seals a refresh token for storage on the account row.
// The nonce is prepended to the ciphertext before base64 encoding.
func EncryptRefreshToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}

	gcm, err := tokenCipher()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(token), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptRefreshToken opens a token sealed by EncryptRefreshToken
func DecryptRefreshToken(encryptedToken string) (string, error) {
	if encryptedToken == "" {
		return "", nil
	}

	gcm, err := tokenCipher()
	if err != nil {
		return "", err
	}

	sealed, err := base64.StdEncoding.DecodeString(encryptedToken)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}
	if len(sealed) < gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plaintext), nil
}
