// Package secret seals the access token before it touches durable storage.
// Tokens are encrypted with AES-256-GCM under a PBKDF2 key derived from a
// machine-specific password, so a copied database file does not leak the PAT.
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/inovacc/azpanel/internal/application"
)

const (
	pbkdf2Iterations = 100000
	saltSize         = 16
	nonceSize        = 12
	keySize          = 32
)

// DeriveKey derives an encryption key using PBKDF2-SHA256.
func DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keySize, sha256.New)
}

// Encrypt encrypts data using AES-256-GCM.
// Returns: salt (16) + nonce (12) + ciphertext
func Encrypt(plaintext []byte, password string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := DeriveKey(password, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, saltSize+nonceSize+len(ciphertext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)

	return out, nil
}

// Decrypt reverses Encrypt.
func Decrypt(data []byte, password string) ([]byte, error) {
	if len(data) < saltSize+nonceSize {
		return nil, fmt.Errorf("ciphertext too short: %d bytes", len(data))
	}

	salt := data[:saltSize]
	nonce := data[saltSize : saltSize+nonceSize]
	ciphertext := data[saltSize+nonceSize:]

	key := DeriveKey(password, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}

// SealToken encrypts a token for storage and encodes it as base64.
func SealToken(token string) (string, error) {
	sealed, err := Encrypt([]byte(token), machinePassword())
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenToken decodes and decrypts a token sealed by SealToken.
func OpenToken(sealed string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("invalid sealed token encoding: %w", err)
	}

	token, err := Decrypt(data, machinePassword())
	if err != nil {
		return "", err
	}

	return string(token), nil
}

// machinePassword returns a machine-specific password for token sealing.
// The application directory stands in as a simple machine identifier; this
// protects against a copied database, not a fully compromised host.
func machinePassword() string {
	appDir, _ := application.GetApplicationDirectory()
	return application.AppName + "-machine-key:" + appDir
}
