package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// ErrDecrypt is wrapped by every decryption failure, whatever the cause
// (bad encoding, truncated data, wrong key). Callers must treat it as a
// hard failure: undecrypted ciphertext never reaches a family worker's
// screen.
var ErrDecrypt = errors.New("failed to decrypt sensitive field")

const pbkdf2Iterations = 600_000

// Crypto encrypts and decrypts the sensitive free-text fields of a
// referral. Implementations must be safe for concurrent use.
type Crypto interface {
	EncryptData(plaintext string) (string, error)
	DecryptData(ciphertext string) (string, error)
}

// AESCrypto provides AES-256-GCM field-level encryption and decryption.
type AESCrypto struct {
	aead cipher.AEAD
}

// New creates an AESCrypto with the given 32-byte AES-256 key.
func New(key []byte) (*AESCrypto, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("field crypto: key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("field crypto: create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("field crypto: create GCM: %w", err)
	}

	return &AESCrypto{aead: aead}, nil
}

// NewFromHex creates an AESCrypto from a 64-character hex-encoded key.
func NewFromHex(keyHex string) (*AESCrypto, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("field crypto: decode hex key: %w", err)
	}
	return New(key)
}

// NewFromPassphrase derives a 32-byte key from a passphrase and salt with
// PBKDF2-SHA256. The salt must match across every service sharing the
// field key.
func NewFromPassphrase(passphrase, salt string) (*AESCrypto, error) {
	if passphrase == "" || salt == "" {
		return nil, errors.New("field crypto: passphrase and salt are required")
	}
	key := pbkdf2.Key([]byte(passphrase), []byte(salt), pbkdf2Iterations, 32, sha256.New)
	return New(key)
}

// EncryptData encrypts the plaintext and returns a base64-encoded
// ciphertext with the nonce prepended.
func (c *AESCrypto) EncryptData(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("field crypto: generate nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, so the result is nonce + ciphertext.
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptData decodes the base64 ciphertext, extracts the prepended
// nonce, and decrypts.
func (c *AESCrypto) DecryptData(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode: %v", ErrDecrypt, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return string(plaintext), nil
}

// FromConfig builds an AESCrypto from whichever key material is set: a
// raw hex key wins over a passphrase+salt pair.
func FromConfig(keyHex, passphrase, salt string) (*AESCrypto, error) {
	if keyHex != "" {
		return NewFromHex(keyHex)
	}
	return NewFromPassphrase(passphrase, salt)
}
