package repository

import (
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"
)

// encryptedPrefix marks owner columns holding a fernet token rather than plain text.
const encryptedPrefix = "fernet:"

// OwnerCipher encrypts possession owners at rest. A nil *OwnerCipher stores owners
// in plain text.
type OwnerCipher struct {
	key *fernet.Key
}

// NewOwnerCipher parses a base64 fernet key. An empty key returns a nil cipher.
func NewOwnerCipher(encodedKey string) (*OwnerCipher, error) {
	if encodedKey == "" {
		return nil, nil
	}
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid owner encryption key: %w", err)
	}
	return &OwnerCipher{key: key}, nil
}

// GenerateOwnerKey returns a fresh base64 fernet key suitable for OWNER_ENCRYPTION_KEY.
func GenerateOwnerKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return key.Encode(), nil
}

// Seal returns the column value to store for owner.
func (c *OwnerCipher) Seal(owner string) (string, error) {
	if c == nil || owner == "" {
		return owner, nil
	}
	tok, err := fernet.EncryptAndSign([]byte(owner), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt owner: %w", err)
	}
	return encryptedPrefix + string(tok), nil
}

// Open returns the owner stored in a column value. Plain text values written before
// encryption was enabled are returned unchanged.
func (c *OwnerCipher) Open(stored string) (string, error) {
	tok, encrypted := strings.CutPrefix(stored, encryptedPrefix)
	if !encrypted {
		return stored, nil
	}
	if c == nil {
		return "", fmt.Errorf("owner is encrypted but no key is configured")
	}
	// A negative ttl disables token expiry.
	msg := fernet.VerifyAndDecrypt([]byte(tok), -1, []*fernet.Key{c.key})
	if msg == nil {
		return "", fmt.Errorf("failed to decrypt owner")
	}
	return string(msg), nil
}
