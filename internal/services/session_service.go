package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"github.com/google/uuid"
)

// SessionService seals browser session ids into cookie values
type SessionService struct {
	encryptionKey []byte
}

// NewSessionService creates a session service. A key that is not 32 bytes is
// replaced by a random one, so sessions do not survive a restart.
func NewSessionService(key []byte) *SessionService {
	if len(key) != 32 {
		newKey := make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, newKey); err != nil {
			panic("failed to generate random key")
		}
		return &SessionService{encryptionKey: newKey}
	}
	return &SessionService{encryptionKey: key}
}

// NewSessionID returns a fresh random session id
func (s *SessionService) NewSessionID() string {
	return uuid.NewString()
}

// Seal encrypts a session id into a string (for the cookie)
func (s *SessionService) Seal(sessionID string) (string, error) {
	gcm, err := s.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(sessionID), nil)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Open decodes the cookie value back into a session id
func (s *SessionService) Open(sealed string) (string, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}

	gcm, err := s.aead()
	if err != nil {
		return "", err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return "", errors.New("malformed ciphertext")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	id, err := uuid.ParseBytes(plaintext)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *SessionService) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
