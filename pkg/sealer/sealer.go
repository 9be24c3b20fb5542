package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"time"
)

const (
	// Default key, overridable via configuration.
	KEY = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="
)

var (
	ErrTokenInvalid = errors.New("token is malformed or tampered")
	ErrTokenExpired = errors.New("token is older than the allowed window")
)

// Sealer issues opaque, time-bounded tokens. A token carries nothing but its
// issue instant, sealed with AES-GCM; possession of a fresh token proves the
// client started its payment timer recently.
type Sealer struct {
	key []byte
}

func New(base64Key string) (*Sealer, error) {
	if base64Key == "" {
		base64Key = KEY
	}

	key, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, errors.New("sealer key must decode to 32 bytes")
	}

	return &Sealer{key: key}, nil
}

func (s *Sealer) Issue() (string, error) {
	return s.issueAt(time.Now().UTC())
}

func (s *Sealer) issueAt(issued time.Time) (string, error) {
	plaintext := []byte(issued.Format(time.RFC3339Nano))

	aesgcm, err := s.newGCM()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ct := aesgcm.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(ct), nil
}

// Verify opens the token and checks its issue instant against maxAge.
// Returns ErrTokenInvalid for anything that does not decrypt to a timestamp,
// ErrTokenExpired when the timestamp is genuine but too old.
func (s *Sealer) Verify(token string, maxAge time.Duration) error {
	return s.verifyAt(token, maxAge, time.Now().UTC())
}

func (s *Sealer) verifyAt(token string, maxAge time.Duration, now time.Time) error {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ErrTokenInvalid
	}

	aesgcm, err := s.newGCM()
	if err != nil {
		return err
	}

	nonceSize := aesgcm.NonceSize()
	if len(data) < nonceSize {
		return ErrTokenInvalid
	}
	nonce := data[:nonceSize]
	ciphertext := data[nonceSize:]

	pt, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return ErrTokenInvalid
	}

	issued, err := time.Parse(time.RFC3339Nano, string(pt))
	if err != nil {
		return ErrTokenInvalid
	}

	if now.Sub(issued) > maxAge {
		return ErrTokenExpired
	}

	return nil
}

func (s *Sealer) newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
