package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Signer appends an HMAC-SHA256 tag to session ids so tampered ids can be rejected.
type Signer struct {
	key []byte
}

// NewSigner returns a Signer, or nil when key is empty.
func NewSigner(key string) *Signer {
	if key == "" {
		return nil
	}
	return &Signer{key: []byte(key)}
}

// Sign returns "id.tag".
func (s *Signer) Sign(id string) string {
	return id + "." + s.tag(id)
}

// Verify splits a signed value and reports whether its tag matches.
func (s *Signer) Verify(value string) (string, bool) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 || i == len(value)-1 {
		return "", false
	}
	id, tag := value[:i], value[i+1:]
	if !hmac.Equal([]byte(tag), []byte(s.tag(id))) {
		return "", false
	}
	return id, true
}

func (s *Signer) tag(id string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
