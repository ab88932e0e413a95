package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Gate checks the shared archive passphrase. When a bcrypt hash is configured
// it takes precedence over the plaintext fallback.
type Gate struct {
	hash  string
	plain string
}

// NewGate builds a Gate from the configured bcrypt hash and/or plaintext
// passphrase. Enabled reports whether either was provided.
func NewGate(hash, plain string) *Gate {
	return &Gate{hash: hash, plain: plain}
}

// Enabled reports whether a passphrase is configured at all.
func (g *Gate) Enabled() bool {
	return g.hash != "" || g.plain != ""
}

// Check reports whether the supplied passphrase is correct.
func (g *Gate) Check(password string) bool {
	if g.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.hash), []byte(password)) == nil
	}
	if g.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.plain), []byte(password)) == 1
}

// HashPassword returns a bcrypt hash for the provided plaintext, for
// generating the ARCHIVE_PASSWORD_HASH value.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
