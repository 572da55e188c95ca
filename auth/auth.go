// Package auth guards the dashboard's mutating routes with HTTP basic auth
// checked against a bcrypt hash.
package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const realm = "oshinavi"

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

type Basic struct {
	user string
	hash []byte
	log  *zap.Logger
}

// NewBasic returns a Basic guard. If user or hash is empty, the guard lets
// every request through.
func NewBasic(user, hash string, log *zap.Logger) *Basic {
	return &Basic{user: user, hash: []byte(hash), log: log}
}

func (b *Basic) Enabled() bool {
	return b.user != "" && len(b.hash) > 0
}

func (b *Basic) Check(user, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(b.user)) == 1
	passOK := bcrypt.CompareHashAndPassword(b.hash, []byte(password)) == nil
	return userOK && passOK
}

// Require wraps next so that it only runs for authenticated requests.
func (b *Basic) Require(next http.HandlerFunc) http.HandlerFunc {
	if !b.Enabled() {
		return next
	}
	return func(w http.ResponseWriter, req *http.Request) {
		user, password, ok := req.BasicAuth()
		if !ok || !b.Check(user, password) {
			b.log.Warn("unauthorized request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("remote", req.RemoteAddr))
			w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Basic realm=%q`, realm))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, req)
	}
}
