package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amonks/oshinavi/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ok(w http.ResponseWriter, req *http.Request) { w.WriteHeader(http.StatusNoContent) }

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	hash2, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)

	_, err = auth.HashPassword("")
	assert.Error(t, err)

	b := auth.NewBasic("me", hash, zap.NewNop())
	assert.True(t, b.Check("me", "hunter2"))
	assert.False(t, b.Check("me", "hunter3"))
	assert.False(t, b.Check("you", "hunter2"))
}

func TestRequire(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	h := auth.NewBasic("me", hash, zap.NewNop()).Require(ok)

	tests := []struct {
		name       string
		user, pass string
		setAuth    bool
		want       int
	}{
		{"no credentials", "", "", false, http.StatusUnauthorized},
		{"wrong password", "me", "nope", true, http.StatusUnauthorized},
		{"correct", "me", "hunter2", true, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/artists", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			w := httptest.NewRecorder()
			h(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
			}
		})
	}
}

func TestRequireDisabled(t *testing.T) {
	h := auth.NewBasic("", "", zap.NewNop()).Require(ok)
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/artists", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
