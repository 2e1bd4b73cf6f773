package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndVerify(t *testing.T) {
	manager := NewManager("secret", time.Hour, false)

	token, expires, err := manager.Issue("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestManager_VerifyRejects(t *testing.T) {
	manager := NewManager("secret", time.Hour, false)
	other := NewManager("other-secret", time.Hour, false)
	foreign, _, err := other.Issue("admin")
	require.NoError(t, err)

	expired := NewManager("secret", time.Hour, false)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, err := expired.Issue("admin")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty", token: "", wantErr: ErrMissingToken},
		{name: "boolean cookie value", token: "true", wantErr: ErrInvalidToken},
		{name: "wrong secret", token: foreign, wantErr: ErrInvalidToken},
		{name: "expired", token: stale, wantErr: ErrInvalidToken},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := manager.Verify(testCase.token)
			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestManager_Require(t *testing.T) {
	manager := NewManager("secret", time.Hour, false)
	protected := manager.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("no cookie", func(t *testing.T) {
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/menu", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Not authenticated"}`, rr.Body.String())
	})

	t.Run("valid cookie", func(t *testing.T) {
		token, expires, err := manager.Issue("admin")
		require.NoError(t, err)

		login := httptest.NewRecorder()
		manager.SetCookie(login, token, expires)

		req := httptest.NewRequest(http.MethodPost, "/api/menu", nil)
		for _, c := range login.Result().Cookies() {
			req.AddCookie(c)
		}
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestManager_ClearCookie(t *testing.T) {
	manager := NewManager("secret", time.Hour, false)
	rr := httptest.NewRecorder()
	manager.ClearCookie(rr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}
