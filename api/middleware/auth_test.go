package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/giftlist-backend/pkg/auth"
	"github.com/angelmondragon/giftlist-backend/pkg/auth/session"
	"github.com/angelmondragon/giftlist-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "issuer"}
}

func TestAuthStatuses(t *testing.T) {
	cfg := testJWTConfig()
	valid, _ := mintTestToken(t, cfg, "member@example.com")

	cases := []struct {
		name     string
		header   string
		verifier session.AccessSessionChecker
		want     int
	}{
		{name: "missing header", verifier: stubSessionVerifier{ok: true}, want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer invalid", verifier: stubSessionVerifier{ok: true}, want: http.StatusUnauthorized},
		{name: "bare token without verifier", header: valid, want: http.StatusOK},
		{name: "revoked session", header: "Bearer " + valid, verifier: stubSessionVerifier{ok: false}, want: http.StatusUnauthorized},
		{name: "session store down", header: "Bearer " + valid, verifier: stubSessionVerifier{err: errors.New("redis down")}, want: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := serveAuth(cfg, tc.verifier, tc.header, okHandler)
			assert.Equal(t, tc.want, resp.Code)
		})
	}
}

func TestAuthStoresIdentityInContext(t *testing.T) {
	cfg := testJWTConfig()
	token, accessID := mintTestToken(t, cfg, "member@example.com")

	var gotEmail, gotAccessID string
	resp := serveAuth(cfg, stubSessionVerifier{ok: true}, "Bearer "+token, func(w http.ResponseWriter, r *http.Request) {
		gotEmail = MemberEmailFromContext(r.Context())
		gotAccessID = AccessIDFromContext(r.Context())
	})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "member@example.com", gotEmail)
	assert.Equal(t, accessID, gotAccessID)
}

func okHandler(http.ResponseWriter, *http.Request) {}

func serveAuth(cfg config.JWTConfig, verifier session.AccessSessionChecker, header string, next http.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp := httptest.NewRecorder()
	Auth(cfg, verifier, nil)(next).ServeHTTP(resp, req)
	return resp
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, email string) (string, string) {
	t.Helper()
	accessID := session.NewAccessID()
	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		Subject: email,
		JTI:     accessID,
		TTL:     time.Hour,
	})
	require.NoError(t, err)
	return token, accessID
}

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(_ context.Context, _ string) (bool, error) {
	return s.ok && s.err == nil, s.err
}
