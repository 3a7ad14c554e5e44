package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyPair(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return priv, &priv.PublicKey
}

func signToken(t *testing.T, priv *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := tok.SignedString(priv)
	require.NoError(t, err)
	return signed
}

func TestParseRSAPublicKey(t *testing.T) {
	_, pub := newTestKeyPair(t)
	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)
	pemStr := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	parsed, err := ParseRSAPublicKey(pemStr)
	require.NoError(t, err)
	assert.Equal(t, pub.N, parsed.N)

	_, err = ParseRSAPublicKey("not a pem block")
	assert.Error(t, err)
}

func TestValidateTokenAndClaims(t *testing.T) {
	priv, pub := newTestKeyPair(t)
	userID := uuid.New().String()

	signed := signToken(t, priv, jwt.MapClaims{
		"sub":  userID,
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	tok, err := ValidateToken(signed, pub)
	require.NoError(t, err)

	sub, role, err := SubjectAndRole(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, sub)
	assert.Equal(t, "user", role)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	priv, _ := newTestKeyPair(t)
	_, otherPub := newTestKeyPair(t)

	signed := signToken(t, priv, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := ValidateToken(signed, otherPub)
	assert.Error(t, err)
}

func TestValidateTokenRejectsHMAC(t *testing.T) {
	_, pub := newTestKeyPair(t)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "someone",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = ValidateToken(signed, pub)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	priv, pub := newTestKeyPair(t)
	userID := uuid.New().String()

	var gotSub, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub, _ = UserIDFromContext(r.Context())
		gotRole, _ = r.Context().Value(ContextKeyRole).(string)
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(pub)(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		signed := signToken(t, priv, jwt.MapClaims{
			"sub": userID,
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		signed := signToken(t, priv, jwt.MapClaims{
			"sub":  userID,
			"role": "user",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotSub)
		assert.Equal(t, "user", gotRole)
	})
}

func TestAdminAuthMiddleware(t *testing.T) {
	priv, pub := newTestKeyPair(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminAuthMiddleware(pub)(next)

	t.Run("plain user is forbidden", func(t *testing.T) {
		signed := signToken(t, priv, jwt.MapClaims{
			"sub":  uuid.New().String(),
			"role": "user",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		signed := signToken(t, priv, jwt.MapClaims{
			"sub":  uuid.New().String(),
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	priv, pub := newTestKeyPair(t)
	userID := uuid.New().String()

	var gotSub string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := OptionalAuthMiddleware(pub)(next)

	t.Run("anonymous passes without identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, gotOK)
	})

	t.Run("garbage token is treated as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, gotOK)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		signed := signToken(t, priv, jwt.MapClaims{
			"sub": userID,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotOK)
		assert.Equal(t, userID, gotSub)
	})
}
