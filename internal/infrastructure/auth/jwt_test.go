package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mrtoldo/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars",
		Expiration: 24 * time.Hour,
		Issuer:     "test-issuer",
	})
}

func testUser() SessionUser {
	return SessionUser{ID: 42, Email: "admin@mrtoldo.com", Name: "Admin"}
}

func TestNewJWTService_DefaultsExpiration(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s"})
	assert.Equal(t, 24*time.Hour, svc.Expiration())
}

func TestGenerateToken(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	assert.NotEmpty(t, token.Token)
	assert.NotEmpty(t, token.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), token.ExpiresAt, 5*time.Second)
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	svc := newTestJWTService()

	a, err := svc.GenerateToken(testUser())
	require.NoError(t, err)
	b, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestValidateToken_Success(t *testing.T) {
	svc := newTestJWTService()
	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.Token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "admin@mrtoldo.com", claims.Email)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, token.ID, claims.ID)
	assert.Greater(t, claims.GetRemainingTTL(), 23*time.Hour)
}

func TestValidateToken_Errors(t *testing.T) {
	svc := newTestJWTService()

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-at-least-32-chars", Issuer: "test-issuer"})
		token, err := other.GenerateToken(testUser())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", Issuer: "someone-else"})
		token, err := other.GenerateToken(testUser())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := newTestJWTService()
		expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		token, err := expired.GenerateToken(testUser())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		future := newTestJWTService()
		future.now = func() time.Time { return time.Now().Add(time.Hour) }
		token, err := future.GenerateToken(testUser())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("missing user id", func(t *testing.T) {
		token, err := svc.GenerateToken(SessionUser{Email: "x@y.z"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("rejects non hmac algorithms", func(t *testing.T) {
		claims := &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{Issuer: "test-issuer"}}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	assert.Zero(t, (&Claims{}).GetRemainingTTL())

	past := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}}
	assert.Zero(t, past.GetRemainingTTL())
}
