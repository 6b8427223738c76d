package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_IssueAndValidate(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			svc := NewJWTService(testSecret, alg)

			token, err := svc.Issue("user-1")
			require.NoError(t, err)

			claims, err := svc.Validate(token)
			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.User.ID)
			assert.Equal(t, TokenIssuer, claims.Issuer)
			assert.WithinDuration(t, time.Now().Add(TokenExpiration), claims.ExpiresAt.Time, 5*time.Second)
		})
	}
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService(testSecret, "HS256")
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue("user-1")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService(testSecret, "HS256")
	token, err := svc.Issue("user-1")
	require.NoError(t, err)

	_, err = NewJWTService("other-secret", "HS256").Validate(token)
	assert.Error(t, err, "wrong secret")

	_, err = NewJWTService(testSecret, "HS512").Validate(token)
	assert.Error(t, err, "algorithm mismatch")

	_, err = svc.Validate("not-a-token")
	assert.Error(t, err)

	_, err = NewJWTService("", "HS256").Issue("user-1")
	assert.ErrorIs(t, err, ErrSigningKeyMissing)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, h.Verify("s3cret", hash))
	assert.False(t, h.Verify("wrong", hash))
	assert.Equal(t, BcryptCost, NewBcryptHasher(0).cost)
}

func TestErrorKind(t *testing.T) {
	err := NewInternalError("failed", assert.AnError)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, KindInternal, KindOf(assert.AnError))
	assert.Equal(t, KindNotFound, KindOf(NewNotFoundError("gone")))
	assert.Equal(t, "conflict", KindConflict.String())
}
