package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recruit-portal-api/pkg/auth"
)

func TestTokenRoundtrip(t *testing.T) {
	svc := auth.NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(42, "john@x.se")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.ID)
	assert.Equal(t, "john@x.se", claims.Email)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := auth.NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(42, "john@x.se")
	assert.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := auth.NewTokenService("secret-a", time.Hour)
	verifier := auth.NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(42, "john@x.se")
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := auth.NewTokenService("test-secret", time.Hour)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
