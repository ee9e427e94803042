package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	v := NewVerifier("s3cret", "tingrrr")

	tok, err := v.Issue("u-1", "ana@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestVerify_Rejects(t *testing.T) {
	v := NewVerifier("s3cret", "tingrrr")
	ctx := context.Background()

	_, err := v.Verify(ctx, "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	other, err := NewVerifier("other", "tingrrr").Issue("u-1", "", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(ctx, other)
	assert.Error(t, err, "wrong secret")

	wrongIssuer, err := NewVerifier("s3cret", "someone-else").Issue("u-1", "", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(ctx, wrongIssuer)
	assert.Error(t, err, "wrong issuer")

	expired, err := v.Issue("u-1", "", -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(ctx, expired)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "u-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = v.Verify(ctx, none)
	assert.Error(t, err, "alg none")
}

func TestVerify_SubjectFallbackAndMissingUser(t *testing.T) {
	v := NewVerifier("s3cret", "")
	ctx := context.Background()

	sub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-9"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	claims, err := v.Verify(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, "u-9", claims.UserID)

	anon, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@example.com"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = v.Verify(ctx, anon)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestVerify_NotConfigured(t *testing.T) {
	_, err := NewVerifier("", "").Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
