package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestNewAccessTokenCarriesNameClaims(t *testing.T) {
	at, err := NewAccessToken("secret", 7, "Demo", "User", 15)
	assert.NoError(t, err)
	assert.NotEmpty(t, at.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["sub"])
	assert.Equal(t, "Demo", claims["first_name"])
	assert.Equal(t, "User", claims["last_name"])
}

func TestNewAccessTokenRejectsWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret", 7, "Demo", "User", 15)
	assert.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}

func TestNewRefreshTokenRandomness(t *testing.T) {
	a, err := NewRefreshToken(30)
	assert.NoError(t, err)
	b, err := NewRefreshToken(30)
	assert.NoError(t, err)

	assert.Len(t, a.Raw, 96) // 48 random bytes hex encoded
	assert.NotEqual(t, a.Raw, b.Raw)
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), a.Exp, 5*time.Second)
}

func TestHashRefreshRawDeterministic(t *testing.T) {
	h1 := HashRefreshRaw("token-value")
	h2 := HashRefreshRaw("token-value")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // SHA-256 hex digest
	assert.NotEqual(t, h1, HashRefreshRaw("other-value"))
}
