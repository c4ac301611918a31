package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	tok, exp, err := m.Issue(7, "asha", "Asha Rao")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, "asha", claims.Username)
	require.Equal(t, "Asha Rao", claims.Fullname)
	require.Equal(t, "7", claims.Subject)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	tok, _, err := m.Issue(7, "asha", "")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongSecretAndTampering(t *testing.T) {
	tok, _, err := NewTokenManager("secret", time.Hour).Issue(7, "asha", "")
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1, Username: "admin"})
	forgedTok, err := forged.SignedString([]byte("attacker"))
	require.NoError(t, err)
	payload := strings.Split(forgedTok, ".")[1]

	_, err = NewTokenManager("secret", time.Hour).Parse(parts[0] + "." + payload + "." + parts[2])
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	claims := Claims{
		UserID:           7,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(none)
	require.ErrorIs(t, err, ErrInvalidToken)

	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Parse(hs384)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRequiresExpiry(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 7}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewTokenManager("secret", time.Hour).Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	tok, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", tok)

	tok, err = BearerToken("bearer   xyz ")
	require.NoError(t, err)
	require.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Bearer   ", "Basic abc", "abc"} {
		_, err := BearerToken(h)
		require.True(t, errors.Is(err, ErrMissingToken), "header %q", h)
	}
	_, err = NewTokenManager("secret", time.Hour).Parse("")
	require.ErrorIs(t, err, ErrMissingToken)
}
