package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, expiresAt, err := issuer.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(30*24*time.Hour), expiresAt, 2*time.Second)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.NotEmpty(t, claims.ID)
	require.True(t, expiresAt.Equal(claims.ExpiresAt.Time), "returned expiry matches the exp claim")
}

func TestTokenIssuer_TokensDifferButVerifyToSameUser(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	first, _, err := issuer.Issue("user-1")
	require.NoError(t, err)
	second, _, err := issuer.Issue("user-1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	for _, token := range []string{first, second} {
		claims, err := issuer.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "user-1", claims.UserID)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	past := NewTokenIssuer("test-secret")
	past.now = func() time.Time { return time.Now().Add(-31 * 24 * time.Hour) }

	token, _, err := past.Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret").Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Tampered(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	token, _, err := issuer.Issue("user-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = issuer.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RotatedSecretRejectsOldTokens(t *testing.T) {
	token, _, err := NewTokenIssuer("old-secret").Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenIssuer("new-secret").Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret").Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	_, err := NewTokenIssuer("test-secret").Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
