package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("super-secret"), 15*time.Minute)
	start := time.Now()

	tok, exp, err := m.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, start.Add(15*time.Minute), exp, 2*time.Second)

	id, ok := m.Verify(tok)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestIssue_ClaimsShape(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager([]byte("s"), 15*time.Minute)
	m.now = fixedClock(now)

	tok, _, err := m.Issue(7)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, now.Add(15*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestIssue_UniqueTokensSameSecond(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("s"), time.Minute)
	m.now = fixedClock(time.Unix(1_700_000_000, 0))

	a, _, err := m.Issue(1)
	require.NoError(t, err)
	b, _, err := m.Issue(1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issued := time.Now().Add(-time.Hour)
	m := NewTokenManager([]byte("secret"), 15*time.Minute)
	m.now = fixedClock(issued)

	tok, _, err := m.Issue(1)
	require.NoError(t, err)

	m.now = time.Now
	_, ok := m.Verify(tok)
	assert.False(t, ok)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewTokenManager([]byte("right-secret"), time.Hour).Issue(2)
	require.NoError(t, err)

	_, ok := NewTokenManager([]byte("wrong-secret"), time.Hour).Verify(tok)
	assert.False(t, ok)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           3,
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	m := NewTokenManager(secret, time.Hour)
	for name, tok := range map[string]string{"HS512": hs512, "none": none} {
		_, ok := m.Verify(tok)
		assert.False(t, ok, name)
	}
}

func TestVerify_MissingExpiryOrID(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	m := NewTokenManager(secret, time.Hour)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 4}).SignedString(secret)
	require.NoError(t, err)
	_, ok := m.Verify(noExp)
	assert.False(t, ok, "token without exp")

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(t, err)
	_, ok = m.Verify(noID)
	assert.False(t, ok, "token without id")
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("secret"), time.Hour)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, ok := m.Verify(tok)
		assert.False(t, ok, tok)
	}
}
