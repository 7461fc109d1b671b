package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the access token payload: the registered claims plus the
// numeric user id under "id".
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"id"`
}

// TokenManager issues and verifies HS256 access tokens. The secret is fixed
// for the lifetime of the manager; replacing it invalidates every token
// issued with the old one.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for userID valid for the configured TTL.
func (m *TokenManager) Issue(userID int64) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// Verify returns the user id carried by tokenString. Any failure (bad
// signature, other algorithm, expired, missing id) yields ok == false.
func (m *TokenManager) Verify(tokenString string) (int64, bool) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return 0, false
	}

	if claims.UserID <= 0 {
		return 0, false
	}

	return claims.UserID, true
}
