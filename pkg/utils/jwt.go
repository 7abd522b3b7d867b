package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

var ErrInvalidToken = errors.New("invalid token")

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenIssuer signs access and refresh tokens with independent secrets so a
// refresh token is never accepted where an access token is expected.
type TokenIssuer struct {
	accessSecret  []byte
	accessTTL     time.Duration
	refreshSecret []byte
	refreshTTL    time.Duration
	now           func() time.Time
}

func CreateTokenIssuer(accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration, now func() time.Time) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		accessTTL:     accessTTL,
		refreshSecret: []byte(refreshSecret),
		refreshTTL:    refreshTTL,
		now:           now,
	}
}

func (t *TokenIssuer) AccessTTL() time.Duration  { return t.accessTTL }
func (t *TokenIssuer) RefreshTTL() time.Duration { return t.refreshTTL }

func (t *TokenIssuer) CreateTokenPair(userID string, role string) (pair TokenPair, err error) {
	pair.AccessToken, err = t.CreateAccessToken(userID, role)
	if err != nil {
		return
	}

	pair.RefreshToken, err = t.CreateRefreshToken(userID)
	return
}

func (t *TokenIssuer) CreateAccessToken(userID string, role string) (string, error) {
	issuedAt := t.now()
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.accessTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.accessSecret)
}

func (t *TokenIssuer) CreateRefreshToken(userID string) (string, error) {
	issuedAt := t.now()
	id, err := ulid.New(ulid.Timestamp(issuedAt), rand.Reader)
	if err != nil {
		return "", err
	}

	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.refreshTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.refreshSecret)
}

func (t *TokenIssuer) ParseAccessToken(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := t.parse(raw, claims, t.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *TokenIssuer) ParseRefreshToken(raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := t.parse(raw, claims, t.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *TokenIssuer) parse(raw string, claims jwt.Claims, secret []byte) error {
	if raw == "" {
		return ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	},
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}

	if !token.Valid {
		return ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return ErrInvalidToken
	}

	return nil
}

// HashRefreshToken returns the hex SHA-256 digest stored in place of the raw token.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
