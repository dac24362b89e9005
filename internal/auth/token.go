package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jewelbox/internal/domain"
)

// ErrInvalidToken covers malformed, expired and badly signed tokens alike.
var ErrInvalidToken = errors.New("invalid or expired token")

const DefaultTTL = 24 * time.Hour

type claims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 bearer tokens.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

func (t *Tokens) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Tokens) Issue(id int64, email string) (string, error) {
	now := t.now()
	c := claims{
		ID:    id,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.Secret)
}

func (t *Tokens) Verify(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, ErrInvalidToken
	}
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid || c.Email == "" {
		return domain.Identity{}, ErrInvalidToken
	}
	return domain.Identity{ID: c.ID, Email: c.Email}, nil
}
