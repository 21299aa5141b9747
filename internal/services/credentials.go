package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = 30 * 24 * time.Hour

// CredentialService hashes secrets and issues tokens.
type CredentialService interface {
	Hash(secret string) (string, error)
	Compare(hash, secret string) error
	IssueToken(profile *models.Profile) (string, error)
	ParseToken(token string) (*models.JwtCustomClaims, error)
}

// JWTCredentials is the bcrypt + HS256 implementation of CredentialService.
type JWTCredentials struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

func NewJWTCredentials(secret string, ttl time.Duration) *JWTCredentials {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTCredentials{
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

func (c *JWTCredentials) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), c.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (c *JWTCredentials) Compare(hash, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}

func (c *JWTCredentials) IssueToken(profile *models.Profile) (string, error) {
	now := c.now()
	claims := &models.JwtCustomClaims{
		UserID:  profile.ID,
		Account: profile.Account,
		Role:    profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *JWTCredentials) ParseToken(tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}
