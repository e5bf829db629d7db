package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaaltic/crm/internal/models"
)

// AuthService owns password hashing and the access-token codec. The
// token carries only the subject e-mail and an expiry; role and active
// status are always re-read from the store, never trusted from claims.
type AuthService struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{secret: []byte(secret), tokenTTL: tokenTTL}
}

func (s *AuthService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (s *AuthService) IssueToken(email string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseSubject validates the token and returns its subject. Every
// failure mode collapses to ErrUnauthorized: bad signature, non-HMAC
// algorithm, expired token, missing subject.
func (s *AuthService) ParseSubject(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", models.ErrUnauthorized
	}
	if claims.Subject == "" {
		return "", models.ErrUnauthorized
	}
	return claims.Subject, nil
}
