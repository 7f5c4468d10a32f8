package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Tokens issues and verifies access and refresh JWTs for API operators.
type Tokens struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokens(accessSecret, refreshSecret string) *Tokens {
	return &Tokens{accessSecret: []byte(accessSecret), refreshSecret: []byte(refreshSecret)}
}

// Pair returns a fresh access and refresh token for subject.
func (t *Tokens) Pair(subject string) (access, refresh string, err error) {
	access, err = generateToken(subject, "access", AccessTTL, t.accessSecret)
	if err != nil {
		return "", "", fmt.Errorf("access token: %w", err)
	}
	refresh, err = generateToken(subject, "refresh", RefreshTTL, t.refreshSecret)
	if err != nil {
		return "", "", fmt.Errorf("refresh token: %w", err)
	}
	return access, refresh, nil
}

func (t *Tokens) ParseAccess(token string) (string, error) {
	return parseToken(token, "access", t.accessSecret)
}

func (t *Tokens) ParseRefresh(token string) (string, error) {
	return parseToken(token, "refresh", t.refreshSecret)
}

func generateToken(subject, kind string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"kind": kind,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(raw, kind string, secret []byte) (string, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["kind"] != kind {
		return "", ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// CheckPassword compares a plain password with a bcrypt hash.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
