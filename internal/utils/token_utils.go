package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminTokenIssuer is stamped on every admin token minted by this service.
const AdminTokenIssuer = "exchange-rates"

// ErrMissingSubject is returned for tokens that carry no admin identity.
var ErrMissingSubject = errors.New("token has no subject")

// GenerateAdminToken signs an HS256 token for adminID that expires after ttl.
func GenerateAdminToken(adminID string, secret string, ttl time.Duration, now time.Time) (string, error) {
	adminID = strings.TrimSpace(adminID)
	if adminID == "" {
		return "", ErrMissingSubject
	}
	if secret == "" {
		return "", errors.New("signing secret is empty")
	}
	claims := jwt.RegisteredClaims{
		Issuer:    AdminTokenIssuer,
		Subject:   adminID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAdminToken validates the signature and time claims of tokenString and
// returns its claims. Only HMAC-signed tokens are accepted.
func ParseAdminToken(tokenString string, secret string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
