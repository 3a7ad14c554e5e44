package middleware

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ParseRSAPublicKey loads the PEM-encoded verification key the auth provider
// publishes. Tokens are RS256; anything else is rejected.
func ParseRSAPublicKey(pemStr string) (*rsa.PublicKey, error) {
	pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemStr))
	if err != nil {
		return nil, fmt.Errorf("parse RSA public key: %w", err)
	}
	return pub, nil
}

// ValidateToken checks signature, algorithm, and expiry.
func ValidateToken(tokenStr string, pub *rsa.PublicKey) (*jwt.Token, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return pub, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return tok, nil
}

// SubjectAndRole pulls the user id and role claim out of a validated token.
func SubjectAndRole(tok *jwt.Token) (sub, role string, err error) {
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	sub, ok = claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", errors.New("missing subject")
	}
	role, _ = claims["role"].(string)
	return sub, role, nil
}
