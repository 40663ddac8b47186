package util

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of a Supabase access token the service relies on.
type Claims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

var ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

func parsePublicKey(pemKey string) (any, error) {
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing public key")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return pub, nil
}

var (
	hmacMethods       = []string{"HS256", "HS384", "HS512"}
	publicKeyMethods  = []string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512"}
	errPublicKeyAsMAC = errors.New("HMAC token presented for a public key")
)

func isPEM(keyMaterial string) bool {
	block, _ := pem.Decode([]byte(keyMaterial))
	return block != nil
}

// allowedMethods ties the accepted algorithms to the kind of key configured.
// A PEM public key only verifies RS and ES tokens, anything else is an HMAC
// secret.
func allowedMethods(keyMaterial string) []string {
	if isPEM(keyMaterial) {
		return publicKeyMethods
	}
	return hmacMethods
}

// keyFor picks the verification key for the token's algorithm. HMAC tokens
// use keyMaterial as the shared secret; RSA and ECDSA tokens expect it to be
// a PEM encoded public key.
func keyFor(token *jwt.Token, keyMaterial string) (any, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if isPEM(keyMaterial) {
			return nil, errPublicKeyAsMAC
		}
		return []byte(keyMaterial), nil
	case *jwt.SigningMethodRSA:
		pub, err := parsePublicKey(keyMaterial)
		if err != nil {
			return nil, err
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("public key is not RSA")
		}
		return rsaPub, nil
	case *jwt.SigningMethodECDSA:
		pub, err := parsePublicKey(keyMaterial)
		if err != nil {
			return nil, err
		}
		ecPub, ok := pub.(*ecdsa.PublicKey)
		if !ok {
			return nil, errors.New("public key is not ECDSA")
		}
		return ecPub, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, token.Header["alg"])
	}
}

// ValidateJWT verifies tokenString and returns its claims. Tokens without a
// subject are rejected since every caller is identified by it.
func ValidateJWT(tokenString string, keyMaterial string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return keyFor(t, keyMaterial)
	}, jwt.WithValidMethods(allowedMethods(keyMaterial)))
	if err != nil {
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
