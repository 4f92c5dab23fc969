package api

import (
	crand "crypto/rand"
	"errors"
	"os"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/junseokho/HackClad-sub000/internal/constants"
)

type sessionClaims struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
	jwt.RegisteredClaims
}

var devSecret []byte

func getSessionSecret() ([]byte, error) {
	secret := os.Getenv(constants.EnvSessionSecret)
	if secret == "" {
		// Generate an in-memory secret for development if not set
		if len(devSecret) == 0 {
			devSecret = make([]byte, 32)
			if _, err := crand.Read(devSecret); err != nil {
				return nil, errors.New("failed to generate dev session secret")
			}
		}
		return devSecret, nil
	}
	return []byte(secret), nil
}

// createSessionToken mints an HS256 session token. Subject carries the
// email, UUID the stable player identity used inside rooms.
func createSessionToken(email, name, playerUUID string, ttl time.Duration) (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := sessionClaims{
		Name: name,
		UUID: playerUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseAndValidateSession(token string) (*sessionClaims, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return nil, err
	}
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
