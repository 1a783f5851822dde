package utils

import (
	"errors"
	"time"

	"futsal/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "FUTSAL"
	}
	return []byte(secret)
}

// Claims carried by an access token. Identity issuance is external; the
// service only consumes these fields.
type Claims struct {
	ClientID string
	Phone    string
	Role     string
}

// GenerateToken creates a signed JWT for the given client. Used by tests and
// provisioning tooling; token issuance itself lives outside this service.
func GenerateToken(clientID, phone, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   clientID,
		"phone": phone,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	phone, _ := mapClaims["phone"].(string)
	role, _ := mapClaims["role"].(string)

	return &Claims{ClientID: sub, Phone: phone, Role: role}, nil
}
