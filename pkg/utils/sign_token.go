package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignToken issues an HS256 JWT for a logged-in user. Expiry comes from
// TOKEN_EXP_DURATION (minutes), defaulting to 24 hours when unset.
func SignToken(userID int, email, role string) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", ErrorHandler(ErrMissingSecret, "JWT_SECRET is not set")
	}

	expiry := 24 * time.Hour
	if mins, err := strconv.Atoi(os.Getenv("TOKEN_EXP_DURATION")); err == nil && mins > 0 {
		expiry = time.Duration(mins) * time.Minute
	}

	claims := jwt.MapClaims{
		"uid":  userID,
		"user": email,
		"role": role,
		"exp":  time.Now().Add(expiry).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", ErrorHandler(err, "could not sign login token")
	}
	return signed, nil
}
