package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrMissingSecret     = errors.New("missing secret")
	ErrInvalidHashFormat = errors.New("invalid encoded hash format")
	ErrPasswordMismatch  = errors.New("password does not match")
	ErrEmptyPassword     = errors.New("password cannot be empty")
)

// HashPassword derives an argon2id hash and encodes it as
// base64(salt).base64(hash).
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrorHandler(ErrEmptyPassword, "password cannot be empty")
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", ErrorHandler(err, "failed to generate salt")
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	saltBase64 := base64.StdEncoding.EncodeToString(salt)
	hashBase64 := base64.StdEncoding.EncodeToString(hash)

	return saltBase64 + "." + hashBase64, nil
}

// VerifyPassword checks a plaintext password against an encoded hash in
// constant time.
func VerifyPassword(password, encoded string) error {
	parts := strings.Split(encoded, ".")
	if len(parts) != 2 {
		return ErrorHandler(ErrInvalidHashFormat, "invalid encoded hash format")
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return ErrorHandler(err, "failed to decode salt")
	}

	stored, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return ErrorHandler(err, "failed to decode hashed password")
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	if len(hash) != len(stored) || subtle.ConstantTimeCompare(hash, stored) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
