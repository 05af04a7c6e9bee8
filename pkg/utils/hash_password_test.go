package utils

import (
	"errors"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("Password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if err := VerifyPassword("Password123", encoded); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}

	if err := VerifyPassword("Password124", encoded); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("wrong password: got %v, want ErrPasswordMismatch", err)
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should not be identical")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected an error for an empty password")
	}
}

func TestVerifyPasswordBadEncodings(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"no separator", "c29tZXNhbHQ"},
		{"too many parts", "a.b.c"},
		{"bad salt base64", "!!!.c29tZWhhc2g="},
		{"bad hash base64", "c29tZXNhbHQ=.!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := VerifyPassword("whatever", tt.encoded); err == nil {
				t.Error("expected an error for a malformed encoding")
			}
		})
	}
}
