package transactions

import (
	"testing"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validRequest() transactionRequest {
	return transactionRequest{
		Amount:          decPtr("49.99"),
		TransactionType: strPtr("EX"),
		Category:        strPtr("FOOD"),
		Description:     strPtr("groceries"),
		Date:            strPtr("2025-04-15"),
	}
}

func TestTransactionRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*transactionRequest)
		wantMsg string
	}{
		{"valid", func(r *transactionRequest) {}, ""},
		{"minimum amount accepted", func(r *transactionRequest) { r.Amount = decPtr("0.01") }, ""},
		{"amount below minimum", func(r *transactionRequest) { r.Amount = decPtr("0.001") }, "amount must be at least 0.01"},
		{"zero amount", func(r *transactionRequest) { r.Amount = decPtr("0") }, "amount must be at least 0.01"},
		{"negative amount", func(r *transactionRequest) { r.Amount = decPtr("-5") }, "amount must be at least 0.01"},
		{"unknown type", func(r *transactionRequest) { r.TransactionType = strPtr("TRANSFER") }, "invalid transaction_type code"},
		{"unknown category", func(r *transactionRequest) { r.Category = strPtr("CRYPTO") }, "invalid category code"},
		{"bad date format", func(r *transactionRequest) { r.Date = strPtr("15/04/2025") }, "date must be formatted YYYY-MM-DD"},
		{"impossible date", func(r *transactionRequest) { r.Date = strPtr("2025-02-30") }, "date must be formatted YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			msg, ok := req.validate(true)
			if tt.wantMsg == "" {
				if !ok {
					t.Errorf("expected valid, got %q", msg)
				}
			} else {
				if ok || msg != tt.wantMsg {
					t.Errorf("got (%q, %v), want (%q, false)", msg, ok, tt.wantMsg)
				}
			}
		})
	}
}

func TestTransactionRequestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*transactionRequest)
		wantMsg string
	}{
		{"missing amount", func(r *transactionRequest) { r.Amount = nil }, "amount is required"},
		{"missing type", func(r *transactionRequest) { r.TransactionType = nil }, "transaction_type is required"},
		{"missing category", func(r *transactionRequest) { r.Category = nil }, "category is required"},
		{"missing date", func(r *transactionRequest) { r.Date = nil }, "date is required"},
		{"description optional", func(r *transactionRequest) { r.Description = nil }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			msg, ok := req.validate(true)
			if tt.wantMsg == "" {
				if !ok {
					t.Errorf("expected valid, got %q", msg)
				}
			} else {
				if ok || msg != tt.wantMsg {
					t.Errorf("got (%q, %v), want (%q, false)", msg, ok, tt.wantMsg)
				}
			}
		})
	}
}

func TestTransactionRequestValidatePartial(t *testing.T) {
	// A PATCH body may omit anything, but what it does carry is still checked.
	empty := transactionRequest{}
	if msg, ok := empty.validate(false); !ok {
		t.Errorf("empty partial request should pass field checks, got %q", msg)
	}

	bad := transactionRequest{Category: strPtr("CRYPTO")}
	if _, ok := bad.validate(false); ok {
		t.Error("partial request with a bad category should fail")
	}
}
