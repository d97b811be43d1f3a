package parser_test

import (
	"testing"

	"github.com/pocketbudget/backend/pkg/models"
	"github.com/pocketbudget/backend/pkg/parser"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind models.TransactionKind
		ok   bool
	}{
		{"income keyword", "Your account was credited with LKR 500.00", models.Income, true},
		{"expense keyword", "LKR 500.00 debited from your account", models.Expense, true},
		{"case insensitive", "SALARY received", models.Income, true},
		{"keyword inside a word", "She was accredited", models.Income, true},
		{"income wins over expense", "credited Rs 500 then debited Rs 200", models.Income, true},
		{"expense wins over nothing", "payment to merchant", models.Expense, true},
		{"no evidence", "Your OTP is 123456", "", false},
		{"empty body", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := parser.Classify(tt.body)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}
