package parser

import (
	"strings"

	"github.com/pocketbudget/backend/pkg/models"
)

// The keyword evidence for classifying a message body. Matching is by
// substring, case-insensitive.
//
// Income keywords are checked first: a body that contains evidence for
// both kinds classifies as income. This precedence is fixed and is
// relied on by consumers, do not reorder.
var (
	incomeKeywords = []string{
		"credited", "credit", "received", "deposited", "income",
		"salary", "refund", "cashback", "bonus", "interest",
	}

	expenseKeywords = []string{
		"debited", "debit", "spent", "withdrawn", "expense",
		"paid", "payment", "purchase", "transfer", "withdrawal",
	}
)

// Classify labels a message body as income or expense from keyword
// evidence. The second return value is false when the body contains no
// evidence for either kind.
func Classify(body string) (models.TransactionKind, bool) {
	lower := strings.ToLower(body)

	if containsAny(lower, incomeKeywords) {
		return models.Income, true
	}

	if containsAny(lower, expenseKeywords) {
		return models.Expense, true
	}

	return "", false
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}
