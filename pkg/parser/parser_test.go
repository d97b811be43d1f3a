package parser_test

import (
	"testing"
	"time"

	"github.com/pocketbudget/backend/pkg/models"
	"github.com/pocketbudget/backend/pkg/parser"
	"github.com/pocketbudget/backend/pkg/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	receivedAt := time.Date(2025, 10, 1, 17, 49, 0, 0, time.UTC)

	tests := []struct {
		name   string
		body   string
		kind   models.TransactionKind
		amount string
		ok     bool
	}{
		{"expense message", "LKR 6,123.30 debited from AC XXXX1234", models.Expense, "6123.30", true},
		{"income message", "Rs 500 credited to your account", models.Income, "500", true},
		{"keyword but no amount", "payment failed, try again", "", "", false},
		{"amount but no keyword", "Your OTP is 123456", "", "", false},
		{"income keyword wins", "credited Rs 500 then debited Rs 200", models.Income, "500", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message, ok := parser.Parse(models.InboundMessage{
				ExternalID: 7,
				Sender:     "BANK",
				Body:       tt.body,
				ReceivedAt: receivedAt,
			})

			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}

			assert.Equal(t, tt.kind, message.Kind)
			assert.True(t, message.Amount.Equal(decimal.RequireFromString(tt.amount)), "parsed %s, want %s", message.Amount, tt.amount)
			assert.Equal(t, int64(7), message.ExternalID)
			assert.Equal(t, receivedAt, message.ReceivedAt)
		})
	}
}

func TestParseUnknownSender(t *testing.T) {
	message, ok := parser.Parse(models.InboundMessage{
		ExternalID: 1,
		Body:       "LKR 100.00 debited from AC 1234",
	})

	require.True(t, ok)
	assert.Equal(t, "Unknown", message.Sender)
}

func TestTransactionFromMessage(t *testing.T) {
	receivedAt := time.Date(2025, 10, 1, 17, 49, 0, 0, time.UTC)

	message, ok := parser.Parse(models.InboundMessage{
		ExternalID: 99,
		Sender:     "BANK",
		Body:       "LKR 6,123.30 debited from AC XXXX1234",
		ReceivedAt: receivedAt,
	})
	require.True(t, ok)

	transaction := parser.Transaction(message)

	assert.Equal(t, models.Expense, transaction.Kind)
	assert.True(t, transaction.Amount.Equal(decimal.RequireFromString("6123.30")), "amount is %s", transaction.Amount)
	assert.Equal(t, "SMS from BANK", transaction.Note)
	assert.Equal(t, models.OriginMessage, transaction.Origin)

	// The transaction date is the message timestamp, never the
	// regex-extracted one
	assert.Equal(t, receivedAt, transaction.Date)
}

func TestTransactionIDDeterministic(t *testing.T) {
	message := models.Message{ExternalID: 12345, Sender: "BANK"}

	first := parser.Transaction(message)
	second := parser.Transaction(message)

	assert.Equal(t, first.ID, second.ID, "re-deriving the same message must yield the same ID")

	other := parser.Transaction(models.Message{ExternalID: 12346, Sender: "BANK"})
	assert.NotEqual(t, first.ID, other.ID)
}

func TestInspect(t *testing.T) {
	set := rules.Default()

	fact := parser.Inspect("LKR 1,250.50 debited from AC XXXX1234 as POS TXN on 01 Oct 2025 at 17:49 at STORE. Avl Bal 10.00", set)

	require.True(t, fact.Amount.Valid)
	assert.True(t, fact.Amount.Decimal.Equal(decimal.RequireFromString("1250.50")), "amount is %s", fact.Amount.Decimal)

	require.NotNil(t, fact.Date)
	assert.True(t, fact.Date.Equal(time.Date(2025, 10, 1, 17, 49, 0, 0, time.UTC)))

	assert.Equal(t, "STORE", fact.Location)
	assert.Equal(t, "XXXX1234", fact.Account)
	assert.Equal(t, models.Expense, fact.Kind)
	assert.True(t, fact.Complete)
}

func TestInspectSampleMessage(t *testing.T) {
	// The shipped sample message has no "at HH:MM" token, so the
	// default time pattern does not match it and the fact stays
	// incomplete. This mirrors the shipped defaults, the settings
	// screen shows exactly this result.
	set := rules.Default()

	fact := parser.Inspect(set.SampleMessage, set)

	require.True(t, fact.Amount.Valid)
	assert.True(t, fact.Amount.Decimal.Equal(decimal.RequireFromString("61234.30")), "amount is %s", fact.Amount.Decimal)
	assert.Nil(t, fact.Date)
	assert.Equal(t, "ABCDE", fact.Location)
	assert.Equal(t, "XXXXXXXX1234", fact.Account)
	assert.False(t, fact.Complete)
}

func TestInspectDefaultKindFallback(t *testing.T) {
	set := rules.Default()
	set.DefaultKind = models.Income

	fact := parser.Inspect("LKR 100.00 moved on 01 Oct 2025 at 17:49", set)

	assert.Equal(t, models.Income, fact.Kind, "unclassified bodies fall back to the configured default kind")
}

func TestInspectBrokenPatternOnlyLosesThatField(t *testing.T) {
	set := rules.Default()
	set.AmountPattern = "(["

	fact := parser.Inspect("LKR 100.00 debited as POS TXN on 01 Oct 2025 at 17:49 at STORE. Avl Bal 1.00", set)

	assert.False(t, fact.Amount.Valid)
	assert.NotNil(t, fact.Date)
	assert.Equal(t, "STORE", fact.Location)
	assert.False(t, fact.Complete)
}
