// Package parser turns raw inbound messages into structured financial
// records.
//
// All functions here are pure: they share no state and are safe to run
// in parallel across messages. Malformed input degrades to absence,
// it never produces an error.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbudget/backend/pkg/models"
	"github.com/pocketbudget/backend/pkg/rules"
	"github.com/shopspring/decimal"
)

// messageNamespace is the UUID namespace for message-derived
// transaction IDs. It is fixed so that the same external message ID
// always derives the same transaction ID.
var messageNamespace = uuid.MustParse("9f36b9e0-55dc-4ee5-a6f3-b88b50c5f6b1")

// Fact is the result of applying the configured rule set to one
// message body. Fields that could not be extracted are absent.
type Fact struct {
	Amount   decimal.NullDecimal
	Date     *time.Time
	Location string
	Account  string
	Kind     models.TransactionKind

	// Complete reports whether both the amount and the timestamp were
	// extracted. The settings screen uses this as the signal that the
	// configured patterns work for the sample message.
	Complete bool
}

// Inspect applies the configured rule set to a message body. This
// backs the rule-test tool: unlike Parse, it uses the configured
// amount pattern and falls back to the rule set's default kind when
// the keywords classify neither way.
func Inspect(body string, set rules.Set) Fact {
	var fact Fact

	if raw, ok := ExtractField(body, set.AmountPattern); ok {
		amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err == nil {
			fact.Amount = decimal.NullDecimal{Decimal: amount, Valid: true}
		}
	}

	if date, ok := ExtractDate(body, set); ok {
		fact.Date = &date
	}

	fact.Location, _ = ExtractField(body, set.LocationPattern)
	fact.Account, _ = ExtractField(body, set.AccountPattern)

	kind, ok := Classify(body)
	if !ok {
		kind = set.DefaultKind
	}
	fact.Kind = kind

	fact.Complete = fact.Amount.Valid && fact.Date != nil

	return fact
}

// Parse decides whether an inbound message describes a financial event
// and returns the accepted message record.
//
// The amount gate runs first: without an extractable positive amount
// the message is dropped before any keyword scanning happens. Keep
// this ordering, it is the cheap fail-fast path for the bulk of an
// inbox. Messages that pass the amount gate but match neither keyword
// set are dropped as well.
func Parse(msg models.InboundMessage) (models.Message, bool) {
	amount, ok := ExtractAmount(msg.Body)
	if !ok {
		return models.Message{}, false
	}

	kind, ok := Classify(msg.Body)
	if !ok {
		return models.Message{}, false
	}

	sender := msg.Sender
	if sender == "" {
		sender = "Unknown"
	}

	return models.Message{
		ExternalID: msg.ExternalID,
		Sender:     sender,
		Body:       msg.Body,
		ReceivedAt: msg.ReceivedAt,
		Amount:     amount,
		Kind:       kind,
	}, true
}

// Transaction builds the ledger entry for an accepted message. The ID
// is derived deterministically from the external message ID so that
// re-ingesting the same inbox never duplicates entries. The date is
// the message's own timestamp, not the regex-extracted one; the
// extracted date only serves the rule-test tool.
func Transaction(m models.Message) models.Transaction {
	return models.Transaction{
		DefaultModel: models.DefaultModel{
			ID: uuid.NewSHA1(messageNamespace, []byte(strconv.FormatInt(m.ExternalID, 10))),
		},
		Kind:   m.Kind,
		Amount: m.Amount,
		Note:   "SMS from " + m.Sender,
		Date:   m.ReceivedAt,
		Origin: models.OriginMessage,
	}
}
