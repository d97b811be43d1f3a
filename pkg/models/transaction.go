package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind determines whether a transaction is money coming in
// or money going out.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// TransactionOrigin records how a transaction entered the ledger.
type TransactionOrigin string

const (
	OriginManual  TransactionOrigin = "MANUAL"
	OriginMessage TransactionOrigin = "SMS"
)

// AmountCap is the largest amount a single transaction may have.
var AmountCap = decimal.RequireFromString("999999999.99")

// NoteMaxLength is the longest note a transaction may have, in characters.
const NoteMaxLength = 100

// Transaction represents a single ledger entry.
type Transaction struct {
	DefaultModel
	Kind   TransactionKind `json:"kind" gorm:"index"`
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Note   string          `json:"note"`
	// Date is the time the transaction occurred. For manual entries it
	// defaults to the creation time, for message-derived entries it is
	// the timestamp of the message.
	Date   time.Time         `json:"date"`
	Origin TransactionOrigin `json:"origin" gorm:"index"`
	Tag    *string           `json:"tag"` // Optional free-text category
}

// Validate checks the invariants for a ledger entry. Every violation
// is a sentinel wrapping ErrValidation.
func (t Transaction) Validate() error {
	note := strings.TrimSpace(t.Note)

	switch {
	case !t.Amount.IsPositive():
		return ErrAmountNotPositive
	case t.Amount.GreaterThan(AmountCap):
		return ErrAmountTooLarge
	case note == "":
		return ErrNoteEmpty
	case len([]rune(note)) > NoteMaxLength:
		return ErrNoteTooLong
	case t.Kind != Income && t.Kind != Expense:
		return ErrKindInvalid
	}

	return nil
}

// AfterFind enforces the transaction date to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave
//   - trims whitespace from the note
//   - defaults the origin to Manual
//   - sets the timezone for the date to UTC, defaulting a zero date
//     to the current time
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if t.Origin == "" {
		t.Origin = OriginManual
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}
