// Package ledger implements the authoritative store of transactions.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbudget/backend/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger owns the canonical set of transactions. A single mutex
// serializes mutations against each other and against snapshot reads,
// so that the remove-and-insert of ReplaceMessageDerived is observed
// atomically: no reader sees the store mid-swap.
type Ledger struct {
	db *gorm.DB
	mu sync.Mutex
}

// New returns a Ledger backed by the given database.
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Add validates the transaction and inserts it. The record is visible
// to all queries once Add returns. Validation failures and duplicate
// IDs wrap models.ErrValidation; the ledger is unchanged in both
// cases.
func (l *Ledger) Add(t *models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.db.Create(t).Error
}

// Delete removes the transaction with the given ID. Deleting an ID
// that is not in the ledger is a no-op, not an error.
func (l *Ledger) Delete(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.db.Delete(&models.Transaction{}, "id = ?", id).Error
}

// DeleteAll removes every transaction from the ledger.
func (l *Ledger) DeleteAll() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.db.Where("1 = 1").Delete(&models.Transaction{}).Error
}

// ReplaceMessageDerived removes all message-derived transactions and
// inserts the given new set, in one database transaction. Manual
// entries are never touched. This runs on every inbox refresh, so
// stale message-derived entries never accumulate.
//
// Any extra steps run inside the same transaction, so callers can
// commit related writes and the swap together or not at all.
func (l *Ledger) ReplaceMessageDerived(transactions []models.Transaction, steps ...func(tx *gorm.DB) error) error {
	for _, t := range transactions {
		if t.Origin != models.OriginMessage {
			return fmt.Errorf("%w: only message-derived transactions can be inserted by a refresh", models.ErrValidation)
		}

		if err := t.Validate(); err != nil {
			return err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		for _, step := range steps {
			if err := step(tx); err != nil {
				return err
			}
		}

		err := tx.Where("origin = ?", models.OriginMessage).Delete(&models.Transaction{}).Error
		if err != nil {
			return err
		}

		if len(transactions) == 0 {
			return nil
		}

		return tx.Create(&transactions).Error
	})
}

// All returns every transaction, newest first.
//
// The date ordering is a view concern for the presentation layer, it
// is not a storage invariant.
func (l *Ledger) All() ([]models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var transactions []models.Transaction
	err := l.db.Order("date desc").Find(&transactions).Error

	return transactions, err
}

// ByID returns a single transaction.
func (l *Ledger) ByID(id uuid.UUID) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var transaction models.Transaction
	err := l.db.First(&transaction, "id = ?", id).Error

	return transaction, err
}

// ByKind returns all transactions of one kind, newest first.
func (l *Ledger) ByKind(kind models.TransactionKind) ([]models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var transactions []models.Transaction
	err := l.db.Where("kind = ?", kind).Order("date desc").Find(&transactions).Error

	return transactions, err
}

// ByDateRange returns all transactions with a date in [from, to],
// newest first.
func (l *Ledger) ByDateRange(from, to time.Time) ([]models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var transactions []models.Transaction
	err := l.db.
		Where("date >= ? AND date <= ?", from.In(time.UTC), to.In(time.UTC)).
		Order("date desc").
		Find(&transactions).Error

	return transactions, err
}

// SumByKind returns the sum of all transaction amounts of one kind.
func (l *Ledger) SumByKind(kind models.TransactionKind) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var sum decimal.NullDecimal

	err := l.db.Model(&models.Transaction{}).
		Where("kind = ?", kind).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("summing %s transactions failed: %w", kind, err)
	}

	return sum.Decimal, nil
}
