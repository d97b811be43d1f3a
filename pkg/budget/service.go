// Package budget is the service facade the presentation layer talks
// to. It composes the ledger, the rule set store and the message
// source into the operations the screens need: adding and deleting
// transactions, refreshing from the inbox, and the derived summary and
// chart views.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbudget/backend/pkg/aggregate"
	"github.com/pocketbudget/backend/pkg/ledger"
	"github.com/pocketbudget/backend/pkg/models"
	"github.com/pocketbudget/backend/pkg/parser"
	"github.com/pocketbudget/backend/pkg/rules"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// Service exposes the budget core to the presentation layer.
//
// There is no live query mechanism: views are pulled with Summary,
// Series and AllTransactions, and Subscribe tells the caller when to
// pull again.
type Service struct {
	db     *gorm.DB
	ledger *ledger.Ledger
	rules  *rules.Store
	source MessageSource

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSub     int
}

// NewService returns a Service on top of the given database and
// message source.
func NewService(db *gorm.DB, source MessageSource) *Service {
	return &Service{
		db:          db,
		ledger:      ledger.New(db),
		rules:       rules.NewStore(db),
		source:      source,
		subscribers: make(map[int]func()),
	}
}

// Ledger returns the underlying ledger.
func (s *Service) Ledger() *ledger.Ledger {
	return s.ledger
}

// Rules returns the rule set store.
func (s *Service) Rules() *rules.Store {
	return s.rules
}

// Subscribe registers a callback that runs after every successful
// mutation. It returns the function that unsubscribes the callback.
func (s *Service) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Service) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, fn := range s.subscribers {
		fn()
	}
}

// AddTransaction validates and inserts a manually entered transaction.
func (s *Service) AddTransaction(t *models.Transaction) error {
	if t.Origin == "" {
		t.Origin = models.OriginManual
	}

	err := s.ledger.Add(t)
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// DeleteTransaction removes a transaction. Unknown IDs are a no-op.
func (s *Service) DeleteTransaction(id uuid.UUID) error {
	err := s.ledger.Delete(id)
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// DeleteAllTransactions clears the ledger entirely, manual and
// message-derived entries alike.
func (s *Service) DeleteAllTransactions() error {
	err := s.ledger.DeleteAll()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// RefreshFromMessages reads the inbox, parses every message and
// replaces all message-derived ledger entries with the result. It
// returns how many messages were accepted.
//
// A source failure surfaces as ErrSourceUnavailable and leaves the
// ledger untouched. Cancelling the context mid-batch aborts before
// anything is committed.
func (s *Service) RefreshFromMessages(ctx context.Context) (int, error) {
	set, err := s.rules.Get()
	if err != nil {
		refreshFailures.Inc()
		return 0, err
	}

	inbound, err := s.source.FetchInbox(ctx, DefaultInboxLimit)
	if err != nil {
		refreshFailures.Inc()

		if errors.Is(err, ErrSourceUnavailable) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %s", ErrSourceUnavailable, err)
	}

	messagesFetched.Add(float64(len(inbound)))

	accepted := make([]models.Message, 0, len(inbound))
	transactions := make([]models.Transaction, 0, len(inbound))

	for _, raw := range inbound {
		if err := ctx.Err(); err != nil {
			refreshFailures.Inc()
			return 0, err
		}

		if !glob.Glob(strings.ToLower(set.SenderFilter), strings.ToLower(raw.Sender)) {
			messagesSkipped.Inc()
			continue
		}

		message, ok := parser.Parse(raw)
		if !ok {
			messagesSkipped.Inc()
			continue
		}

		accepted = append(accepted, message)
		transactions = append(transactions, parser.Transaction(message))
	}

	messagesAccepted.Add(float64(len(accepted)))

	// The stored message records and the ledger swap commit together,
	// so the Messages view never disagrees with the ledger
	err = s.ledger.ReplaceMessageDerived(transactions, func(tx *gorm.DB) error {
		return replaceMessages(tx, accepted)
	})
	if err != nil {
		refreshFailures.Inc()
		return 0, err
	}

	log.Debug().
		Int("fetched", len(inbound)).
		Int("accepted", len(accepted)).
		Msg("inbox refresh committed")

	s.notify()
	return len(accepted), nil
}

// replaceMessages swaps the stored message records for the new set
// within the caller's transaction.
func replaceMessages(tx *gorm.DB, messages []models.Message) error {
	err := tx.Where("1 = 1").Delete(&models.Message{}).Error
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		return nil
	}

	return tx.Create(&messages).Error
}

// Summary returns the overall totals for the current ledger state.
func (s *Service) Summary() (aggregate.BudgetSummary, error) {
	records, err := s.ledger.All()
	if err != nil {
		return aggregate.BudgetSummary{}, err
	}

	return aggregate.Summarize(records), nil
}

// SummaryRange returns the totals for transactions in [from, to].
func (s *Service) SummaryRange(from, to time.Time) (aggregate.BudgetSummary, error) {
	records, err := s.ledger.All()
	if err != nil {
		return aggregate.BudgetSummary{}, err
	}

	return aggregate.SummarizeRange(records, from, to), nil
}

// Series returns the day-bucketed chart series for the trailing
// window.
func (s *Service) Series(windowDays int) (aggregate.ChartSeries, error) {
	records, err := s.ledger.All()
	if err != nil {
		return aggregate.ChartSeries{}, err
	}

	return aggregate.Series(records, windowDays, time.Now().In(time.UTC)), nil
}

// AllTransactions returns every ledger entry, newest first.
func (s *Service) AllTransactions() ([]models.Transaction, error) {
	return s.ledger.All()
}

// Transactions returns the ledger entries of one kind, newest first.
func (s *Service) Transactions(kind models.TransactionKind) ([]models.Transaction, error) {
	return s.ledger.ByKind(kind)
}

// Messages returns the stored message records of the last refresh,
// newest first.
func (s *Service) Messages() ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Order("received_at desc").Find(&messages).Error

	return messages, err
}
