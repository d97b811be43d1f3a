// Package rules holds the configurable extraction rule set and its
// persistence.
//
// Each rule is a regular expression with a single capture group. Rules
// are never validated when they are saved: a pattern that does not
// compile simply never matches when it is applied.
package rules

import (
	"github.com/pocketbudget/backend/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting keys. These are the primary keys of the rows in the settings
// table, one row per rule set field.
const (
	keyAmountPattern   = "amount_pattern"
	keyDatePattern     = "date_pattern"
	keyTimePattern     = "time_pattern"
	keyLocationPattern = "location_pattern"
	keyAccountPattern  = "account_pattern"
	keySenderFilter    = "sender_filter"
	keyDefaultKind     = "default_transaction_kind"
	keySampleMessage   = "sample_message"
)

// Built-in defaults. The default patterns and the default sample
// message belong together: applying the former to the latter is the
// self-test shipped in the settings screen, so both must stay in sync.
const (
	DefaultAmountPattern   = `LKR ([0-9,]+\.[0-9]{2})`
	DefaultDatePattern     = `on (\d{2} \w{3} \d{4})`
	DefaultTimePattern     = `at (\d{2}:\d{2})`
	DefaultLocationPattern = `at ([A-Za-z0-9\s]+)\. Avl`
	DefaultAccountPattern  = `AC (\w+)`
	DefaultSenderFilter    = `*`
	DefaultSampleMessage   = "LKR 6,1234.30 debited from AC XXXXXXXX1234 as POS TXN on 01 Oct 2025 17:49 at ABCDE. Avl Bal 12,123.98 Call 94112448888 for info"
)

// Set is one complete extraction rule set. There is a single rule set
// for the whole process; it is loaded from the settings store and
// passed explicitly to everything that applies it.
type Set struct {
	AmountPattern   string
	DatePattern     string
	TimePattern     string
	LocationPattern string
	AccountPattern  string

	// SenderFilter is a glob matched case-insensitively against the
	// sender of an inbound message. Messages from non-matching senders
	// are skipped during ingestion.
	SenderFilter string

	// DefaultKind is the classification fallback used by the rule-test
	// tool when neither keyword set matches. The ingestion path never
	// uses it, it skips unclassified messages instead.
	DefaultKind models.TransactionKind

	// SampleMessage is the message the settings screen applies the
	// patterns to as a correctness check.
	SampleMessage string
}

// Default returns the built-in rule set.
func Default() Set {
	return Set{
		AmountPattern:   DefaultAmountPattern,
		DatePattern:     DefaultDatePattern,
		TimePattern:     DefaultTimePattern,
		LocationPattern: DefaultLocationPattern,
		AccountPattern:  DefaultAccountPattern,
		SenderFilter:    DefaultSenderFilter,
		DefaultKind:     models.Expense,
		SampleMessage:   DefaultSampleMessage,
	}
}

// Store reads and writes the rule set in the settings table. Every
// save persists immediately; reads return the last saved value or the
// built-in default for keys that were never saved.
type Store struct {
	db *gorm.DB
}

// NewStore returns a Store backed by the given database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get loads the full rule set.
func (s *Store) Get() (Set, error) {
	var settings []models.Setting

	err := s.db.Find(&settings).Error
	if err != nil {
		return Set{}, err
	}

	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}

	set := Default()
	if v, ok := values[keyAmountPattern]; ok {
		set.AmountPattern = v
	}
	if v, ok := values[keyDatePattern]; ok {
		set.DatePattern = v
	}
	if v, ok := values[keyTimePattern]; ok {
		set.TimePattern = v
	}
	if v, ok := values[keyLocationPattern]; ok {
		set.LocationPattern = v
	}
	if v, ok := values[keyAccountPattern]; ok {
		set.AccountPattern = v
	}
	if v, ok := values[keySenderFilter]; ok {
		set.SenderFilter = v
	}
	if v, ok := values[keySampleMessage]; ok {
		set.SampleMessage = v
	}

	// An unknown stored kind falls back to the default, it does not
	// error
	if v, ok := values[keyDefaultKind]; ok {
		kind := models.TransactionKind(v)
		if kind == models.Income || kind == models.Expense {
			set.DefaultKind = kind
		}
	}

	return set, nil
}

func (s *Store) save(key, value string) error {
	setting := models.Setting{Key: key, Value: value}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// SaveAmountPattern persists the amount pattern.
func (s *Store) SaveAmountPattern(pattern string) error {
	return s.save(keyAmountPattern, pattern)
}

// SaveDatePattern persists the date pattern.
func (s *Store) SaveDatePattern(pattern string) error {
	return s.save(keyDatePattern, pattern)
}

// SaveTimePattern persists the time pattern.
func (s *Store) SaveTimePattern(pattern string) error {
	return s.save(keyTimePattern, pattern)
}

// SaveLocationPattern persists the location pattern.
func (s *Store) SaveLocationPattern(pattern string) error {
	return s.save(keyLocationPattern, pattern)
}

// SaveAccountPattern persists the account pattern.
func (s *Store) SaveAccountPattern(pattern string) error {
	return s.save(keyAccountPattern, pattern)
}

// SaveSenderFilter persists the sender filter glob.
func (s *Store) SaveSenderFilter(filter string) error {
	return s.save(keySenderFilter, filter)
}

// SaveDefaultKind persists the fallback classification.
func (s *Store) SaveDefaultKind(kind models.TransactionKind) error {
	return s.save(keyDefaultKind, string(kind))
}

// SaveSampleMessage persists the sample message.
func (s *Store) SaveSampleMessage(message string) error {
	return s.save(keySampleMessage, message)
}
