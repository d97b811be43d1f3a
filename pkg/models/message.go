package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InboundMessage is a raw item as read from the external message
// source. It is transient: produced by the source, consumed by the
// parser within one ingestion cycle, never stored.
type InboundMessage struct {
	// ExternalID is the identifier the message source assigned. It is
	// stable across repeated inbox reads and is what makes re-ingestion
	// idempotent.
	ExternalID int64
	Sender     string
	Body       string
	ReceivedAt time.Time
}

// Message is the stored record of an inbound message that was accepted
// by the parser, together with the fields extracted from it. The whole
// set is replaced on every inbox refresh.
type Message struct {
	ExternalID int64           `json:"externalId" gorm:"primaryKey"`
	Sender     string          `json:"sender"`
	Body       string          `json:"body"`
	ReceivedAt time.Time       `json:"receivedAt"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Kind       TransactionKind `json:"kind"`
	Timestamps
}

// AfterFind enforces UTC on all timestamps read from the database.
func (m *Message) AfterFind(_ *gorm.DB) error {
	m.ReceivedAt = m.ReceivedAt.In(time.UTC)
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	return nil
}

// BeforeSave sets the timezone for the received time to UTC.
func (m *Message) BeforeSave(_ *gorm.DB) error {
	m.ReceivedAt = m.ReceivedAt.In(time.UTC)
	return nil
}
