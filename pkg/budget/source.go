package budget

import (
	"context"
	"errors"

	"github.com/pocketbudget/backend/pkg/models"
)

// ErrSourceUnavailable is returned by RefreshFromMessages when the
// message source cannot be read, e.g. because the host did not grant
// access to it. The ledger is left untouched.
var ErrSourceUnavailable = errors.New("the message source is not available")

// DefaultInboxLimit is how many messages one refresh reads from the
// source.
const DefaultInboxLimit = 100

// MessageSource reads raw messages from the host's inbox. The backend
// never polls: FetchInbox runs only when a refresh is triggered
// explicitly.
type MessageSource interface {
	// FetchInbox returns up to limit messages, newest first.
	// Implementations return ErrSourceUnavailable (possibly wrapped)
	// when the inbox cannot be accessed.
	FetchInbox(ctx context.Context, limit int) ([]models.InboundMessage, error)
}
