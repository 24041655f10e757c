package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransactionPosted is emitted after a posting commits. Consumers get the
// header plus the balanced totals; entry detail stays in the database.
type TransactionPosted struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	EntryCount    int       `json:"entry_count"`
	Total         string    `json:"total"`
	PostedAt      time.Time `json:"posted_at"`
}

type Publisher interface {
	PublishTransactionPosted(ctx context.Context, event TransactionPosted) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransactionPosted(context.Context, TransactionPosted) error {
	return nil
}
