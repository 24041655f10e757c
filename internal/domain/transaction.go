package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger event. Its entries are created together
// with the header and never change afterwards.
type Transaction struct {
	ID          uuid.UUID
	Description string
	Date        time.Time
	CreatedAt   time.Time
	Entries     []Entry
}

// Entry records one side of a transaction against a single account. Value is
// always positive; Direction carries the sign.
type Entry struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	TransactionID uuid.UUID
	Direction     Direction
	Value         decimal.Decimal
	CreatedAt     time.Time
}
