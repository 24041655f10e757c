package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction is the side of the ledger an account or entry sits on. For an
// account it fixes the sign convention of its balance; for an entry it states
// which side of the transaction the entry is on.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

func (d Direction) IsValid() bool {
	return d == DirectionDebit || d == DirectionCredit
}

type Account struct {
	ID        uuid.UUID
	Name      string
	Direction Direction
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
