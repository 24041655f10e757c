package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintabular/ledger-api/internal/domain"
	"github.com/fintabular/ledger-api/internal/events"
)

type accountRepo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance decimal.Decimal, newVersion int64) error
}

type transactionRepo interface {
	CreateHeader(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
}

type entryRepo interface {
	CreateMany(ctx context.Context, tx *sql.Tx, entries []domain.Entry) error
}

// Service is the posting engine. Post is the only write path for
// transactions, entries, and account balances.
type Service struct {
	accounts     accountRepo
	transactions transactionRepo
	entries      entryRepo
	publisher    events.Publisher
	db           *sql.DB
}

func NewService(
	accounts accountRepo,
	transactions transactionRepo,
	entries entryRepo,
	publisher events.Publisher,
	db *sql.DB,
) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		entries:      entries,
		publisher:    publisher,
		db:           db,
	}
}

func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	t, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetTransaction: %w", err)
	}
	return t, nil
}

func (s *Service) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := s.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	return transactions, nil
}
