package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintabular/ledger-api/internal/domain"
	"github.com/fintabular/ledger-api/internal/logging"
)

type accountRepo interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) (*domain.Account, error)
}

type AccountService struct {
	accounts accountRepo
}

func NewAccountService(accounts accountRepo) *AccountService {
	return &AccountService{accounts: accounts}
}

type CreateAccountRequest struct {
	Name      string
	Direction domain.Direction
	Balance   decimal.Decimal
}

func (s *AccountService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*domain.Account, error) {
	log := logging.FromContext(ctx)

	if req.Name == "" {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrEmptyName)
	}
	if !req.Direction.IsValid() {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrInvalidDirection)
	}
	if req.Balance.IsNegative() {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrInvalidBalance)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uuid.New(),
		Name:      req.Name,
		Direction: req.Direction,
		Balance:   req.Balance,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	log.Info("account created",
		"account_id", account.ID,
		"name", account.Name,
		"direction", account.Direction,
	)

	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetAccount: %w", err)
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: %w", err)
	}
	return accounts, nil
}

type UpdateAccountRequest struct {
	Name      *string
	Direction *domain.Direction
}

// UpdateAccount mutates name and direction only. Balance is owned by the
// posting engine and is not reachable through this path.
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateAccount: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("UpdateAccount: %w", domain.ErrEmptyName)
		}
		account.Name = *req.Name
	}
	if req.Direction != nil {
		if !req.Direction.IsValid() {
			return nil, fmt.Errorf("UpdateAccount: %w", domain.ErrInvalidDirection)
		}
		account.Direction = *req.Direction
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("UpdateAccount: %w", err)
	}
	return account, nil
}

// SetBalance is an administrative override and is deliberately kept off the
// HTTP surface. It bypasses the double-entry invariant.
func (s *AccountService) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) (*domain.Account, error) {
	account, err := s.accounts.SetBalance(ctx, id, balance)
	if err != nil {
		return nil, fmt.Errorf("SetBalance: %w", err)
	}

	logging.FromContext(ctx).Warn("account balance set administratively",
		"account_id", id, "balance", balance.StringFixed(2))

	return account, nil
}
