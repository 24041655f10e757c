package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintabular/ledger-api/internal/domain"
)

type entryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	List(ctx context.Context) ([]domain.Entry, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Entry, error)
}

// EntryService is read-only. Entries come into existence only through the
// posting engine, so the balanced-transaction invariant holds for every row.
type EntryService struct {
	entries entryRepo
}

func NewEntryService(entries entryRepo) *EntryService {
	return &EntryService{entries: entries}
}

func (s *EntryService) GetEntry(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetEntry: %w", err)
	}
	return entry, nil
}

func (s *EntryService) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListEntries: %w", err)
	}
	return entries, nil
}

func (s *EntryService) ListAccountEntries(ctx context.Context, accountID uuid.UUID) ([]domain.Entry, error) {
	entries, err := s.entries.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("ListAccountEntries: %w", err)
	}
	return entries, nil
}
