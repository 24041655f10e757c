package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintabular/ledger-api/internal/domain"
	"github.com/fintabular/ledger-api/internal/events"
	"github.com/fintabular/ledger-api/internal/logging"
)

// balanceTolerance bounds the allowed difference between debit and credit
// totals. Amounts are exact decimals, so this only forgives sub-cent noise in
// caller-supplied values.
var balanceTolerance = decimal.RequireFromString("0.01")

type EntryInput struct {
	AccountID uuid.UUID
	Direction domain.Direction
	Value     decimal.Decimal
}

type PostRequest struct {
	Description string
	Date        time.Time
	Entries     []EntryInput
}

// Post validates the request, then applies the transaction atomically:
// header, per-account balance updates, and entry rows all commit or roll back
// together. Referenced accounts are row-locked in ascending id order, so
// concurrent posts over overlapping accounts serialize instead of losing
// updates, and cannot deadlock each other.
func (s *Service) Post(ctx context.Context, req PostRequest) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	if err := validatePost(req); err != nil {
		return nil, fmt.Errorf("Post: %w", err)
	}

	debits, credits := entryTotals(req.Entries)
	if debits.Sub(credits).Abs().GreaterThan(balanceTolerance) {
		return nil, fmt.Errorf("Post: debit total %s, credit total %s: %w",
			debits.StringFixed(2), credits.StringFixed(2), domain.ErrUnbalanced)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Post: begin tx: %w", err)
	}
	defer tx.Rollback()

	locked, err := s.lockAccountsInOrder(ctx, tx, accountIDs(req.Entries))
	if err != nil {
		return nil, fmt.Errorf("Post: %w", err)
	}

	now := time.Now().UTC()
	t := &domain.Transaction{
		ID:          uuid.New(),
		Description: req.Description,
		Date:        req.Date,
		CreatedAt:   now,
	}

	if err := s.transactions.CreateHeader(ctx, tx, t); err != nil {
		return nil, fmt.Errorf("Post: create header: %w", err)
	}

	entries := make([]domain.Entry, 0, len(req.Entries))
	for _, in := range req.Entries {
		acct := locked[in.AccountID]
		acct.Balance = domain.NextBalance(acct.Direction, in.Direction, in.Value, acct.Balance)
		acct.Version++

		if err := s.accounts.UpdateBalance(ctx, tx, acct.ID, acct.Balance, acct.Version); err != nil {
			return nil, fmt.Errorf("Post: update balance for %s: %w", acct.ID, err)
		}

		entries = append(entries, domain.Entry{
			ID:            uuid.New(),
			AccountID:     in.AccountID,
			TransactionID: t.ID,
			Direction:     in.Direction,
			Value:         in.Value,
			CreatedAt:     now,
		})
	}

	if err := s.entries.CreateMany(ctx, tx, entries); err != nil {
		return nil, fmt.Errorf("Post: create entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Post: commit: %w", err)
	}

	t.Entries = entries

	s.publishPosted(ctx, t, debits)

	log.Info("transaction posted",
		"transaction_id", t.ID,
		"entry_count", len(entries),
		"total", debits.StringFixed(2),
	)

	return t, nil
}

func validatePost(req PostRequest) error {
	if req.Description == "" {
		return fmt.Errorf("validatePost: %w", domain.ErrEmptyDescription)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("validatePost: %w", domain.ErrInvalidDate)
	}
	if len(req.Entries) == 0 {
		return fmt.Errorf("validatePost: %w", domain.ErrNoEntries)
	}
	for i, e := range req.Entries {
		if !e.Direction.IsValid() {
			return fmt.Errorf("validatePost: entry %d: %w", i, domain.ErrInvalidDirection)
		}
		if e.Value.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("validatePost: entry %d: %w", i, domain.ErrInvalidValue)
		}
	}
	return nil
}

func entryTotals(entries []EntryInput) (debits, credits decimal.Decimal) {
	for _, e := range entries {
		if e.Direction == domain.DirectionDebit {
			debits = debits.Add(e.Value)
		} else {
			credits = credits.Add(e.Value)
		}
	}
	return debits, credits
}

func accountIDs(entries []EntryInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; ok {
			continue
		}
		seen[e.AccountID] = struct{}{}
		ids = append(ids, e.AccountID)
	}
	return ids
}

// lockAccountsInOrder takes FOR UPDATE locks in ascending account id order so
// that concurrent posts over overlapping account sets cannot deadlock.
func (s *Service) lockAccountsInOrder(ctx context.Context, tx *sql.Tx, ids []uuid.UUID) (map[uuid.UUID]*domain.Account, error) {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	result := make(map[uuid.UUID]*domain.Account, len(ids))
	for _, id := range sorted {
		acct, err := s.accounts.GetForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("lockAccountsInOrder: account %s: %w", id, domain.ErrAccountNotFound)
			}
			return nil, fmt.Errorf("lockAccountsInOrder: %w", err)
		}
		result[id] = acct
	}
	return result, nil
}

// publishPosted runs after commit; a broker failure must not fail the post.
func (s *Service) publishPosted(ctx context.Context, t *domain.Transaction, total decimal.Decimal) {
	event := events.TransactionPosted{
		TransactionID: t.ID,
		Description:   t.Description,
		Date:          t.Date.Format("2006-01-02"),
		EntryCount:    len(t.Entries),
		Total:         total.StringFixed(2),
		PostedAt:      t.CreatedAt,
	}
	if err := s.publisher.PublishTransactionPosted(ctx, event); err != nil {
		logging.FromContext(ctx).Error("failed to publish transaction posted event",
			"transaction_id", t.ID, "error", err)
	}
}
