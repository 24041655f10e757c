package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fintabular/ledger-api/internal/domain"
)

const transactionColumns = `id, description, date, created_at`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateHeader persists the transaction row without entries. It runs inside
// the posting transaction so a later failure unwinds it.
func (r *TransactionRepository) CreateHeader(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (id, description, date, created_at)
		VALUES ($1, $2, $3, $4)`,
		t.ID, t.Description, t.Date, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("CreateHeader: %w", err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id,
	)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	entries, err := r.entriesFor(ctx, []uuid.UUID{t.ID})
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	t.Entries = entries[t.ID]
	return t, nil
}

// List returns all transactions newest-created-first, each with its entries
// attached.
func (r *TransactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	var ids []uuid.UUID
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("List: scan: %w", err)
		}
		transactions = append(transactions, *t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows: %w", err)
	}

	if len(ids) == 0 {
		return transactions, nil
	}

	entries, err := r.entriesFor(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	for i := range transactions {
		transactions[i].Entries = entries[transactions[i].ID]
	}
	return transactions, nil
}

func (r *TransactionRepository) entriesFor(ctx context.Context, transactionIDs []uuid.UUID) (map[uuid.UUID][]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries
		WHERE transaction_id = ANY($1) ORDER BY transaction_id, position`,
		pq.Array(transactionIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("entriesFor: %w", err)
	}
	defer rows.Close()

	byTransaction := make(map[uuid.UUID][]domain.Entry, len(transactionIDs))
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("entriesFor: scan: %w", err)
		}
		byTransaction[e.TransactionID] = append(byTransaction[e.TransactionID], *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entriesFor: rows: %w", err)
	}
	return byTransaction, nil
}

func scanTransaction(s scanner) (*domain.Transaction, error) {
	var t domain.Transaction
	err := s.Scan(&t.ID, &t.Description, &t.Date, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
