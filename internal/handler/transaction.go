package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintabular/ledger-api/internal/domain"
	"github.com/fintabular/ledger-api/internal/logging"
	"github.com/fintabular/ledger-api/internal/service/ledger"
)

const dateLayout = "2006-01-02"

type ledgerService interface {
	Post(ctx context.Context, req ledger.PostRequest) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	ledger ledgerService
}

func NewTransactionHandler(ledger ledgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

type createEntryRequest struct {
	AccountID string          `json:"account_id"`
	Direction string          `json:"direction"`
	Value     decimal.Decimal `json:"value"`
}

type createTransactionRequest struct {
	Description string               `json:"description"`
	Date        string               `json:"date"`
	Entries     []createEntryRequest `json:"entries"`
}

func (r createTransactionRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "required"})
	}

	if r.Date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "required"})
	} else if _, err := time.Parse(dateLayout, r.Date); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "must be a date in YYYY-MM-DD format"})
	}

	if len(r.Entries) == 0 {
		errs = append(errs, FieldError{Field: "entries", Message: "at least one entry is required"})
	}

	for i, e := range r.Entries {
		if _, err := uuid.Parse(e.AccountID); err != nil {
			errs = append(errs, FieldError{Field: fmt.Sprintf("entries[%d].account_id", i), Message: "must be a valid uuid"})
		}
		if !domain.Direction(e.Direction).IsValid() {
			errs = append(errs, FieldError{Field: fmt.Sprintf("entries[%d].direction", i), Message: "must be debit or credit"})
		}
		if e.Value.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, FieldError{Field: fmt.Sprintf("entries[%d].value", i), Message: "must be greater than 0"})
		}
	}

	return errs
}

type entryDTO struct {
	ID            uuid.UUID       `json:"id"`
	AccountID     uuid.UUID       `json:"account_id"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	Direction     string          `json:"direction"`
	Value         decimal.Decimal `json:"value"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toEntryDTO(e *domain.Entry) entryDTO {
	return entryDTO{
		ID:            e.ID,
		AccountID:     e.AccountID,
		TransactionID: e.TransactionID,
		Direction:     string(e.Direction),
		Value:         e.Value,
		CreatedAt:     e.CreatedAt,
	}
}

type transactionDTO struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	CreatedAt   time.Time  `json:"created_at"`
	Entries     []entryDTO `json:"entries"`
}

func toTransactionDTO(t *domain.Transaction) transactionDTO {
	entries := make([]entryDTO, len(t.Entries))
	for i := range t.Entries {
		entries[i] = toEntryDTO(&t.Entries[i])
	}
	return transactionDTO{
		ID:          t.ID,
		Description: t.Description,
		Date:        t.Date.Format(dateLayout),
		CreatedAt:   t.CreatedAt,
		Entries:     entries,
	}
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	date, _ := time.Parse(dateLayout, req.Date)
	entries := make([]ledger.EntryInput, len(req.Entries))
	for i, e := range req.Entries {
		accountID, _ := uuid.Parse(e.AccountID)
		entries[i] = ledger.EntryInput{
			AccountID: accountID,
			Direction: domain.Direction(e.Direction),
			Value:     e.Value,
		}
	}

	transaction, err := h.ledger.Post(r.Context(), ledger.PostRequest{
		Description: req.Description,
		Date:        date,
		Entries:     entries,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to post transaction", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(transaction))
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := idFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	transaction, err := h.ledger.GetTransaction(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toTransactionDTO(transaction))
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.ledger.ListTransactions(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transactions", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, len(transactions))
	for i := range transactions {
		dtos[i] = toTransactionDTO(&transactions[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
