package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/fintabular/ledger-api/internal/domain"
	"github.com/fintabular/ledger-api/internal/logging"
)

type entryService interface {
	GetEntry(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	ListEntries(ctx context.Context) ([]domain.Entry, error)
	ListAccountEntries(ctx context.Context, accountID uuid.UUID) ([]domain.Entry, error)
}

// EntryHandler exposes entries read-only. Writing entries directly would
// bypass the double-entry invariant, so creation happens exclusively through
// the transactions endpoint.
type EntryHandler struct {
	entries entryService
}

func NewEntryHandler(entries entryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := idFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	entry, err := h.entries.GetEntry(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toEntryDTO(entry))
}

// ListByAccount serves an account's statement: every entry ever posted
// against it, oldest first.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, appErr := idFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	entries, err := h.entries.ListAccountEntries(r.Context(), accountID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list account entries", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]entryDTO, len(entries))
	for i := range entries {
		dtos[i] = toEntryDTO(&entries[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.ListEntries(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list entries", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]entryDTO, len(entries))
	for i := range entries {
		dtos[i] = toEntryDTO(&entries[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
