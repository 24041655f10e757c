package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintabular/ledger-api/internal/domain"
)

type mockEntryService struct {
	byAccount map[uuid.UUID][]domain.Entry
	entry     *domain.Entry
	err       error

	listedAccount uuid.UUID
}

func (m *mockEntryService) GetEntry(_ context.Context, id uuid.UUID) (*domain.Entry, error) {
	if m.entry != nil && m.entry.ID == id {
		return m.entry, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockEntryService) ListEntries(context.Context) ([]domain.Entry, error) {
	return nil, m.err
}

func (m *mockEntryService) ListAccountEntries(_ context.Context, accountID uuid.UUID) ([]domain.Entry, error) {
	m.listedAccount = accountID
	return m.byAccount[accountID], m.err
}

func getWithID(t *testing.T, fn http.HandlerFunc, path, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func TestListEntriesByAccount(t *testing.T) {
	accountID := uuid.New()
	entries := []domain.Entry{
		{ID: uuid.New(), AccountID: accountID, TransactionID: uuid.New(), Direction: domain.DirectionDebit, Value: dec("30.00"), CreatedAt: time.Now().UTC()},
		{ID: uuid.New(), AccountID: accountID, TransactionID: uuid.New(), Direction: domain.DirectionCredit, Value: dec("12.50"), CreatedAt: time.Now().UTC()},
	}

	mock := &mockEntryService{byAccount: map[uuid.UUID][]domain.Entry{accountID: entries}}
	h := NewEntryHandler(mock)

	rec := getWithID(t, h.ListByAccount, "/api/v1/accounts/"+accountID.String()+"/entries", accountID.String())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accountID, mock.listedAccount)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var dtos []entryDTO
	require.NoError(t, json.Unmarshal(data, &dtos))
	require.Len(t, dtos, 2)
	assert.Equal(t, entries[0].ID, dtos[0].ID)
	assert.Equal(t, "debit", dtos[0].Direction)
	assert.True(t, dtos[1].Value.Equal(dec("12.50")))
}

func TestListEntriesByAccount_BadID(t *testing.T) {
	mock := &mockEntryService{}
	h := NewEntryHandler(mock)

	rec := getWithID(t, h.ListByAccount, "/api/v1/accounts/not-a-uuid/entries", "not-a-uuid")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, uuid.Nil, mock.listedAccount)
}

func TestGetEntry_NotFound(t *testing.T) {
	h := NewEntryHandler(&mockEntryService{})

	id := uuid.NewString()
	rec := getWithID(t, h.Get, "/api/v1/entries/"+id, id)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "RESOURCE_NOT_FOUND", resp.Error.Code)
}
