package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintabular/ledger-api/internal/domain"
	"github.com/fintabular/ledger-api/internal/service/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type mockLedgerService struct {
	posted *ledger.PostRequest
	tx     *domain.Transaction
	err    error
}

func (m *mockLedgerService) Post(_ context.Context, req ledger.PostRequest) (*domain.Transaction, error) {
	m.posted = &req
	return m.tx, m.err
}

func (m *mockLedgerService) GetTransaction(context.Context, uuid.UUID) (*domain.Transaction, error) {
	return m.tx, m.err
}

func (m *mockLedgerService) ListTransactions(context.Context) ([]domain.Transaction, error) {
	if m.tx == nil {
		return nil, m.err
	}
	return []domain.Transaction{*m.tx}, m.err
}

func postTransaction(t *testing.T, h *TransactionHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestCreateTransaction_Validation(t *testing.T) {
	acct := uuid.NewString()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{
			name:       "malformed json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing description",
			body:       `{"date":"2024-01-15","entries":[{"account_id":"` + acct + `","direction":"debit","value":10}]}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "description",
		},
		{
			name:       "bad date format",
			body:       `{"description":"x","date":"15/01/2024","entries":[{"account_id":"` + acct + `","direction":"debit","value":10}]}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "date",
		},
		{
			name:       "no entries",
			body:       `{"description":"x","date":"2024-01-15","entries":[]}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "entries",
		},
		{
			name:       "bad direction",
			body:       `{"description":"x","date":"2024-01-15","entries":[{"account_id":"` + acct + `","direction":"up","value":10}]}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "entries[0].direction",
		},
		{
			name:       "non-positive value",
			body:       `{"description":"x","date":"2024-01-15","entries":[{"account_id":"` + acct + `","direction":"debit","value":0}]}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "entries[0].value",
		},
		{
			name:       "bad account id",
			body:       `{"description":"x","date":"2024-01-15","entries":[{"account_id":"not-a-uuid","direction":"debit","value":10}]}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "entries[0].account_id",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockLedgerService{}
			h := NewTransactionHandler(mock)

			rec := postTransaction(t, h, tc.body)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Nil(t, mock.posted, "service must not be called on invalid input")

			if tc.wantField == "" {
				return
			}
			var resp APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			fields, err := json.Marshal(resp.Error.Details)
			require.NoError(t, err)
			assert.Contains(t, string(fields), tc.wantField)
		})
	}
}

func TestCreateTransaction_UnbalancedMapsTo422(t *testing.T) {
	mock := &mockLedgerService{err: domain.ErrUnbalanced}
	h := NewTransactionHandler(mock)

	acctA := uuid.NewString()
	acctB := uuid.NewString()
	body := `{"description":"x","date":"2024-01-15","entries":[` +
		`{"account_id":"` + acctA + `","direction":"debit","value":100},` +
		`{"account_id":"` + acctB + `","direction":"credit","value":50}]}`

	rec := postTransaction(t, h, body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TRANSACTION_UNBALANCED", resp.Error.Code)
	require.NotNil(t, mock.posted)
	assert.Len(t, mock.posted.Entries, 2)
}

func TestCreateTransaction_PassesParsedRequest(t *testing.T) {
	acctA := uuid.New()
	acctB := uuid.New()

	mock := &mockLedgerService{tx: &domain.Transaction{ID: uuid.New()}}
	h := NewTransactionHandler(mock)

	body := `{"description":"opening balance","date":"2024-01-15","entries":[` +
		`{"account_id":"` + acctA.String() + `","direction":"debit","value":100.50},` +
		`{"account_id":"` + acctB.String() + `","direction":"credit","value":100.50}]}`

	rec := postTransaction(t, h, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, mock.posted)
	assert.Equal(t, "opening balance", mock.posted.Description)
	assert.Equal(t, "2024-01-15", mock.posted.Date.Format("2006-01-02"))
	require.Len(t, mock.posted.Entries, 2)
	assert.Equal(t, acctA, mock.posted.Entries[0].AccountID)
	assert.Equal(t, domain.DirectionDebit, mock.posted.Entries[0].Direction)
	assert.True(t, mock.posted.Entries[0].Value.Equal(dec("100.50")))
}
