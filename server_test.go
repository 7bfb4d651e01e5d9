package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/models"
	"fintrack/pkg/ledger"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type fakeUsers struct {
	byName map[string]*models.User
}

func (f *fakeUsers) ByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return u, nil
}

type memStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.Transaction
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[uint]models.Transaction)}
}

func (m *memStore) Create(_ context.Context, t *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t.ID = m.nextID
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	m.rows[t.ID] = *t
	return nil
}

func (m *memStore) ListByPeriod(_ context.Context, userID uint, p ledger.Period) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, t := range m.rows {
		if t.UserID == userID && p.Contains(t.CreatedAt) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) SumByPeriod(ctx context.Context, userID uint, p ledger.Period) (ledger.Summary, error) {
	items, _ := m.ListByPeriod(ctx, userID, p)
	var sum ledger.Summary
	for _, t := range items {
		switch t.Type {
		case models.TypeIncome:
			sum.TotalIncome += t.Amount
		case models.TypeExpense:
			sum.TotalExpense += t.Amount
		}
	}
	return sum, nil
}

func (m *memStore) DeleteOwned(_ context.Context, userID, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func setupTestServer(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	store := newMemStore()
	users := &fakeUsers{byName: map[string]*models.User{
		"alice": {ID: 1, Username: "alice"},
		"bob":   {ID: 2, Username: "bob"},
	}}
	r := gin.New()
	setupRoutes(r, ledger.NewService(store), users)
	return r, store
}

func tokenFor(t *testing.T, username string) string {
	t.Helper()
	token, err := signToken(jwtSecret, username, time.Hour)
	require.NoError(t, err)
	return token
}

func TestHealthz(t *testing.T) {
	r, _ := setupTestServer(t)
	resp := performRequest(r, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestUnauthorizedRequests(t *testing.T) {
	r, _ := setupTestServer(t)

	resp := performRequest(r, http.MethodGet, "/transactions?startDate=2024-01-01&endDate=2024-12-31", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = performRequest(r, http.MethodGet, "/transactions?startDate=2024-01-01&endDate=2024-12-31", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// valid signature, unknown user
	resp = performRequest(r, http.MethodGet, "/transactions?startDate=2024-01-01&endDate=2024-12-31", nil, tokenFor(t, "mallory"))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateTransaction(t *testing.T) {
	r, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]any{"description": "Coffee", "amount": 4.5, "type": "expense"})
	resp := performRequest(r, http.MethodPost, "/transactions", bytes.NewReader(body), tokenFor(t, "alice"))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var tx models.Transaction
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tx))
	assert.NotZero(t, tx.ID)
	assert.Equal(t, "Coffee", tx.Description)
	assert.Equal(t, 4.5, tx.Amount)
	assert.Equal(t, "expense", tx.Type)
	assert.Equal(t, uint(1), tx.UserID)
}

func TestCreateIgnoresClientSuppliedOwner(t *testing.T) {
	r, store := setupTestServer(t)

	body := []byte(`{"description":"Sneaky","amount":1,"type":"income","userId":999}`)
	resp := performRequest(r, http.MethodPost, "/transactions", bytes.NewReader(body), tokenFor(t, "alice"))
	require.Equal(t, http.StatusCreated, resp.Code)

	var tx models.Transaction
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tx))
	assert.Equal(t, uint(1), tx.UserID)
	assert.Equal(t, uint(1), store.rows[tx.ID].UserID)
}

func TestCreateValidation(t *testing.T) {
	r, _ := setupTestServer(t)
	token := tokenFor(t, "alice")

	body := []byte(`{"description":"","amount":10,"type":"income"}`)
	resp := performRequest(r, http.MethodPost, "/transactions", bytes.NewReader(body), token)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	var e map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &e))
	assert.Contains(t, e["error"], "description")

	// non-numeric amount never binds
	body = []byte(`{"description":"Coffee","amount":"four","type":"expense"}`)
	resp = performRequest(r, http.MethodPost, "/transactions", bytes.NewReader(body), token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateSanitizesMarkup(t *testing.T) {
	r, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]any{"description": "<img src=x onerror=alert(1)>", "amount": 2, "type": "expense"})
	resp := performRequest(r, http.MethodPost, "/transactions", bytes.NewReader(body), tokenFor(t, "alice"))
	require.Equal(t, http.StatusCreated, resp.Code)

	assert.NotContains(t, resp.Body.String(), "<img")
}

func TestListTransactions(t *testing.T) {
	r, _ := setupTestServer(t)
	token := tokenFor(t, "alice")

	for _, d := range []string{"Coffee", "Lunch"} {
		body, _ := json.Marshal(map[string]any{"description": d, "amount": 5, "type": "expense"})
		resp := performRequest(r, http.MethodPost, "/transactions", bytes.NewReader(body), token)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := performRequest(r, http.MethodGet, "/transactions?startDate=2000-01-01&endDate=2100-01-01", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	var items []models.Transaction
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &items))
	assert.Len(t, items, 2)

	// bob sees none of alice's rows
	resp = performRequest(r, http.MethodGet, "/transactions?startDate=2000-01-01&endDate=2100-01-01", nil, tokenFor(t, "bob"))
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &items))
	assert.Empty(t, items)
}

func TestListRequiresValidPeriod(t *testing.T) {
	r, _ := setupTestServer(t)
	token := tokenFor(t, "alice")

	resp := performRequest(r, http.MethodGet, "/transactions", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "startDate")

	resp = performRequest(r, http.MethodGet, "/transactions?startDate=2024-01-01&endDate=31-12-2024", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "endDate")
}

func TestSummary(t *testing.T) {
	r, _ := setupTestServer(t)
	token := tokenFor(t, "alice")

	for _, tc := range []struct {
		desc, ty string
		amount   float64
	}{
		{"Salary", "income", 200},
		{"Groceries", "expense", 50},
	} {
		body, _ := json.Marshal(map[string]any{"description": tc.desc, "amount": tc.amount, "type": tc.ty})
		resp := performRequest(r, http.MethodPost, "/transactions", bytes.NewReader(body), token)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := performRequest(r, http.MethodGet, "/transactions/summary?startDate=2000-01-01&endDate=2100-01-01", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	var sum ledger.Summary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &sum))
	assert.Equal(t, 200.0, sum.TotalIncome)
	assert.Equal(t, 50.0, sum.TotalExpense)
}

func TestSummaryEmptyPeriodIsZero(t *testing.T) {
	r, _ := setupTestServer(t)

	resp := performRequest(r, http.MethodGet, "/transactions/summary?startDate=2000-01-01&endDate=2000-01-02", nil, tokenFor(t, "alice"))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"totalIncome":0,"totalExpense":0}`, resp.Body.String())
}

func TestDeleteTransaction(t *testing.T) {
	r, _ := setupTestServer(t)
	token := tokenFor(t, "alice")

	body, _ := json.Marshal(map[string]any{"description": "Coffee", "amount": 4.5, "type": "expense"})
	resp := performRequest(r, http.MethodPost, "/transactions", bytes.NewReader(body), token)
	require.Equal(t, http.StatusCreated, resp.Code)
	var tx models.Transaction
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tx))

	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/transactions/%d", tx.ID), nil, token)
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Empty(t, resp.Body.String())

	// second delete: gone
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/transactions/%d", tx.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteForeignTransactionIsNotFound(t *testing.T) {
	r, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]any{"description": "Bob's", "amount": 9, "type": "income"})
	resp := performRequest(r, http.MethodPost, "/transactions", bytes.NewReader(body), tokenFor(t, "bob"))
	require.Equal(t, http.StatusCreated, resp.Code)
	var tx models.Transaction
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tx))

	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/transactions/%d", tx.ID), nil, tokenFor(t, "alice"))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteBadID(t *testing.T) {
	r, _ := setupTestServer(t)

	resp := performRequest(r, http.MethodDelete, "/transactions/abc", nil, tokenFor(t, "alice"))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rateLimitMiddleware(newRateLimiter(time.Minute, 2)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		resp := performRequest(r, http.MethodGet, "/ping", nil, "")
		require.Equal(t, http.StatusOK, resp.Code)
	}
	resp := performRequest(r, http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
}
