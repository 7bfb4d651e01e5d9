// Package ledger implements the transaction service: owner-scoped create,
// period queries, aggregate summaries and deletes over an injected store.
package ledger

import (
	"context"

	"fintrack/models"
)

// Summary is the pair of aggregate sums over a period. Missing categories
// sum to zero, never null.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
}

// Store is the persistence capability the service runs on. The production
// implementation is storage.TransactionStore (gorm/Postgres); tests use an
// in-memory fake.
type Store interface {
	Create(ctx context.Context, t *models.Transaction) error
	ListByPeriod(ctx context.Context, userID uint, p Period) ([]models.Transaction, error)
	SumByPeriod(ctx context.Context, userID uint, p Period) (Summary, error)
	// DeleteOwned removes the transaction only when it belongs to userID and
	// reports whether a row was removed.
	DeleteOwned(ctx context.Context, userID, id uint) (bool, error)
}

// Service implements the four transaction operations. It is stateless; all
// state lives in the store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add validates and persists a new transaction for userID. The owner is
// always the authenticated caller; any owner field in client input never
// reaches this point.
func (s *Service) Add(ctx context.Context, userID uint, in TransactionInput) (*models.Transaction, error) {
	v, err := in.Validate()
	if err != nil {
		return nil, err
	}
	t := &models.Transaction{
		Description: v.Description,
		Amount:      *v.Amount,
		Type:        v.Type,
		UserID:      userID,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, &StorageError{Op: "create transaction", Err: err}
	}
	return t, nil
}

// List returns the caller's transactions created within the period, in
// storage-native order. An empty period yields an empty slice, not an error.
func (s *Service) List(ctx context.Context, userID uint, p Period) ([]models.Transaction, error) {
	items, err := s.store.ListByPeriod(ctx, userID, p)
	if err != nil {
		return nil, &StorageError{Op: "list transactions", Err: err}
	}
	if items == nil {
		items = []models.Transaction{}
	}
	return items, nil
}

// Summarize returns the income and expense totals over the period.
func (s *Service) Summarize(ctx context.Context, userID uint, p Period) (Summary, error) {
	sum, err := s.store.SumByPeriod(ctx, userID, p)
	if err != nil {
		return Summary{}, &StorageError{Op: "summarize transactions", Err: err}
	}
	return sum, nil
}

// Remove deletes the transaction only if userID owns it. A nonexistent id
// and a foreign-owned id both surface as NotFoundError.
func (s *Service) Remove(ctx context.Context, userID, id uint) error {
	deleted, err := s.store.DeleteOwned(ctx, userID, id)
	if err != nil {
		return &StorageError{Op: "delete transaction", Err: err}
	}
	if !deleted {
		return &NotFoundError{Resource: "transaction"}
	}
	return nil
}
