package storage

import (
	"context"

	"gorm.io/gorm"

	"fintrack/models"
	"fintrack/pkg/ledger"
)

// TransactionStore is the gorm-backed ledger.Store.
type TransactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Create(ctx context.Context, t *models.Transaction) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *TransactionStore) ListByPeriod(ctx context.Context, userID uint, p ledger.Period) ([]models.Transaction, error) {
	var items []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, p.Start, p.End).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// SumByPeriod computes both totals in a single conditional aggregate.
// COALESCE keeps the sums at zero when no rows match.
func (s *TransactionStore) SumByPeriod(ctx context.Context, userID uint, p ledger.Period) (ledger.Summary, error) {
	var sum ledger.Summary
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_income, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_expense",
			models.TypeIncome, models.TypeExpense,
		).
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, p.Start, p.End).
		Scan(&sum).Error
	return sum, err
}

// DeleteOwned deletes by id and owner in one statement so a foreign-owned id
// is indistinguishable from a nonexistent one.
func (s *TransactionStore) DeleteOwned(ctx context.Context, userID, id uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Transaction{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
