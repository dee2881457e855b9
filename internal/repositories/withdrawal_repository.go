package repositories

import (
	"errors"
	"time"

	"salarysync/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrWithdrawalNotFound = errors.New("withdrawal not found")

// WithdrawalRepository is the append-only ledger of salary advances.
// Records are never updated or deleted.
type WithdrawalRepository interface {
	// Create appends a withdrawal record.
	Create(w *models.Withdrawal) error

	// SumByUserSince totals the amounts a user withdrew at or after the
	// given instant. Passing the cycle start scopes the total to the
	// current cycle.
	SumByUserSince(userID uint, since time.Time) (float64, error)

	// ListByUser returns the most recent withdrawals for a user,
	// newest first.
	ListByUser(userID uint, limit int) ([]models.Withdrawal, error)

	// ListByEmployer returns every withdrawal under an employer.
	ListByEmployer(employerID uint) ([]models.Withdrawal, error)

	// All returns every withdrawal on the platform.
	All() ([]models.Withdrawal, error)

	// LockUser loads a user row with a write lock. Only meaningful
	// inside ExecuteInTransaction; the lock is what prevents two
	// concurrent requests from both passing the limit check.
	LockUser(userID uint) (*models.User, error)

	// ExecuteInTransaction runs fn against a transactional copy of the
	// repository, committing when fn returns nil.
	ExecuteInTransaction(fn func(tx WithdrawalRepository) error) error
}

type withdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new WithdrawalRepository
func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

func (r *withdrawalRepository) Create(w *models.Withdrawal) error {
	return r.db.Create(w).Error
}

func (r *withdrawalRepository) SumByUserSince(userID uint, since time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&models.Withdrawal{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *withdrawalRepository) ListByUser(userID uint, limit int) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	q := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&withdrawals).Error
	return withdrawals, err
}

func (r *withdrawalRepository) ListByEmployer(employerID uint) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := r.db.Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&withdrawals).Error
	return withdrawals, err
}

func (r *withdrawalRepository) All() ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := r.db.Order("created_at DESC").Find(&withdrawals).Error
	return withdrawals, err
}

func (r *withdrawalRepository) LockUser(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *withdrawalRepository) ExecuteInTransaction(fn func(tx WithdrawalRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&withdrawalRepository{db: tx})
	})
}
