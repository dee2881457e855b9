package repositories

import (
	"errors"

	"salarysync/internal/models"

	"gorm.io/gorm"
)

var ErrEmployerNotFound = errors.New("employer not found")

// EmployerRepository manages employer accounts.
type EmployerRepository interface {
	Create(e *models.Employer) error
	GetByID(id uint) (*models.Employer, error)
	GetByInviteCode(code string) (*models.Employer, error)
	GetByUserID(userID uint) (*models.Employer, error)
	List(offset, limit int) ([]models.Employer, int64, error)

	// IncrementEmployees bumps the cached employee count when an
	// employee links during onboarding.
	IncrementEmployees(id uint) error

	// IncrementWithdrawn adds to the cached withdrawn total. The
	// ledger stays the source of truth.
	IncrementWithdrawn(id uint, amount float64) error
}

type employerRepository struct {
	db *gorm.DB
}

// NewEmployerRepository creates a new EmployerRepository
func NewEmployerRepository(db *gorm.DB) EmployerRepository {
	return &employerRepository{db: db}
}

func (r *employerRepository) Create(e *models.Employer) error {
	return r.db.Create(e).Error
}

func (r *employerRepository) GetByID(id uint) (*models.Employer, error) {
	var employer models.Employer
	if err := r.db.First(&employer, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEmployerNotFound
		}
		return nil, err
	}
	return &employer, nil
}

func (r *employerRepository) GetByInviteCode(code string) (*models.Employer, error) {
	var employer models.Employer
	if err := r.db.Where("invite_code = ?", code).First(&employer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEmployerNotFound
		}
		return nil, err
	}
	return &employer, nil
}

func (r *employerRepository) GetByUserID(userID uint) (*models.Employer, error) {
	var employer models.Employer
	if err := r.db.Where("user_id = ?", userID).First(&employer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEmployerNotFound
		}
		return nil, err
	}
	return &employer, nil
}

func (r *employerRepository) List(offset, limit int) ([]models.Employer, int64, error) {
	var employers []models.Employer
	var total int64

	if err := r.db.Model(&models.Employer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = -1
	}
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&employers).Error
	return employers, total, err
}

func (r *employerRepository) IncrementEmployees(id uint) error {
	return r.db.Model(&models.Employer{}).
		Where("id = ?", id).
		UpdateColumn("total_employees", gorm.Expr("total_employees + 1")).Error
}

func (r *employerRepository) IncrementWithdrawn(id uint, amount float64) error {
	return r.db.Model(&models.Employer{}).
		Where("id = ?", id).
		UpdateColumn("total_withdrawn", gorm.Expr("total_withdrawn + ?", amount)).Error
}
