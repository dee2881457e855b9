package repositories

import (
	"errors"

	"salarysync/internal/models"

	"gorm.io/gorm"
)

var ErrDemoRequestNotFound = errors.New("demo request not found")

// DemoRequestRepository manages public demo-request submissions.
type DemoRequestRepository interface {
	Create(r *models.DemoRequest) error
	GetByID(id uint) (*models.DemoRequest, error)
	List() ([]models.DemoRequest, error)
	UpdateStatus(id uint, status string) error
	CountByStatus(status string) (int64, error)
	Count() (int64, error)
}

type demoRequestRepository struct {
	db *gorm.DB
}

// NewDemoRequestRepository creates a new DemoRequestRepository
func NewDemoRequestRepository(db *gorm.DB) DemoRequestRepository {
	return &demoRequestRepository{db: db}
}

func (r *demoRequestRepository) Create(req *models.DemoRequest) error {
	return r.db.Create(req).Error
}

func (r *demoRequestRepository) GetByID(id uint) (*models.DemoRequest, error) {
	var req models.DemoRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDemoRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *demoRequestRepository) List() ([]models.DemoRequest, error) {
	var requests []models.DemoRequest
	err := r.db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *demoRequestRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.DemoRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *demoRequestRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.DemoRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *demoRequestRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.DemoRequest{}).Count(&count).Error
	return count, err
}
