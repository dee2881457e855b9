// Package demorequest handles the public demo request form and the
// admin review flow. Accepting a request provisions the employer: a
// company record with an invite code and an employer login with a
// temporary password.
package demorequest

import (
	"errors"

	"salarysync/internal/models"
	"salarysync/internal/repositories"
	"salarysync/internal/utils"
	"salarysync/internal/validation"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidRequest  = errors.New("company, name and a valid email are required")
	ErrAlreadyReviewed = errors.New("demo request already reviewed")
	ErrNotFound        = errors.New("demo request not found")
)

// SubmitRequest is the public form payload.
type SubmitRequest struct {
	Company string `json:"company"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Size    string `json:"size"`
}

// AcceptResult carries the provisioned employer and the one-time
// credentials the admin hands to the company.
type AcceptResult struct {
	Employer     *models.Employer `json:"employer"`
	LoginEmail   string           `json:"login_email"`
	TempPassword string           `json:"temp_password"`
}

type Service interface {
	Submit(req SubmitRequest) (*models.DemoRequest, error)
	List() ([]models.DemoRequest, error)
	Accept(id uint) (*AcceptResult, error)
	Reject(id uint) (*models.DemoRequest, error)
}

type service struct {
	repo         repositories.DemoRequestRepository
	employerRepo repositories.EmployerRepository
	userRepo     repositories.UserRepository
}

func NewService(
	repo repositories.DemoRequestRepository,
	employerRepo repositories.EmployerRepository,
	userRepo repositories.UserRepository,
) Service {
	if repo == nil {
		panic("demo request repository is required")
	}
	if employerRepo == nil {
		panic("employer repository is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	return &service{
		repo:         repo,
		employerRepo: employerRepo,
		userRepo:     userRepo,
	}
}

func (s *service) Submit(req SubmitRequest) (*models.DemoRequest, error) {
	if req.Company == "" || req.Name == "" || !validation.IsValidEmail(req.Email) {
		return nil, ErrInvalidRequest
	}

	dr := &models.DemoRequest{
		Company: req.Company,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Size:    req.Size,
		Status:  models.DemoRequestPending,
	}
	if err := s.repo.Create(dr); err != nil {
		return nil, err
	}

	log.Info().Str("company", dr.Company).Msg("demo request submitted")
	return dr, nil
}

func (s *service) List() ([]models.DemoRequest, error) {
	return s.repo.List()
}

func (s *service) Accept(id uint) (*AcceptResult, error) {
	dr, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if dr.Status != models.DemoRequestPending {
		return nil, ErrAlreadyReviewed
	}

	tempPassword := utils.GenerateTempPassword()
	hashed, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	login := &models.User{
		Name:     dr.Name,
		Email:    dr.Email,
		Password: hashed,
		Role:     models.RoleEmployer,
		Status:   models.UserActive,
	}
	if err := s.userRepo.Create(login); err != nil {
		return nil, err
	}

	employer := &models.Employer{
		InviteCode:   utils.GenerateInviteCode(),
		UserID:       &login.ID,
		CompanyName:  dr.Company,
		ContactName:  dr.Name,
		ContactEmail: dr.Email,
		ContactPhone: dr.Phone,
		Size:         dr.Size,
		Status:       models.EmployerActive,
	}
	if err := s.employerRepo.Create(employer); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(id, models.DemoRequestAccepted); err != nil {
		return nil, err
	}

	log.Info().Uint("demo_request_id", id).Str("invite_code", employer.InviteCode).
		Msg("demo request accepted, employer provisioned")

	return &AcceptResult{
		Employer:     employer,
		LoginEmail:   login.Email,
		TempPassword: tempPassword,
	}, nil
}

func (s *service) Reject(id uint) (*models.DemoRequest, error) {
	dr, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if dr.Status != models.DemoRequestPending {
		return nil, ErrAlreadyReviewed
	}

	if err := s.repo.UpdateStatus(id, models.DemoRequestRejected); err != nil {
		return nil, err
	}
	dr.Status = models.DemoRequestRejected

	log.Info().Uint("demo_request_id", id).Msg("demo request rejected")
	return dr, nil
}
