// Package employee covers the employee-facing flows: self signup,
// onboarding against an employer invite code, and the dashboard.
package employee

import (
	"errors"

	"salarysync/internal/models"
	"salarysync/internal/payroll"
	"salarysync/internal/repositories"
	"salarysync/internal/utils"
	"salarysync/internal/validation"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrInvalidDocument   = errors.New("document must be a pdf or image up to 5MB")
	ErrAlreadyOnboarded  = errors.New("onboarding already submitted")
	ErrInvalidInput      = errors.New("invalid registration data")
)

// extractedMonthlySalary is what the simulated payslip parser reports.
// Real extraction is out of scope for the demo deployment.
const extractedMonthlySalary = 30000

// RegisterRequest is the public employee signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OnboardingRequest links an employee to an employer and submits the
// verification document's metadata.
type OnboardingRequest struct {
	InviteCode   string `json:"invite_code"`
	DocumentName string `json:"document_name"`
	DocumentType string `json:"document_type"`
	DocumentSize int64  `json:"document_size"`
}

type Service interface {
	Register(req RegisterRequest) (*models.User, error)
	Onboard(userID uint, req OnboardingRequest) (*models.User, error)
	GetDashboard(userID uint) (*Dashboard, error)
}

type service struct {
	userRepo       repositories.UserRepository
	employerRepo   repositories.EmployerRepository
	withdrawalRepo repositories.WithdrawalRepository
}

func NewService(
	userRepo repositories.UserRepository,
	employerRepo repositories.EmployerRepository,
	withdrawalRepo repositories.WithdrawalRepository,
) Service {
	if userRepo == nil {
		panic("user repository is required")
	}
	if employerRepo == nil {
		panic("employer repository is required")
	}
	if withdrawalRepo == nil {
		panic("withdrawal repository is required")
	}
	return &service{
		userRepo:       userRepo,
		employerRepo:   employerRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

func (s *service) Register(req RegisterRequest) (*models.User, error) {
	if req.Name == "" || !validation.IsValidEmail(req.Email) {
		return nil, ErrInvalidInput
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, errors.New("password must be at least 8 characters and contain special characters")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:               req.Name,
		Email:              req.Email,
		Password:           hashed,
		Role:               models.RoleEmployee,
		Status:             models.UserActive,
		VerificationStatus: models.VerificationNotStarted,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Msg("employee registered")
	return user, nil
}

func (s *service) Onboard(userID uint, req OnboardingRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	// A rejected submission may be corrected and resubmitted. Pending
	// and approved states are terminal for this endpoint.
	if user.VerificationStatus == models.VerificationPending ||
		user.VerificationStatus == models.VerificationApproved {
		return nil, ErrAlreadyOnboarded
	}

	if !validation.IsValidDocument(req.DocumentType, req.DocumentSize) {
		return nil, ErrInvalidDocument
	}

	employer, err := s.employerRepo.GetByInviteCode(req.InviteCode)
	if err != nil {
		return nil, ErrInvalidInviteCode
	}

	firstLink := user.EmployerID == nil

	user.EmployerID = &employer.ID
	user.VerificationStatus = models.VerificationPending
	user.DocumentVerified = false
	user.MonthlySalary = extractedMonthlySalary

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if firstLink {
		if err := s.employerRepo.IncrementEmployees(employer.ID); err != nil {
			log.Warn().Err(err).Uint("employer_id", employer.ID).
				Msg("failed to bump employer headcount")
		}
	}

	log.Info().Uint("user_id", user.ID).Uint("employer_id", employer.ID).
		Str("document", req.DocumentName).Msg("onboarding submitted")
	return user, nil
}

func (s *service) GetDashboard(userID uint) (*Dashboard, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Name:               user.Name,
		Email:              user.Email,
		VerificationStatus: user.VerificationStatus,
		Onboarded:          user.EmployerID != nil,
		MonthlySalary:      user.MonthlySalary,
		DaysWorked:         user.DaysWorked,
	}

	// Figures stay zero until verification is approved; the dashboard
	// still renders so the client can show onboarding progress.
	if !user.IsApproved() {
		return d, nil
	}

	earned := payroll.EarnedSalary(user.MonthlySalary, user.DaysWorked, payroll.DaysInCycle)
	prior, err := s.withdrawalRepo.SumByUserSince(userID, payroll.CycleStart(nowFunc()))
	if err != nil {
		return nil, err
	}

	d.EarnedSalary = payroll.DisplayAmount(earned)
	d.WithdrawnInCycle = prior
	d.AvailableLimit = payroll.DisplayAmount(payroll.WithdrawableLimit(earned, prior))
	d.ProgressPercent = progressPercent(earned, user.MonthlySalary)
	d.NextRepayment = payroll.NextRepaymentDate(nowFunc())

	recent, err := s.withdrawalRepo.ListByUser(userID, recentWithdrawalCount)
	if err != nil {
		return nil, err
	}
	d.RecentWithdrawals = recent

	return d, nil
}

func progressPercent(earned, monthly float64) float64 {
	if monthly <= 0 {
		return 0
	}
	p := earned / monthly * 100
	if p > 100 {
		return 100
	}
	return p
}
