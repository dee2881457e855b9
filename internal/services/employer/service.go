// Package employer implements the employer console: attendance
// marking, verification review and the aggregated dashboard.
package employer

import (
	"context"
	"errors"
	"time"

	"salarysync/internal/models"
	"salarysync/internal/payroll"
	"salarysync/internal/repositories"

	"github.com/rs/zerolog/log"
)

var (
	ErrNotAnEmployer    = errors.New("no employer profile for this account")
	ErrEmployeeNotFound = errors.New("employee not found for this employer")
	ErrNotPending       = errors.New("verification is not pending")
	ErrInvalidAction    = errors.New("action must be approve or reject")
	ErrAttendanceCapped = errors.New("attendance already at the cycle maximum")
)

// Verification review actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Dashboard is the employer console's summary response.
type Dashboard struct {
	CompanyName          string                `json:"company_name"`
	InviteCode           string                `json:"invite_code"`
	Stats                payroll.EmployerStats `json:"stats"`
	Employees            []models.User         `json:"employees"`
	PendingVerifications []models.User         `json:"pending_verifications"`
}

// StatsCache keeps the dashboard aggregates between writes. Attendance
// and verification writes invalidate, so a hit is never stale.
type StatsCache interface {
	GetEmployerStats(ctx context.Context, employerID uint) (*payroll.EmployerStats, error)
	CacheEmployerStats(ctx context.Context, employerID uint, stats *payroll.EmployerStats) error
	InvalidateEmployerStats(ctx context.Context, employerID uint) error
}

type Service interface {
	GetDashboard(employerUserID uint) (*Dashboard, error)
	ListEmployees(employerUserID uint) ([]models.User, error)
	ListPendingVerifications(employerUserID uint) ([]models.User, error)

	// MarkAttendance records one day for the employee. Present
	// increments days worked, clamped at the cycle length; absent is
	// acknowledged without changing anything.
	MarkAttendance(employerUserID, employeeID uint, present bool) (*models.User, error)

	// ReviewVerification moves a pending employee to approved or
	// rejected. Rejected employees may resubmit documents.
	ReviewVerification(employerUserID, employeeID uint, action string) (*models.User, error)
}

type service struct {
	employerRepo   repositories.EmployerRepository
	userRepo       repositories.UserRepository
	withdrawalRepo repositories.WithdrawalRepository
	cache          StatsCache
}

func NewService(
	employerRepo repositories.EmployerRepository,
	userRepo repositories.UserRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	cache StatsCache,
) Service {
	if employerRepo == nil {
		panic("employer repository is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	if withdrawalRepo == nil {
		panic("withdrawal repository is required")
	}
	if cache == nil {
		panic("stats cache is required")
	}
	return &service{
		employerRepo:   employerRepo,
		userRepo:       userRepo,
		withdrawalRepo: withdrawalRepo,
		cache:          cache,
	}
}

func (s *service) GetDashboard(employerUserID uint) (*Dashboard, error) {
	employer, err := s.profile(employerUserID)
	if err != nil {
		return nil, err
	}

	employees, err := s.userRepo.ListByEmployer(employer.ID)
	if err != nil {
		return nil, err
	}
	pending, err := s.userRepo.ListPendingByEmployer(employer.ID)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats(employer.ID, employees)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		CompanyName:          employer.CompanyName,
		InviteCode:           employer.InviteCode,
		Stats:                *stats,
		Employees:            employees,
		PendingVerifications: pending,
	}, nil
}

// stats serves the aggregates cache-aside: a hit skips the withdrawal
// scan and the fold entirely.
func (s *service) stats(employerID uint, employees []models.User) (*payroll.EmployerStats, error) {
	if cached, err := s.cache.GetEmployerStats(context.Background(), employerID); err == nil {
		return cached, nil
	}

	withdrawals, err := s.withdrawalRepo.ListByEmployer(employerID)
	if err != nil {
		return nil, err
	}
	stats := payroll.AggregateEmployerStats(toEntries(withdrawals), toRecords(employees))
	if err := s.cache.CacheEmployerStats(context.Background(), employerID, &stats); err != nil {
		log.Warn().Err(err).Uint("employer_id", employerID).Msg("failed to cache employer stats")
	}
	return &stats, nil
}

func (s *service) ListEmployees(employerUserID uint) ([]models.User, error) {
	employer, err := s.profile(employerUserID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.ListByEmployer(employer.ID)
}

func (s *service) ListPendingVerifications(employerUserID uint) ([]models.User, error) {
	employer, err := s.profile(employerUserID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.ListPendingByEmployer(employer.ID)
}

func (s *service) MarkAttendance(employerUserID, employeeID uint, present bool) (*models.User, error) {
	employer, err := s.profile(employerUserID)
	if err != nil {
		return nil, err
	}
	employee, err := s.ownedEmployee(employer.ID, employeeID)
	if err != nil {
		return nil, err
	}

	if !present {
		return employee, nil
	}

	if employee.DaysWorked >= payroll.DaysInCycle {
		return nil, ErrAttendanceCapped
	}

	employee.DaysWorked++
	if err := s.userRepo.Update(employee); err != nil {
		return nil, err
	}
	s.invalidateStats(employer.ID)

	log.Info().Uint("employee_id", employee.ID).Int("days_worked", employee.DaysWorked).
		Msg("attendance marked")
	return employee, nil
}

func (s *service) ReviewVerification(employerUserID, employeeID uint, action string) (*models.User, error) {
	employer, err := s.profile(employerUserID)
	if err != nil {
		return nil, err
	}
	employee, err := s.ownedEmployee(employer.ID, employeeID)
	if err != nil {
		return nil, err
	}

	if employee.VerificationStatus != models.VerificationPending {
		return nil, ErrNotPending
	}

	switch action {
	case ActionApprove:
		now := time.Now()
		employee.VerificationStatus = models.VerificationApproved
		employee.DocumentVerified = true
		employee.VerifiedAt = &now
	case ActionReject:
		employee.VerificationStatus = models.VerificationRejected
		employee.DocumentVerified = false
	default:
		return nil, ErrInvalidAction
	}

	if err := s.userRepo.Update(employee); err != nil {
		return nil, err
	}
	s.invalidateStats(employer.ID)

	log.Info().Uint("employee_id", employee.ID).Str("action", action).
		Msg("verification reviewed")
	return employee, nil
}

func (s *service) invalidateStats(employerID uint) {
	if err := s.cache.InvalidateEmployerStats(context.Background(), employerID); err != nil {
		log.Warn().Err(err).Uint("employer_id", employerID).Msg("failed to invalidate employer stats")
	}
}

func (s *service) profile(employerUserID uint) (*models.Employer, error) {
	employer, err := s.employerRepo.GetByUserID(employerUserID)
	if err != nil {
		return nil, ErrNotAnEmployer
	}
	return employer, nil
}

func (s *service) ownedEmployee(employerID, employeeID uint) (*models.User, error) {
	employee, err := s.userRepo.GetByID(employeeID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	if employee.Role != models.RoleEmployee ||
		employee.EmployerID == nil || *employee.EmployerID != employerID {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

func toRecords(employees []models.User) []payroll.EmployeeRecord {
	records := make([]payroll.EmployeeRecord, 0, len(employees))
	for _, e := range employees {
		records = append(records, payroll.EmployeeRecord{
			MonthlySalary:       e.MonthlySalary,
			DaysWorked:          e.DaysWorked,
			Active:              e.Status == models.UserActive,
			VerificationPending: e.VerificationStatus == models.VerificationPending,
		})
	}
	return records
}

func toEntries(withdrawals []models.Withdrawal) []payroll.WithdrawalEntry {
	entries := make([]payroll.WithdrawalEntry, 0, len(withdrawals))
	for _, w := range withdrawals {
		entries = append(entries, payroll.WithdrawalEntry{Amount: w.Amount, Fee: w.Fee})
	}
	return entries
}
