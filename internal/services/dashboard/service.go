// Package dashboard assembles the admin console overview: demo request
// counts, employer totals and platform revenue.
package dashboard

import (
	"salarysync/internal/models"
	"salarysync/internal/payroll"
	"salarysync/internal/repositories"
)

// Overview is the admin KPI response.
type Overview struct {
	PendingDemoRequests  int64   `json:"pending_demo_requests"`
	AcceptedDemoRequests int64   `json:"accepted_demo_requests"`
	TotalDemoRequests    int64   `json:"total_demo_requests"`
	ActiveEmployers      int     `json:"active_employers"`
	TotalEmployees       int     `json:"total_employees"`
	TotalWithdrawn       float64 `json:"total_withdrawn"`
	WithdrawalCount      int     `json:"withdrawal_count"`
	PlatformRevenue      float64 `json:"platform_revenue"`
}

type Service interface {
	GetOverview() (*Overview, error)
	ListEmployers(offset, limit int) ([]models.Employer, int64, error)
}

type service struct {
	demoRepo       repositories.DemoRequestRepository
	employerRepo   repositories.EmployerRepository
	userRepo       repositories.UserRepository
	withdrawalRepo repositories.WithdrawalRepository
}

func NewService(
	demoRepo repositories.DemoRequestRepository,
	employerRepo repositories.EmployerRepository,
	userRepo repositories.UserRepository,
	withdrawalRepo repositories.WithdrawalRepository,
) Service {
	if demoRepo == nil {
		panic("demo request repository is required")
	}
	if employerRepo == nil {
		panic("employer repository is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	if withdrawalRepo == nil {
		panic("withdrawal repository is required")
	}
	return &service{
		demoRepo:       demoRepo,
		employerRepo:   employerRepo,
		userRepo:       userRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

func (s *service) GetOverview() (*Overview, error) {
	pending, err := s.demoRepo.CountByStatus(models.DemoRequestPending)
	if err != nil {
		return nil, err
	}
	accepted, err := s.demoRepo.CountByStatus(models.DemoRequestAccepted)
	if err != nil {
		return nil, err
	}
	total, err := s.demoRepo.Count()
	if err != nil {
		return nil, err
	}

	employers, _, err := s.employerRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	users, _, err := s.userRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawalRepo.All()
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		PendingDemoRequests:  pending,
		AcceptedDemoRequests: accepted,
		TotalDemoRequests:    total,
		WithdrawalCount:      len(withdrawals),
	}

	for _, e := range employers {
		if e.Status == models.EmployerActive {
			overview.ActiveEmployers++
		}
	}

	var records []payroll.EmployeeRecord
	for _, u := range users {
		if u.Role != models.RoleEmployee || u.EmployerID == nil {
			continue
		}
		overview.TotalEmployees++
		records = append(records, payroll.EmployeeRecord{
			MonthlySalary:       u.MonthlySalary,
			DaysWorked:          u.DaysWorked,
			Active:              u.Status == models.UserActive,
			VerificationPending: u.VerificationStatus == models.VerificationPending,
		})
	}

	entries := make([]payroll.WithdrawalEntry, 0, len(withdrawals))
	for _, w := range withdrawals {
		overview.TotalWithdrawn += w.Amount
		entries = append(entries, payroll.WithdrawalEntry{Amount: w.Amount, Fee: w.Fee})
	}

	overview.PlatformRevenue = payroll.AggregatePlatformRevenue(entries, records)

	return overview, nil
}

func (s *service) ListEmployers(offset, limit int) ([]models.Employer, int64, error) {
	return s.employerRepo.List(offset, limit)
}
