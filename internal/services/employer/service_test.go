package employer

import (
	"context"
	"errors"
	"testing"
	"time"

	"salarysync/internal/models"
	"salarysync/internal/payroll"
	"salarysync/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEmployerRepo struct {
	mock.Mock
}

func (m *MockEmployerRepo) Create(e *models.Employer) error { return m.Called(e).Error(0) }

func (m *MockEmployerRepo) GetByID(id uint) (*models.Employer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employer), args.Error(1)
}

func (m *MockEmployerRepo) GetByInviteCode(code string) (*models.Employer, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employer), args.Error(1)
}

func (m *MockEmployerRepo) GetByUserID(userID uint) (*models.Employer, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employer), args.Error(1)
}

func (m *MockEmployerRepo) List(offset, limit int) ([]models.Employer, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]models.Employer), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmployerRepo) IncrementEmployees(id uint) error { return m.Called(id).Error(0) }

func (m *MockEmployerRepo) IncrementWithdrawn(id uint, amount float64) error {
	return m.Called(id, amount).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error { return m.Called(user).Error(0) }

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error { return m.Called(user).Error(0) }

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *MockUserRepo) List(offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepo) UpdatePassword(userID uint, hashedPassword string) error {
	return m.Called(userID, hashedPassword).Error(0)
}

func (m *MockUserRepo) ListByEmployer(employerID uint) ([]models.User, error) {
	args := m.Called(employerID)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepo) ListPendingByEmployer(employerID uint) ([]models.User, error) {
	args := m.Called(employerID)
	return args.Get(0).([]models.User), args.Error(1)
}

type MockWithdrawalRepo struct {
	mock.Mock
}

func (m *MockWithdrawalRepo) Create(w *models.Withdrawal) error { return m.Called(w).Error(0) }

func (m *MockWithdrawalRepo) SumByUserSince(userID uint, since time.Time) (float64, error) {
	args := m.Called(userID, since)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWithdrawalRepo) ListByUser(userID uint, limit int) ([]models.Withdrawal, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]models.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepo) ListByEmployer(employerID uint) ([]models.Withdrawal, error) {
	args := m.Called(employerID)
	return args.Get(0).([]models.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepo) All() ([]models.Withdrawal, error) {
	args := m.Called()
	return args.Get(0).([]models.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepo) LockUser(userID uint) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockWithdrawalRepo) ExecuteInTransaction(fn func(tx repositories.WithdrawalRepository) error) error {
	return fn(m)
}

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) GetEmployerStats(ctx context.Context, employerID uint) (*payroll.EmployerStats, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.EmployerStats), args.Error(1)
}

func (m *MockStatsCache) CacheEmployerStats(ctx context.Context, employerID uint, stats *payroll.EmployerStats) error {
	return m.Called(ctx, employerID, stats).Error(0)
}

func (m *MockStatsCache) InvalidateEmployerStats(ctx context.Context, employerID uint) error {
	return m.Called(ctx, employerID).Error(0)
}

func linkedEmployee(id, employerID uint, status string, days int) models.User {
	u := models.User{
		Role:               models.RoleEmployee,
		Status:             models.UserActive,
		EmployerID:         &employerID,
		MonthlySalary:      30000,
		DaysWorked:         days,
		VerificationStatus: status,
	}
	u.ID = id
	return u
}

func TestMarkAttendance(t *testing.T) {
	employerRepo := new(MockEmployerRepo)
	userRepo := new(MockUserRepo)
	withdrawalRepo := new(MockWithdrawalRepo)
	statsCache := new(MockStatsCache)
	s := NewService(employerRepo, userRepo, withdrawalRepo, statsCache)

	org := &models.Employer{CompanyName: "Kanper Startup"}
	org.ID = 7

	t.Run("present increments days worked", func(t *testing.T) {
		emp := linkedEmployee(3, 7, models.VerificationApproved, 17)
		employerRepo.On("GetByUserID", uint(2)).Return(org, nil)
		userRepo.On("GetByID", uint(3)).Return(&emp, nil).Once()
		userRepo.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.DaysWorked == 18
		})).Return(nil).Once()
		statsCache.On("InvalidateEmployerStats", mock.Anything, uint(7)).Return(nil).Once()

		updated, err := s.MarkAttendance(2, 3, true)
		assert.NoError(t, err)
		assert.Equal(t, 18, updated.DaysWorked)
		statsCache.AssertExpectations(t)
	})

	t.Run("absent records nothing", func(t *testing.T) {
		emp := linkedEmployee(3, 7, models.VerificationApproved, 17)
		employerRepo.On("GetByUserID", uint(2)).Return(org, nil)
		userRepo.On("GetByID", uint(3)).Return(&emp, nil).Once()

		updated, err := s.MarkAttendance(2, 3, false)
		assert.NoError(t, err)
		assert.Equal(t, 17, updated.DaysWorked)
		userRepo.AssertNotCalled(t, "Update", mock.Anything)
		statsCache.AssertNotCalled(t, "InvalidateEmployerStats", mock.Anything, mock.Anything)
	})

	t.Run("clamps at the cycle length", func(t *testing.T) {
		emp := linkedEmployee(3, 7, models.VerificationApproved, payroll.DaysInCycle)
		userRepo.On("GetByID", uint(3)).Return(&emp, nil).Once()

		_, err := s.MarkAttendance(2, 3, true)
		assert.ErrorIs(t, err, ErrAttendanceCapped)
	})

	t.Run("rejects employee of another employer", func(t *testing.T) {
		emp := linkedEmployee(4, 99, models.VerificationApproved, 5)
		userRepo.On("GetByID", uint(4)).Return(&emp, nil).Once()

		_, err := s.MarkAttendance(2, 4, true)
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})
}

func TestReviewVerification(t *testing.T) {
	org := &models.Employer{CompanyName: "Kanper Startup"}
	org.ID = 7

	tests := []struct {
		name       string
		status     string
		action     string
		wantErr    error
		wantStatus string
		wantDoc    bool
	}{
		{"approve pending", models.VerificationPending, ActionApprove, nil, models.VerificationApproved, true},
		{"reject pending", models.VerificationPending, ActionReject, nil, models.VerificationRejected, false},
		{"approve non-pending", models.VerificationApproved, ActionApprove, ErrNotPending, "", false},
		{"unknown action", models.VerificationPending, "escalate", ErrInvalidAction, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			employerRepo := new(MockEmployerRepo)
			userRepo := new(MockUserRepo)
			withdrawalRepo := new(MockWithdrawalRepo)
			statsCache := new(MockStatsCache)
			s := NewService(employerRepo, userRepo, withdrawalRepo, statsCache)

			emp := linkedEmployee(3, 7, tt.status, 10)
			employerRepo.On("GetByUserID", uint(2)).Return(org, nil)
			userRepo.On("GetByID", uint(3)).Return(&emp, nil)
			userRepo.On("Update", mock.Anything).Return(nil)
			statsCache.On("InvalidateEmployerStats", mock.Anything, uint(7)).Return(nil)

			updated, err := s.ReviewVerification(2, 3, tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, updated.VerificationStatus)
			assert.Equal(t, tt.wantDoc, updated.DocumentVerified)
			if tt.action == ActionApprove {
				assert.NotNil(t, updated.VerifiedAt)
			}
		})
	}
}

func TestGetDashboard(t *testing.T) {
	org := &models.Employer{CompanyName: "Kanper Startup", InviteCode: "EMP-12345678"}
	org.ID = 7

	employees := []models.User{
		linkedEmployee(3, 7, models.VerificationApproved, 18),
		linkedEmployee(4, 7, models.VerificationPending, 9),
	}
	withdrawals := []models.Withdrawal{
		{UserID: 3, EmployerID: 7, Amount: 3000, Fee: 20},
		{UserID: 3, EmployerID: 7, Amount: 2000, Fee: 20},
	}

	t.Run("computes and caches stats on a miss", func(t *testing.T) {
		employerRepo := new(MockEmployerRepo)
		userRepo := new(MockUserRepo)
		withdrawalRepo := new(MockWithdrawalRepo)
		statsCache := new(MockStatsCache)
		s := NewService(employerRepo, userRepo, withdrawalRepo, statsCache)

		employerRepo.On("GetByUserID", uint(2)).Return(org, nil)
		userRepo.On("ListByEmployer", uint(7)).Return(employees, nil)
		userRepo.On("ListPendingByEmployer", uint(7)).Return(employees[1:], nil)
		withdrawalRepo.On("ListByEmployer", uint(7)).Return(withdrawals, nil)
		statsCache.On("GetEmployerStats", mock.Anything, uint(7)).Return(nil, errors.New("miss"))
		statsCache.On("CacheEmployerStats", mock.Anything, uint(7), mock.MatchedBy(func(st *payroll.EmployerStats) bool {
			return st.TotalWithdrawn == 5000
		})).Return(nil).Once()

		d, err := s.GetDashboard(2)
		assert.NoError(t, err)
		assert.Equal(t, "Kanper Startup", d.CompanyName)
		assert.Equal(t, float64(5000), d.Stats.TotalWithdrawn)
		assert.Equal(t, 2, d.Stats.ActiveEmployeeCount)
		assert.Equal(t, 1, d.Stats.PendingVerificationCount)
		assert.Len(t, d.PendingVerifications, 1)
		statsCache.AssertExpectations(t)
	})

	t.Run("serves cached stats without scanning withdrawals", func(t *testing.T) {
		employerRepo := new(MockEmployerRepo)
		userRepo := new(MockUserRepo)
		withdrawalRepo := new(MockWithdrawalRepo)
		statsCache := new(MockStatsCache)
		s := NewService(employerRepo, userRepo, withdrawalRepo, statsCache)

		cached := &payroll.EmployerStats{TotalWithdrawn: 5000, ActiveEmployeeCount: 2, PendingVerificationCount: 1}
		employerRepo.On("GetByUserID", uint(2)).Return(org, nil)
		userRepo.On("ListByEmployer", uint(7)).Return(employees, nil)
		userRepo.On("ListPendingByEmployer", uint(7)).Return(employees[1:], nil)
		statsCache.On("GetEmployerStats", mock.Anything, uint(7)).Return(cached, nil)

		d, err := s.GetDashboard(2)
		assert.NoError(t, err)
		assert.Equal(t, *cached, d.Stats)
		withdrawalRepo.AssertNotCalled(t, "ListByEmployer", mock.Anything)
		statsCache.AssertNotCalled(t, "CacheEmployerStats", mock.Anything, mock.Anything, mock.Anything)
	})
}
