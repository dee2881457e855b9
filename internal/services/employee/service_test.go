package employee

import (
	"testing"
	"time"

	"salarysync/internal/models"
	"salarysync/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

func newTestService() (Service, *MockUserRepo, *MockEmployerRepo, *MockWithdrawalRepo) {
	users := new(MockUserRepo)
	employers := new(MockEmployerRepo)
	withdrawals := new(MockWithdrawalRepo)
	return NewService(users, employers, withdrawals), users, employers, withdrawals
}

func TestRegister(t *testing.T) {
	t.Run("creates an employee account", func(t *testing.T) {
		s, users, _, _ := newTestService()
		users.On("Create", mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleEmployee &&
				u.VerificationStatus == models.VerificationNotStarted &&
				u.Password != "pass@word1"
		})).Return(nil)

		user, err := s.Register(RegisterRequest{
			Name:     "Asha",
			Email:    "asha@example.com",
			Password: "pass@word1",
		})
		assert.NoError(t, err)
		assert.Equal(t, models.RoleEmployee, user.Role)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		s, _, _, _ := newTestService()
		_, err := s.Register(RegisterRequest{Name: "A", Email: "a@b.co", Password: "short"})
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		s, _, _, _ := newTestService()
		_, err := s.Register(RegisterRequest{Name: "A", Email: "nope", Password: "pass@word1"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func validDoc() OnboardingRequest {
	return OnboardingRequest{
		InviteCode:   "EMP-12345678",
		DocumentName: "payslip.pdf",
		DocumentType: "application/pdf",
		DocumentSize: 120 * 1024,
	}
}

func TestOnboard(t *testing.T) {
	org := &models.Employer{CompanyName: "Kanper Startup", InviteCode: "EMP-12345678"}
	org.ID = 7

	t.Run("links employer and extracts salary", func(t *testing.T) {
		s, users, employers, _ := newTestService()

		user := &models.User{Role: models.RoleEmployee, VerificationStatus: models.VerificationNotStarted}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)
		employers.On("GetByInviteCode", "EMP-12345678").Return(org, nil)
		users.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.EmployerID != nil && *u.EmployerID == 7 &&
				u.VerificationStatus == models.VerificationPending &&
				u.MonthlySalary == 30000
		})).Return(nil)
		employers.On("IncrementEmployees", uint(7)).Return(nil)

		updated, err := s.Onboard(1, validDoc())
		assert.NoError(t, err)
		assert.Equal(t, models.VerificationPending, updated.VerificationStatus)
		employers.AssertCalled(t, "IncrementEmployees", uint(7))
	})

	t.Run("rejected employee may resubmit", func(t *testing.T) {
		s, users, employers, _ := newTestService()

		employerID := uint(7)
		user := &models.User{
			Role:               models.RoleEmployee,
			EmployerID:         &employerID,
			VerificationStatus: models.VerificationRejected,
		}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)
		employers.On("GetByInviteCode", "EMP-12345678").Return(org, nil)
		users.On("Update", mock.Anything).Return(nil)

		updated, err := s.Onboard(1, validDoc())
		assert.NoError(t, err)
		assert.Equal(t, models.VerificationPending, updated.VerificationStatus)
		// Headcount was already bumped on the first submission.
		employers.AssertNotCalled(t, "IncrementEmployees", mock.Anything)
	})

	t.Run("refuses a pending submission", func(t *testing.T) {
		s, users, _, _ := newTestService()
		user := &models.User{VerificationStatus: models.VerificationPending}
		users.On("GetByID", uint(1)).Return(user, nil)

		_, err := s.Onboard(1, validDoc())
		assert.ErrorIs(t, err, ErrAlreadyOnboarded)
	})

	t.Run("rejects oversized document", func(t *testing.T) {
		s, users, _, _ := newTestService()
		user := &models.User{VerificationStatus: models.VerificationNotStarted}
		users.On("GetByID", uint(1)).Return(user, nil)

		doc := validDoc()
		doc.DocumentSize = 6 * 1024 * 1024
		_, err := s.Onboard(1, doc)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("rejects unknown invite code", func(t *testing.T) {
		s, users, employers, _ := newTestService()
		user := &models.User{VerificationStatus: models.VerificationNotStarted}
		users.On("GetByID", uint(1)).Return(user, nil)
		employers.On("GetByInviteCode", "EMP-12345678").Return(nil, repositories.ErrEmployerNotFound)

		_, err := s.Onboard(1, validDoc())
		assert.ErrorIs(t, err, ErrInvalidInviteCode)
	})
}

func TestGetDashboard(t *testing.T) {
	t.Run("approved employee gets live figures", func(t *testing.T) {
		s, users, _, withdrawals := newTestService()

		employerID := uint(7)
		user := &models.User{
			Name:               "Asha",
			Role:               models.RoleEmployee,
			EmployerID:         &employerID,
			MonthlySalary:      30000,
			DaysWorked:         18,
			VerificationStatus: models.VerificationApproved,
			DocumentVerified:   true,
		}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)
		withdrawals.On("SumByUserSince", uint(1), mock.Anything).Return(float64(3000), nil)
		withdrawals.On("ListByUser", uint(1), recentWithdrawalCount).
			Return([]models.Withdrawal{{UserID: 1, Amount: 3000, Fee: 20}}, nil)

		d, err := s.GetDashboard(1)
		assert.NoError(t, err)
		assert.Equal(t, float64(18000), d.EarnedSalary)
		assert.Equal(t, float64(6000), d.AvailableLimit)
		assert.Equal(t, float64(60), d.ProgressPercent)
		assert.Len(t, d.RecentWithdrawals, 1)
	})

	t.Run("fractional figures are floored for display", func(t *testing.T) {
		s, users, _, withdrawals := newTestService()

		employerID := uint(7)
		user := &models.User{
			Name:               "Asha",
			Role:               models.RoleEmployee,
			EmployerID:         &employerID,
			MonthlySalary:      10000,
			DaysWorked:         7,
			VerificationStatus: models.VerificationApproved,
			DocumentVerified:   true,
		}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)
		withdrawals.On("SumByUserSince", uint(1), mock.Anything).Return(float64(0), nil)
		withdrawals.On("ListByUser", uint(1), recentWithdrawalCount).Return([]models.Withdrawal{}, nil)

		d, err := s.GetDashboard(1)
		assert.NoError(t, err)
		// 10000/30*7 = 2333.33..., half of that is 1166.66...
		assert.Equal(t, float64(2333), d.EarnedSalary)
		assert.Equal(t, float64(1166), d.AvailableLimit)
	})

	t.Run("unverified employee gets zeroed figures", func(t *testing.T) {
		s, users, _, _ := newTestService()

		user := &models.User{
			Name:               "Asha",
			Role:               models.RoleEmployee,
			MonthlySalary:      30000,
			DaysWorked:         5,
			VerificationStatus: models.VerificationNotStarted,
		}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)

		d, err := s.GetDashboard(1)
		assert.NoError(t, err)
		assert.False(t, d.Onboarded)
		assert.Zero(t, d.AvailableLimit)
		assert.Zero(t, d.EarnedSalary)
	})
}
