// Package withdrawal implements the salary advance flow: eligibility
// checks, limit validation under a row lock, ledger append, payout and
// counter updates.
package withdrawal

import (
	"context"
	"time"

	"salarysync/internal/models"
	"salarysync/internal/payroll"
	"salarysync/internal/repositories"
	"salarysync/internal/services/disbursement"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type service struct {
	repo      repositories.WithdrawalRepository
	userRepo  repositories.UserRepository
	employers EmployerCounter
	disburser disbursement.Service
	cache     Cache
	metrics   MetricsCollector
	now       func() time.Time
}

// NewService creates a new withdrawal service.
func NewService(
	repo repositories.WithdrawalRepository,
	userRepo repositories.UserRepository,
	employers EmployerCounter,
	disburser disbursement.Service,
	cache Cache,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("withdrawal repository is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	if employers == nil {
		panic("employer counter is required")
	}
	if disburser == nil {
		panic("disbursement service is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:      repo,
		userRepo:  userRepo,
		employers: employers,
		disburser: disburser,
		cache:     cache,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *service) RequestWithdrawal(ctx context.Context, userID uint, amount float64) (*Result, error) {
	start := s.now()
	defer func() {
		s.metrics.RecordOperationDuration("request_withdrawal", time.Since(start))
	}()

	var (
		created *models.Withdrawal
		user    *models.User
		limit   float64
	)

	err := s.repo.ExecuteInTransaction(func(tx repositories.WithdrawalRepository) error {
		var err error
		user, err = tx.LockUser(userID)
		if err != nil {
			return err
		}

		if err := checkEligibility(user); err != nil {
			return err
		}

		now := s.now()
		earned := payroll.EarnedSalary(user.MonthlySalary, user.DaysWorked, payroll.DaysInCycle)
		prior, err := tx.SumByUserSince(userID, payroll.CycleStart(now))
		if err != nil {
			return err
		}
		limit = payroll.WithdrawableLimit(earned, prior)

		decision := payroll.ValidateWithdrawal(amount, limit)
		if !decision.Approved {
			switch decision.Reason {
			case payroll.ReasonInvalidAmount:
				return ErrInvalidAmount
			default:
				return ErrExceedsLimit
			}
		}

		created = &models.Withdrawal{
			Reference:     uuid.NewString(),
			UserID:        user.ID,
			EmployerID:    *user.EmployerID,
			Amount:        amount,
			Fee:           payroll.FlatFee,
			RepaymentDate: payroll.NextRepaymentDate(now),
		}
		return tx.Create(created)
	})
	if err != nil {
		s.metrics.RecordError("request_withdrawal", classify(err))
		return nil, err
	}

	s.metrics.RecordOperationResult("request_withdrawal", "approved")
	s.metrics.RecordWithdrawalVolume(amount)

	if err := s.employers.IncrementWithdrawn(created.EmployerID, amount); err != nil {
		log.Warn().Err(err).Uint("employer_id", created.EmployerID).
			Msg("failed to update employer withdrawal counter")
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, userID); err != nil {
			log.Warn().Err(err).Uint("user_id", userID).Msg("cache invalidation failed")
		}
		if err := s.cache.InvalidateEmployerStats(ctx, created.EmployerID); err != nil {
			log.Warn().Err(err).Uint("employer_id", created.EmployerID).
				Msg("employer stats invalidation failed")
		}
	}

	result := &Result{
		Reference:      created.Reference,
		Amount:         created.Amount,
		Fee:            created.Fee,
		Total:          created.Amount + created.Fee,
		RemainingLimit: limit - created.Amount,
		RepaymentDate:  created.RepaymentDate,
	}

	// The ledger entry is the source of truth. A failed payout is
	// retried out of band against the recorded reference.
	po, err := s.disburser.Disburse(user, amount)
	if err != nil {
		log.Error().Err(err).Str("reference", created.Reference).Msg("disbursement failed")
	} else {
		result.Payout = po
	}

	log.Info().
		Uint("user_id", userID).
		Str("reference", created.Reference).
		Float64("amount", amount).
		Float64("remaining_limit", result.RemainingLimit).
		Msg("withdrawal approved")

	return result, nil
}

func (s *service) GetAvailability(userID uint) (*Availability, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if err := checkEligibility(user); err != nil {
		return nil, err
	}

	now := s.now()
	earned := payroll.EarnedSalary(user.MonthlySalary, user.DaysWorked, payroll.DaysInCycle)
	prior, err := s.repo.SumByUserSince(userID, payroll.CycleStart(now))
	if err != nil {
		return nil, err
	}

	return &Availability{
		MonthlySalary:    user.MonthlySalary,
		DaysWorked:       user.DaysWorked,
		EarnedSalary:     payroll.DisplayAmount(earned),
		WithdrawnInCycle: prior,
		AvailableLimit:   payroll.DisplayAmount(payroll.WithdrawableLimit(earned, prior)),
		Fee:              payroll.FlatFee,
		NextRepayment:    payroll.NextRepaymentDate(now),
	}, nil
}

func (s *service) GetHistory(userID uint, limit int) ([]models.Withdrawal, error) {
	return s.repo.ListByUser(userID, limit)
}

func checkEligibility(user *models.User) error {
	if user.Role != models.RoleEmployee {
		return ErrNotAnEmployee
	}
	if user.EmployerID == nil {
		return ErrEmployerLinkMissing
	}
	if !user.IsApproved() {
		return ErrVerificationNotApproved
	}
	return nil
}

func classify(err error) string {
	switch err {
	case ErrInvalidAmount:
		return "invalid_amount"
	case ErrExceedsLimit:
		return "exceeds_limit"
	case ErrEmployerLinkMissing:
		return "employer_link_missing"
	case ErrVerificationNotApproved:
		return "verification_not_approved"
	case ErrNotAnEmployee:
		return "not_an_employee"
	default:
		return "internal"
	}
}
