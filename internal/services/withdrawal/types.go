package withdrawal

import (
	"context"
	"time"

	"salarysync/internal/models"
	"salarysync/internal/services/disbursement"
)

// Availability is the employee's current withdrawal headroom, computed
// fresh from salary, attendance and the cycle's prior withdrawals.
type Availability struct {
	MonthlySalary    float64   `json:"monthly_salary"`
	DaysWorked       int       `json:"days_worked"`
	EarnedSalary     float64   `json:"earned_salary"`
	WithdrawnInCycle float64   `json:"withdrawn_in_cycle"`
	AvailableLimit   float64   `json:"available_limit"`
	Fee              float64   `json:"fee"`
	NextRepayment    time.Time `json:"next_repayment"`
}

// Result is the outcome of an approved withdrawal request.
type Result struct {
	Reference      string               `json:"reference"`
	Amount         float64              `json:"amount"`
	Fee            float64              `json:"fee"`
	Total          float64              `json:"total"`
	RemainingLimit float64              `json:"remaining_limit"`
	RepaymentDate  time.Time            `json:"repayment_date"`
	Payout         *disbursement.Payout `json:"payout,omitempty"`
}

// Cache is the invalidation surface the service needs after a write.
type Cache interface {
	InvalidateUser(ctx context.Context, userID uint) error
	InvalidateEmployerStats(ctx context.Context, employerID uint) error
}

// EmployerCounter maintains the employer's running withdrawal total.
type EmployerCounter interface {
	IncrementWithdrawn(id uint, amount float64) error
}

// MetricsCollector defines the interface for collecting withdrawal metrics.
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordError(operation, errType string)
	RecordWithdrawalVolume(amount float64)
}

// Service is the withdrawal engine's transactional surface.
type Service interface {
	// RequestWithdrawal validates and records an advance for the user.
	// The whole check-then-write runs under a row lock, so two
	// concurrent requests can never both pass the limit check.
	RequestWithdrawal(ctx context.Context, userID uint, amount float64) (*Result, error)

	// GetAvailability computes the user's current limit without writing.
	GetAvailability(userID uint) (*Availability, error)

	// GetHistory returns the user's withdrawals, newest first.
	GetHistory(userID uint, limit int) ([]models.Withdrawal, error)
}
