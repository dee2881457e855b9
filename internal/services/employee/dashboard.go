package employee

import (
	"time"

	"salarysync/internal/models"
)

const recentWithdrawalCount = 5

// nowFunc is swapped in tests to pin the cycle window.
var nowFunc = time.Now

// Dashboard is everything the employee home screen renders in one
// response.
type Dashboard struct {
	Name               string              `json:"name"`
	Email              string              `json:"email"`
	VerificationStatus string              `json:"verification_status"`
	Onboarded          bool                `json:"onboarded"`
	MonthlySalary      float64             `json:"monthly_salary"`
	DaysWorked         int                 `json:"days_worked"`
	EarnedSalary       float64             `json:"earned_salary"`
	WithdrawnInCycle   float64             `json:"withdrawn_in_cycle"`
	AvailableLimit     float64             `json:"available_limit"`
	ProgressPercent    float64             `json:"progress_percent"`
	NextRepayment      time.Time           `json:"next_repayment"`
	RecentWithdrawals  []models.Withdrawal `json:"recent_withdrawals"`
}
