package payroll

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEarnedSalary(t *testing.T) {
	tests := []struct {
		name          string
		monthlySalary float64
		daysWorked    int
		want          float64
	}{
		{"zero days", 30000, 0, 0},
		{"mid cycle", 30000, 18, 18000},
		{"full cycle equals monthly salary", 30000, 30, 30000},
		{"days beyond cycle are clamped", 30000, 45, 30000},
		{"negative days treated as zero", 30000, -3, 0},
		{"zero salary", 0, 18, 0},
		{"negative salary treated as zero", -5000, 18, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EarnedSalary(tt.monthlySalary, tt.daysWorked, DaysInCycle)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEarnedSalary_MonotonicInDaysWorked(t *testing.T) {
	prev := 0.0
	for days := 0; days <= DaysInCycle; days++ {
		got := EarnedSalary(30000, days, DaysInCycle)
		assert.GreaterOrEqual(t, got, prev, "earned salary must not decrease at day %d", days)
		prev = got
	}
	assert.InDelta(t, 30000.0, prev, 1e-9)
}

func TestEarnedSalary_Idempotent(t *testing.T) {
	first := EarnedSalary(30000, 18, DaysInCycle)
	second := EarnedSalary(30000, 18, DaysInCycle)
	assert.Equal(t, first, second)
}

func TestWithdrawableLimit(t *testing.T) {
	tests := []struct {
		name   string
		earned float64
		prior  float64
		want   float64
	}{
		{"no prior withdrawals", 18000, 0, 9000},
		{"limit fully consumed", 18000, 9000, 0},
		{"over-withdrawn clamps to zero", 18000, 12000, 0},
		{"partial prior", 18000, 3000, 6000},
		{"zero earned", 0, 0, 0},
		{"negative prior treated as zero", 18000, -100, 9000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithdrawableLimit(tt.earned, tt.prior)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestValidateWithdrawal(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		limit    float64
		approved bool
		reason   RejectReason
	}{
		{"zero amount", 0, 9000, false, ReasonInvalidAmount},
		{"negative amount", -50, 9000, false, ReasonInvalidAmount},
		{"NaN amount", math.NaN(), 9000, false, ReasonInvalidAmount},
		{"infinite amount", math.Inf(1), 9000, false, ReasonInvalidAmount},
		{"above limit", 9500, 9000, false, ReasonExceedsLimit},
		{"exactly at limit", 9000, 9000, true, ""},
		{"below limit", 3000, 9000, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ValidateWithdrawal(tt.amount, tt.limit)
			assert.Equal(t, tt.approved, d.Approved)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestWithdrawalScenario(t *testing.T) {
	// Salary 30000, 18 days worked: earned 18000, limit 9000.
	earned := EarnedSalary(30000, 18, DaysInCycle)
	assert.InDelta(t, 18000.0, earned, 1e-9)

	limit := WithdrawableLimit(earned, 0)
	assert.InDelta(t, 9000.0, limit, 1e-9)

	d := ValidateWithdrawal(3000, limit)
	assert.True(t, d.Approved)

	// After recording the 3000 withdrawal the limit shrinks to 6000.
	limit = WithdrawableLimit(earned, 3000)
	assert.InDelta(t, 6000.0, limit, 1e-9)
}

func TestNextRepaymentDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"mid month",
			time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC),
			time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"first of month still rolls forward",
			time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"december rolls into next year",
			time.Date(2026, time.December, 20, 0, 0, 0, 0, time.UTC),
			time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextRepaymentDate(tt.in))
		})
	}
}

func TestCycleStart(t *testing.T) {
	in := time.Date(2026, time.March, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), CycleStart(in))
}

func TestDisplayAmount(t *testing.T) {
	assert.Equal(t, 999.0, DisplayAmount(999.99))
	assert.Equal(t, 0.0, DisplayAmount(0.4))
}
