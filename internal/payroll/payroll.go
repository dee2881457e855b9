package payroll

import (
	"math"
	"time"
)

const (
	// DaysInCycle is the fixed length of one earning cycle.
	DaysInCycle = 30

	// WithdrawalFraction caps withdrawals at this share of earned salary.
	WithdrawalFraction = 0.5

	// FlatFee is the flat convenience fee charged per withdrawal,
	// on top of the withdrawn amount.
	FlatFee = 20.0

	// PerEmployeeFee is the monthly platform charge per active employee.
	PerEmployeeFee = 10.0
)

// RejectReason identifies why a withdrawal request was refused.
type RejectReason string

const (
	ReasonInvalidAmount RejectReason = "invalid_amount"
	ReasonExceedsLimit  RejectReason = "exceeds_limit"
)

// Decision is the outcome of validating a withdrawal request.
// When Approved is false, Reason says why.
type Decision struct {
	Approved bool
	Reason   RejectReason
}

// EarnedSalary returns the portion of the monthly salary attributable to
// days worked so far in the current cycle, at a flat daily rate.
// Negative inputs are treated as zero and daysWorked is clamped to
// daysInCycle, so the result never exceeds the monthly salary.
func EarnedSalary(monthlySalary float64, daysWorked, daysInCycle int) float64 {
	if daysInCycle <= 0 {
		daysInCycle = DaysInCycle
	}
	if monthlySalary < 0 || math.IsNaN(monthlySalary) {
		monthlySalary = 0
	}
	if daysWorked < 0 {
		daysWorked = 0
	}
	if daysWorked > daysInCycle {
		daysWorked = daysInCycle
	}
	return monthlySalary / float64(daysInCycle) * float64(daysWorked)
}

// WithdrawableLimit returns how much the employee may still withdraw this
// cycle: half the earned salary minus what was already withdrawn.
// The result is never negative.
func WithdrawableLimit(earnedSalary, priorWithdrawals float64) float64 {
	if earnedSalary < 0 || math.IsNaN(earnedSalary) {
		earnedSalary = 0
	}
	if priorWithdrawals < 0 || math.IsNaN(priorWithdrawals) {
		priorWithdrawals = 0
	}
	limit := earnedSalary*WithdrawalFraction - priorWithdrawals
	if limit < 0 {
		return 0
	}
	return limit
}

// ValidateWithdrawal decides whether a requested amount is admissible
// against the current limit. An amount exactly equal to the limit is
// approved. The caller persists the record; this function only encodes
// the business rule.
func ValidateWithdrawal(amount, limit float64) Decision {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Decision{Reason: ReasonInvalidAmount}
	}
	if amount > limit {
		return Decision{Reason: ReasonExceedsLimit}
	}
	return Decision{Approved: true}
}

// NextRepaymentDate returns the first day of the calendar month following
// t, which is when the withdrawn amount is recovered from payroll.
func NextRepaymentDate(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
}

// CycleStart returns the beginning of the earning cycle containing t.
// Cycles are aligned to calendar months so the limit resets together
// with the payroll run.
func CycleStart(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

// DisplayAmount truncates a currency amount for display. Intermediate
// math always uses the untruncated value.
func DisplayAmount(v float64) float64 {
	return math.Floor(v)
}
