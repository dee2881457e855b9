package payroll

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleEmployees() []EmployeeRecord {
	return []EmployeeRecord{
		{MonthlySalary: 30000, DaysWorked: 18, Active: true},
		{MonthlySalary: 45000, DaysWorked: 10, Active: true, VerificationPending: true},
		{MonthlySalary: 24000, DaysWorked: 30, Active: false},
	}
}

func sampleWithdrawals() []WithdrawalEntry {
	return []WithdrawalEntry{
		{Amount: 3000, Fee: FlatFee},
		{Amount: 1500, Fee: FlatFee},
		{Amount: 500, Fee: FlatFee},
	}
}

func TestAggregateEmployerStats(t *testing.T) {
	stats := AggregateEmployerStats(sampleWithdrawals(), sampleEmployees())

	assert.InDelta(t, 5000.0, stats.TotalWithdrawn, 1e-9)
	assert.Equal(t, 2, stats.ActiveEmployeeCount)
	assert.Equal(t, 1, stats.PendingVerificationCount)
	// 18000 + 15000 + 24000
	assert.InDelta(t, 57000.0, stats.TotalEarnedAcrossEmployees, 1e-9)
}

func TestAggregateEmployerStats_Empty(t *testing.T) {
	stats := AggregateEmployerStats(nil, nil)
	assert.Zero(t, stats.TotalWithdrawn)
	assert.Zero(t, stats.ActiveEmployeeCount)
	assert.Zero(t, stats.PendingVerificationCount)
	assert.Zero(t, stats.TotalEarnedAcrossEmployees)
}

func TestAggregateEmployerStats_PermutationInvariant(t *testing.T) {
	withdrawals := sampleWithdrawals()
	employees := sampleEmployees()
	want := AggregateEmployerStats(withdrawals, employees)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(withdrawals), func(a, b int) {
			withdrawals[a], withdrawals[b] = withdrawals[b], withdrawals[a]
		})
		rng.Shuffle(len(employees), func(a, b int) {
			employees[a], employees[b] = employees[b], employees[a]
		})
		assert.Equal(t, want, AggregateEmployerStats(withdrawals, employees))
	}
}

func TestAggregatePlatformRevenue(t *testing.T) {
	// 3 withdrawals at the flat fee plus 2 active employees at the
	// per-employee charge.
	got := AggregatePlatformRevenue(sampleWithdrawals(), sampleEmployees())
	assert.InDelta(t, 3*FlatFee+2*PerEmployeeFee, got, 1e-9)

	assert.Zero(t, AggregatePlatformRevenue(nil, nil))
}
