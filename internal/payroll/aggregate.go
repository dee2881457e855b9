package payroll

// EmployeeRecord is the slice of an employee profile the aggregations
// need. Services map their storage models into this shape.
type EmployeeRecord struct {
	MonthlySalary       float64
	DaysWorked          int
	Active              bool
	VerificationPending bool
}

// WithdrawalEntry is one recorded withdrawal.
type WithdrawalEntry struct {
	Amount float64
	Fee    float64
}

// EmployerStats is the aggregate view an employer dashboard shows.
type EmployerStats struct {
	TotalWithdrawn             float64
	ActiveEmployeeCount        int
	PendingVerificationCount   int
	TotalEarnedAcrossEmployees float64
}

// AggregateEmployerStats folds withdrawal records and employee profiles
// into employer-level totals. Sums and counts are commutative, so the
// result does not depend on input ordering.
func AggregateEmployerStats(withdrawals []WithdrawalEntry, employees []EmployeeRecord) EmployerStats {
	var stats EmployerStats
	for _, w := range withdrawals {
		stats.TotalWithdrawn += w.Amount
	}
	for _, e := range employees {
		if e.Active {
			stats.ActiveEmployeeCount++
		}
		if e.VerificationPending {
			stats.PendingVerificationCount++
		}
		stats.TotalEarnedAcrossEmployees += EarnedSalary(e.MonthlySalary, e.DaysWorked, DaysInCycle)
	}
	return stats
}

// AggregatePlatformRevenue computes platform revenue as a flat fee per
// recorded withdrawal plus a monthly charge per active employee.
func AggregatePlatformRevenue(withdrawals []WithdrawalEntry, employees []EmployeeRecord) float64 {
	active := 0
	for _, e := range employees {
		if e.Active {
			active++
		}
	}
	return float64(len(withdrawals))*FlatFee + float64(active)*PerEmployeeFee
}
