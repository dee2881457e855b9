/*
Package payroll implements the earned-wage accrual and withdrawal
eligibility rules.

Every function in this package is pure: no storage, no network, no clock
access except where a time.Time is passed in. Callers read state, feed it
through these functions, and persist the outcome themselves. Keeping the
rules side-effect free is what allows the withdrawal flow to validate a
request inside a database transaction without re-implementing the math.

Core rules:

	earned    = monthlySalary / DaysInCycle * daysWorked
	limit     = max(0, earned * WithdrawalFraction - withdrawnThisCycle)
	admissible iff 0 < amount <= limit

A cycle is a fixed 30-day pay period. Withdrawn amounts are scoped to the
current cycle: on the first of the month the limit resets along with the
payroll run.
*/
package payroll
