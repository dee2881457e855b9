package advisor

import "fmt"

// FinancialContext is everything the advisor knows about the employee.
// Nothing else leaves the service, not even to the hosted model.
type FinancialContext struct {
	MonthlySalary  float64 `json:"monthly_salary"`
	EarnedSalary   float64 `json:"earned_salary"`
	AvailableLimit float64 `json:"available_limit"`
	DaysWorked     int     `json:"days_worked"`
}

// comfortableLimit is the threshold above which the fallback treats the
// employee's headroom as healthy.
const comfortableLimit = 3000

// FallbackReply produces deterministic advice from the employee's
// current figures. It never touches the network, so the advisor keeps
// working when the hosted model is down or unconfigured.
func FallbackReply(fc FinancialContext) string {
	switch {
	case fc.AvailableLimit >= comfortableLimit:
		return fmt.Sprintf(
			"You're in a comfortable position. You've earned %.0f so far this month and can withdraw up to %.0f if needed. Try to keep withdrawals for genuine needs so your next salary stays intact.",
			fc.EarnedSalary, fc.AvailableLimit)
	case fc.AvailableLimit > 0:
		return fmt.Sprintf(
			"You have %.0f left to withdraw this cycle. Since you've already used most of your limit, consider waiting for payday unless this is urgent. Remember each withdrawal carries a flat fee.",
			fc.AvailableLimit)
	default:
		return "You've reached your withdrawal limit for this cycle. The full amount plus fees will be adjusted from your next salary. Focus on essentials until payday, and your limit resets at the start of next month."
	}
}
