package models

import "gorm.io/gorm"

// Employer statuses
const (
	EmployerActive    = "active"
	EmployerSuspended = "suspended"
)

// Employer is a company account created when an admin accepts a demo
// request. Employees link to it during onboarding via the invite code.
type Employer struct {
	gorm.Model
	InviteCode   string `gorm:"uniqueIndex;not null"`
	UserID       *uint  `gorm:"unique"` // employer login, nil when no auth account was created
	CompanyName  string `gorm:"not null"`
	ContactName  string
	ContactEmail string
	ContactPhone string
	Size         string
	Status       string `gorm:"default:'active'"`

	// Cached aggregates, refreshed as employees link and withdrawals
	// are recorded. The source of truth stays in users/withdrawals.
	TotalEmployees int     `gorm:"default:0"`
	TotalWithdrawn float64 `gorm:"default:0"`
}
