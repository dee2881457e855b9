package models

import (
	"time"

	"gorm.io/gorm"
)

// Withdrawal is one recorded salary advance. Records are append-only:
// there is no reversal or void operation, corrections get a new record.
type Withdrawal struct {
	gorm.Model
	Reference     string  `gorm:"uniqueIndex;not null"`
	UserID        uint    `gorm:"index;not null"`
	EmployerID    uint    `gorm:"index;not null"`
	Amount        float64 `gorm:"not null"`
	Fee           float64 `gorm:"not null"`
	RepaymentDate time.Time
}
