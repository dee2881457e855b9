package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleEmployee = "employee"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// Account states
const (
	UserActive    = "active"
	UserSuspended = "suspended"
)

// Verification states for an employee profile. The only legal
// transitions are not_started -> pending -> approved|rejected; a
// rejected employee may resubmit documents, which moves them back
// to pending.
const (
	VerificationNotStarted = "not_started"
	VerificationPending    = "pending"
	VerificationApproved   = "approved"
	VerificationRejected   = "rejected"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Name         string
	Role         string `gorm:"default:'employee'"`
	Status       string `gorm:"default:'active'"`
	TokenVersion int    `gorm:"default:1"`

	// Employee profile. EmployerID is nil until onboarding links the
	// employee to an employer through an invite code.
	EmployerID         *uint   `gorm:"index"`
	MonthlySalary      float64 `gorm:"default:0"`
	DaysWorked         int     `gorm:"default:0"`
	VerificationStatus string  `gorm:"default:'not_started'"`
	DocumentVerified   bool    `gorm:"default:false"`
	VerifiedAt         *time.Time
}

// IsApproved reports whether the employee has cleared verification and
// may withdraw.
func (u *User) IsApproved() bool {
	return u.VerificationStatus == VerificationApproved && u.DocumentVerified
}
