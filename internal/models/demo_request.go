package models

import "gorm.io/gorm"

// Demo request statuses. A request transitions exactly once, from
// pending to accepted or rejected.
const (
	DemoRequestPending  = "pending"
	DemoRequestAccepted = "accepted"
	DemoRequestRejected = "rejected"
)

// DemoRequest is a public demo-request submission from the landing page.
type DemoRequest struct {
	gorm.Model
	Company string `gorm:"not null"`
	Name    string
	Email   string
	Phone   string
	Size    string
	Status  string `gorm:"default:'pending'"`
}
