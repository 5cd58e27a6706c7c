package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate request statuses.
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// CertificateRequest represents a student's request for a course completion
// certificate, pending instructor review.
type CertificateRequest struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"index;not null"`
	CourseID        uint       `json:"course_id" gorm:"index;not null"`
	EnrollmentID    uint       `json:"enrollment_id" gorm:"index;not null"`
	Status          string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	RequestedAt     time.Time  `json:"requested_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ReviewedBy      *uint      `json:"reviewed_by"`
	RejectionReason string     `json:"rejection_reason"`
	IsDeleted       bool       `gorm:"default:false"`
}

// Certificate is the immutable proof of course completion. At most one per
// (user, course); never updated or deleted.
type Certificate struct {
	gorm.Model
	UserID           uint      `json:"user_id" gorm:"uniqueIndex:idx_cert_user_course;not null"`
	CourseID         uint      `json:"course_id" gorm:"uniqueIndex:idx_cert_user_course;not null"`
	VerificationCode string    `json:"verification_code" gorm:"unique;not null"`
	IssuedAt         time.Time `json:"issued_at"`
	IssuedBy         uint      `json:"issued_by"`
}
