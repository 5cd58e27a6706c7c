package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses. COMPLETED is terminal; there is no path back to ACTIVE.
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
)

// Enrollment tracks a user's enrollment in a course with progress.
// Progress is a derived, advisory percentage; the authoritative completion
// signal is Status. CompletedAt is set iff Status is COMPLETED.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Status      string     `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, COMPLETED
	Progress    int        `json:"progress" gorm:"default:0"`      // percent, 0-100
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
