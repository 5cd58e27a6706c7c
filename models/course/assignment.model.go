package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission statuses.
const (
	SubmissionPending = "PENDING"
	SubmissionGraded  = "GRADED"
)

// Assignment holds the grading rules for an ASSIGNMENT lesson
type Assignment struct {
	gorm.Model
	LessonID  uint `json:"lesson_id" gorm:"index;not null"`
	CourseID  uint `json:"course_id" gorm:"index;not null"`
	MaxScore  int  `json:"max_score" gorm:"default:100"`
	IsDeleted bool `gorm:"default:false"`
}

// AssignmentSubmission tracks a student's submitted work and its grade.
// Score is set exactly once, on the PENDING -> GRADED transition.
type AssignmentSubmission struct {
	gorm.Model
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	AssignmentID uint           `json:"assignment_id" gorm:"index;not null"`
	CourseID     uint           `json:"course_id" gorm:"index;not null"`
	Files        datatypes.JSON `json:"files"` // submitted file URLs
	Status       string         `json:"status" gorm:"default:'PENDING'"` // PENDING, GRADED
	Score        *int           `json:"score"`
	Feedback     string         `json:"feedback"`
	SubmittedAt  time.Time      `json:"submitted_at"`
	GradedAt     *time.Time     `json:"graded_at"`
	GradedBy     *uint          `json:"graded_by"`
}
