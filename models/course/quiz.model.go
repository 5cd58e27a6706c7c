package course

import (
	"time"

	"gorm.io/gorm"
)

// Quiz holds the grading rules for a QUIZ lesson
type Quiz struct {
	gorm.Model
	LessonID     uint `json:"lesson_id" gorm:"index;not null"`
	CourseID     uint `json:"course_id" gorm:"index;not null"`
	PassingScore int  `json:"passing_score" gorm:"default:70"` // percent
	MaxAttempts  int  `json:"max_attempts" gorm:"default:3"`
	IsDeleted    bool `gorm:"default:false"`
}

// QuizAttempt represents one scored attempt at a quiz.
// Immutable once created; AttemptNumber strictly increases per (user, quiz).
type QuizAttempt struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	QuizID        uint      `json:"quiz_id" gorm:"index;not null"`
	CourseID      uint      `json:"course_id" gorm:"index;not null"`
	Score         int       `json:"score"`
	Passed        bool      `json:"passed" gorm:"default:false"`
	AttemptNumber int       `json:"attempt_number" gorm:"default:1"`
	AttemptedAt   time.Time `json:"attempted_at"`
}
