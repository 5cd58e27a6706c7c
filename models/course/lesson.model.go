package course

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// LessonType is the closed set of lesson variants. New variants must be added
// here and handled wherever lessons are consumed.
type LessonType string

const (
	LessonVideo      LessonType = "VIDEO"
	LessonReading    LessonType = "READING"
	LessonArticle    LessonType = "ARTICLE"
	LessonQuiz       LessonType = "QUIZ"
	LessonAssignment LessonType = "ASSIGNMENT"
)

// ParseLessonType rejects unknown type strings instead of passing them through.
func ParseLessonType(s string) (LessonType, error) {
	switch LessonType(s) {
	case LessonVideo, LessonReading, LessonArticle, LessonQuiz, LessonAssignment:
		return LessonType(s), nil
	}
	return "", fmt.Errorf("unknown lesson type %q", s)
}

// Lesson represents a single consumable unit within a module
type Lesson struct {
	gorm.Model
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	ModuleID    uint       `json:"module_id" gorm:"index;not null"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	LessonType  LessonType `json:"lesson_type" gorm:"default:'VIDEO'"`
	VideoURL    string     `json:"video_url"`                     // VIDEO
	TextContent string     `json:"text_content" gorm:"type:text"` // READING, ARTICLE
	OrderIndex  int        `json:"order_index" gorm:"default:0"`
	IsPublished bool       `json:"is_published" gorm:"default:false"`
	IsDeleted   bool       `gorm:"default:false"`
}

// LessonCompletion records that a student finished a lesson.
// One row per (user, lesson); rows are never mutated or deleted.
type LessonCompletion struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	LessonID    uint      `json:"lesson_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	CompletedAt time.Time `json:"completed_at"`
}
