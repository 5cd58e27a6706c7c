package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"academy/models"
	courseModels "academy/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database migrated with the full
// schema. A single connection keeps sqlite's locking out of the way.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Quiz{},
		&courseModels.QuizAttempt{},
		&courseModels.Assignment{},
		&courseModels.AssignmentSubmission{},
		&courseModels.LessonCompletion{},
		&courseModels.Enrollment{},
		&courseModels.Certificate{},
		&courseModels.CertificateRequest{},
	))

	return db
}

// recordingNotifier captures emitted events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingNotifier) byType(eventType string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// newTestService builds an engine over a fresh database with a recording
// notifier.
func newTestService(t *testing.T) (*Service, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	return New(newTestDB(t), notifier), notifier
}

var userSeq int

func seedUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()
	userSeq++
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@example.com", strings.ToLower(name), userSeq),
		Role:     role,
		Password: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedStudent(t *testing.T, db *gorm.DB, name string) *models.User {
	return seedUser(t, db, name, models.RoleStudent)
}

func seedInstructor(t *testing.T, db *gorm.DB, name string) *models.User {
	return seedUser(t, db, name, models.RoleInstructor)
}

// seedCourse creates a published course with one module and the given number
// of published lessons.
func seedCourse(t *testing.T, db *gorm.DB, instructorID uint, lessonCount int) (*courseModels.Course, []courseModels.Lesson) {
	t.Helper()

	course := courseModels.Course{
		Title:        "Network Defense Fundamentals",
		InstructorID: instructorID,
		Price:        4900,
		Rating:       4.5,
		Status:       "ACTIVE",
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&course).Error)

	module := courseModels.Module{CourseID: course.ID, Title: "Basics"}
	require.NoError(t, db.Create(&module).Error)

	lessons := make([]courseModels.Lesson, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lessons[i] = courseModels.Lesson{
			CourseID:    course.ID,
			ModuleID:    module.ID,
			Title:       fmt.Sprintf("Lesson %d", i+1),
			LessonType:  courseModels.LessonVideo,
			OrderIndex:  i,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}

	return &course, lessons
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) *courseModels.Enrollment {
	t.Helper()
	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   courseModels.EnrollmentActive,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return &enrollment
}

func seedQuiz(t *testing.T, db *gorm.DB, courseID uint, passingScore, maxAttempts int) *courseModels.Quiz {
	t.Helper()
	quiz := courseModels.Quiz{
		CourseID:     courseID,
		PassingScore: passingScore,
		MaxAttempts:  maxAttempts,
	}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

func seedAssignment(t *testing.T, db *gorm.DB, courseID uint, maxScore int) *courseModels.Assignment {
	t.Helper()
	assignment := courseModels.Assignment{
		CourseID: courseID,
		MaxScore: maxScore,
	}
	require.NoError(t, db.Create(&assignment).Error)
	return &assignment
}

// completeCourse marks every lesson of the course done for the student.
func completeCourse(t *testing.T, svc *Service, userID uint, lessons []courseModels.Lesson) {
	t.Helper()
	for _, lesson := range lessons {
		_, err := svc.RecordLessonComplete(userID, lesson.ID)
		require.NoError(t, err)
	}
}

// backdateEnrollment rewrites an enrollment's creation month for bucket tests.
func backdateEnrollment(t *testing.T, db *gorm.DB, enrollmentID uint, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("id = ?", enrollmentID).
		Update("created_at", at).Error)
}
