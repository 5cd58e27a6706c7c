package services

import (
	"sync"
	"testing"

	courseModels "academy/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressAndCompletionTransition(t *testing.T) {
	svc, notifier := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, lessons := seedCourse(t, svc.db, instructor.ID, 10)
	enroll(t, svc.db, student.ID, course.ID)

	// Nine of ten lessons: 90 percent, still ACTIVE.
	for _, lesson := range lessons[:9] {
		_, err := svc.RecordLessonComplete(student.ID, lesson.ID)
		require.NoError(t, err)
	}

	progress, err := svc.ComputeProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, progress.CompletedLessons)
	assert.Equal(t, 10, progress.TotalLessons)
	assert.Equal(t, 90, progress.Percentage)

	enrollment, err := svc.GetEnrollment(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)
	assert.Empty(t, notifier.byType(EventCourseCompleted))

	// Final lesson flips the enrollment to COMPLETED.
	_, err = svc.RecordLessonComplete(student.ID, lessons[9].ID)
	require.NoError(t, err)

	enrollment, err = svc.GetEnrollment(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	assert.Equal(t, 100, enrollment.Progress)
	require.NotNil(t, enrollment.CompletedAt)

	events := notifier.byType(EventCourseCompleted)
	require.Len(t, events, 1)
	assert.Equal(t, student.ID, events[0].UserID)
	assert.Equal(t, course.ID, events[0].CourseID)
	assert.Equal(t, student.Email, events[0].UserEmail)
	assert.Equal(t, course.Title, events[0].CourseTitle)
}

func TestLessonCompletionIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, lessons := seedCourse(t, svc.db, instructor.ID, 3)
	enroll(t, svc.db, student.ID, course.ID)

	first, err := svc.RecordLessonComplete(student.ID, lessons[0].ID)
	require.NoError(t, err)

	second, err := svc.RecordLessonComplete(student.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, svc.db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", student.ID, lessons[0].ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	progress, err := svc.ComputeProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CompletedLessons)
	assert.Equal(t, 33, progress.Percentage)
}

func TestCompleteLessonRequiresEnrollment(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	_, lessons := seedCourse(t, svc.db, instructor.ID, 2)

	_, err := svc.RecordLessonComplete(student.ID, lessons[0].ID)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestCompleteUnknownLesson(t *testing.T) {
	svc, _ := newTestService(t)
	student := seedStudent(t, svc.db, "Arjun")

	_, err := svc.RecordLessonComplete(student.ID, 9999)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestEmptyCourseNeverCompletes(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, _ := seedCourse(t, svc.db, instructor.ID, 0)
	enroll(t, svc.db, student.ID, course.ID)

	progress, err := svc.ComputeProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.TotalLessons)
	assert.Equal(t, 0, progress.Percentage)

	complete, err := svc.IsCourseComplete(student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, complete)

	require.NoError(t, svc.ReevaluateEnrollment(student.ID, course.ID))
	enrollment, err := svc.GetEnrollment(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
}

func TestUnpublishedLessonsExcluded(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, lessons := seedCourse(t, svc.db, instructor.ID, 4)
	enroll(t, svc.db, student.ID, course.ID)

	// Pull one lesson back to draft; it no longer counts toward the total.
	require.NoError(t, svc.db.Model(&courseModels.Lesson{}).
		Where("id = ?", lessons[3].ID).
		Update("is_published", false).Error)

	for _, lesson := range lessons[:3] {
		_, err := svc.RecordLessonComplete(student.ID, lesson.ID)
		require.NoError(t, err)
	}

	progress, err := svc.ComputeProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.TotalLessons)
	assert.Equal(t, 100, progress.Percentage)

	enrollment, err := svc.GetEnrollment(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
}

func TestCompletionIsOneWay(t *testing.T) {
	svc, notifier := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, lessons := seedCourse(t, svc.db, instructor.ID, 2)
	enroll(t, svc.db, student.ID, course.ID)
	completeCourse(t, svc, student.ID, lessons)

	enrollment, err := svc.GetEnrollment(student.ID, course.ID)
	require.NoError(t, err)
	require.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	completedAt := *enrollment.CompletedAt

	// Repeated re-evaluation and re-marking leave the enrollment untouched
	// and emit no further events.
	require.NoError(t, svc.ReevaluateEnrollment(student.ID, course.ID))
	_, err = svc.RecordLessonComplete(student.ID, lessons[0].ID)
	require.NoError(t, err)
	require.NoError(t, svc.ReevaluateEnrollment(student.ID, course.ID))

	enrollment, err = svc.GetEnrollment(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	assert.Equal(t, completedAt.Unix(), enrollment.CompletedAt.Unix())
	assert.Len(t, notifier.byType(EventCourseCompleted), 1)
}

func TestConcurrentFinalLessonSingleTransition(t *testing.T) {
	svc, notifier := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, lessons := seedCourse(t, svc.db, instructor.ID, 5)
	enroll(t, svc.db, student.ID, course.ID)
	completeCourse(t, svc, student.ID, lessons[:4])

	final := lessons[4].ID
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordLessonComplete(student.ID, final)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, svc.db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", student.ID, final).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	enrollment, err := svc.GetEnrollment(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	assert.Len(t, notifier.byType(EventCourseCompleted), 1)
}

func TestReevaluateUnknownEnrollment(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.ReevaluateEnrollment(1, 1)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}
