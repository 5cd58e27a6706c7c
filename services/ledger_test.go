package services

import (
	"testing"

	courseModels "academy/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizAttemptLimit(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, _ := seedCourse(t, svc.db, instructor.ID, 1)
	enroll(t, svc.db, student.ID, course.ID)
	quiz := seedQuiz(t, svc.db, course.ID, 70, 3)

	scores := []int{40, 55, 72}
	for i, score := range scores {
		attempt, err := svc.RecordQuizAttempt(student.ID, quiz.ID, score)
		require.NoError(t, err)
		assert.Equal(t, i+1, attempt.AttemptNumber)
		assert.Equal(t, score, attempt.Score)
		assert.Equal(t, score >= 70, attempt.Passed)
	}

	// Fourth attempt is rejected and leaves no trace in the ledger.
	_, err := svc.RecordQuizAttempt(student.ID, quiz.ID, 95)
	assert.ErrorIs(t, err, ErrAttemptLimitExceeded)

	var count int64
	require.NoError(t, svc.db.Model(&courseModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", student.ID, quiz.ID).
		Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestQuizAttemptScoreBounds(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, _ := seedCourse(t, svc.db, instructor.ID, 1)
	enroll(t, svc.db, student.ID, course.ID)
	quiz := seedQuiz(t, svc.db, course.ID, 70, 3)

	_, err := svc.RecordQuizAttempt(student.ID, quiz.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.RecordQuizAttempt(student.ID, quiz.ID, 101)
	assert.ErrorIs(t, err, ErrInvalidScore)

	// Boundary scores are valid.
	attempt, err := svc.RecordQuizAttempt(student.ID, quiz.ID, 0)
	require.NoError(t, err)
	assert.False(t, attempt.Passed)

	attempt, err = svc.RecordQuizAttempt(student.ID, quiz.ID, 100)
	require.NoError(t, err)
	assert.True(t, attempt.Passed)
}

func TestQuizAttemptExactPassingScore(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, _ := seedCourse(t, svc.db, instructor.ID, 1)
	enroll(t, svc.db, student.ID, course.ID)
	quiz := seedQuiz(t, svc.db, course.ID, 70, 5)

	attempt, err := svc.RecordQuizAttempt(student.ID, quiz.ID, 70)
	require.NoError(t, err)
	assert.True(t, attempt.Passed)

	attempt, err = svc.RecordQuizAttempt(student.ID, quiz.ID, 69)
	require.NoError(t, err)
	assert.False(t, attempt.Passed)
}

func TestQuizAttemptGuards(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, _ := seedCourse(t, svc.db, instructor.ID, 1)
	quiz := seedQuiz(t, svc.db, course.ID, 70, 3)

	_, err := svc.RecordQuizAttempt(student.ID, 9999, 80)
	assert.ErrorIs(t, err, ErrQuizNotFound)

	// Enrolled check comes after the quiz lookup.
	_, err = svc.RecordQuizAttempt(student.ID, quiz.ID, 80)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestAssignmentSubmissionLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, _ := seedCourse(t, svc.db, instructor.ID, 1)
	enroll(t, svc.db, student.ID, course.ID)
	assignment := seedAssignment(t, svc.db, course.ID, 100)

	submission, err := svc.RecordAssignmentSubmission(student.ID, assignment.ID, []string{"report.pdf"})
	require.NoError(t, err)
	assert.Equal(t, courseModels.SubmissionPending, submission.Status)
	assert.Nil(t, submission.Score)

	// A second submission while one is pending is refused.
	_, err = svc.RecordAssignmentSubmission(student.ID, assignment.ID, []string{"report-v2.pdf"})
	assert.ErrorIs(t, err, ErrDuplicateSubmission)

	// Grading clears the way for a resubmission.
	_, err = svc.GradeAssignment(instructor.ID, submission.ID, 40, "needs work")
	require.NoError(t, err)

	resubmission, err := svc.RecordAssignmentSubmission(student.ID, assignment.ID, []string{"report-v2.pdf"})
	require.NoError(t, err)
	assert.NotEqual(t, submission.ID, resubmission.ID)
}

func TestGradeAssignmentExactlyOnce(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, _ := seedCourse(t, svc.db, instructor.ID, 1)
	enroll(t, svc.db, student.ID, course.ID)
	assignment := seedAssignment(t, svc.db, course.ID, 100)

	submission, err := svc.RecordAssignmentSubmission(student.ID, assignment.ID, []string{"lab.zip"})
	require.NoError(t, err)

	graded, err := svc.GradeAssignment(instructor.ID, submission.ID, 85, "good")
	require.NoError(t, err)
	assert.Equal(t, courseModels.SubmissionGraded, graded.Status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 85, *graded.Score)
	require.NotNil(t, graded.GradedBy)
	assert.Equal(t, instructor.ID, *graded.GradedBy)

	// The second grade attempt fails and the first grade survives.
	_, err = svc.GradeAssignment(instructor.ID, submission.ID, 30, "overwrite")
	assert.ErrorIs(t, err, ErrAlreadyGraded)

	var stored courseModels.AssignmentSubmission
	require.NoError(t, svc.db.First(&stored, submission.ID).Error)
	assert.Equal(t, courseModels.SubmissionGraded, stored.Status)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 85, *stored.Score)
	assert.Equal(t, "good", stored.Feedback)
}

func TestGradeAssignmentScoreBounds(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, _ := seedCourse(t, svc.db, instructor.ID, 1)
	enroll(t, svc.db, student.ID, course.ID)
	assignment := seedAssignment(t, svc.db, course.ID, 50)

	submission, err := svc.RecordAssignmentSubmission(student.ID, assignment.ID, []string{"lab.zip"})
	require.NoError(t, err)

	_, err = svc.GradeAssignment(instructor.ID, submission.ID, 51, "")
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.GradeAssignment(instructor.ID, submission.ID, -1, "")
	assert.ErrorIs(t, err, ErrInvalidScore)

	// Max score itself is acceptable.
	graded, err := svc.GradeAssignment(instructor.ID, submission.ID, 50, "full marks")
	require.NoError(t, err)
	assert.Equal(t, 50, *graded.Score)
}

func TestGradeUnknownSubmission(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")

	_, err := svc.GradeAssignment(instructor.ID, 9999, 50, "")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestSubmitAssignmentGuards(t *testing.T) {
	svc, _ := newTestService(t)
	instructor := seedInstructor(t, svc.db, "Priya")
	student := seedStudent(t, svc.db, "Arjun")
	course, _ := seedCourse(t, svc.db, instructor.ID, 1)
	assignment := seedAssignment(t, svc.db, course.ID, 100)

	_, err := svc.RecordAssignmentSubmission(student.ID, 9999, []string{"x"})
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	_, err = svc.RecordAssignmentSubmission(student.ID, assignment.ID, []string{"x"})
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}
