package services

import (
	"encoding/json"
	"time"

	courseModels "academy/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordLessonComplete appends a lesson completion for the student. Marking
// the same lesson twice is not an error: the existing row is returned and the
// ledger is unchanged. On a fresh completion the enrollment is re-evaluated.
func (s *Service) RecordLessonComplete(userID, lessonID uint) (*courseModels.LessonCompletion, error) {
	var lesson courseModels.Lesson
	err := s.db.Where("id = ? AND is_deleted = ? AND is_published = ?", lessonID, false, true).
		First(&lesson).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	if _, err := s.findEnrollment(userID, lesson.CourseID); err != nil {
		return nil, err
	}

	var existing courseModels.LessonCompletion
	err = s.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	completion := courseModels.LessonCompletion{
		UserID:      userID,
		LessonID:    lessonID,
		CourseID:    lesson.CourseID,
		CompletedAt: time.Now(),
	}
	if err := s.db.Create(&completion).Error; err != nil {
		// A concurrent marker may have won the unique (user, lesson) index.
		if ferr := s.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}

	if err := s.ReevaluateEnrollment(userID, lesson.CourseID); err != nil {
		return nil, err
	}

	return &completion, nil
}

// RecordQuizAttempt scores and appends a quiz attempt. Attempts beyond the
// quiz's MaxAttempts fail with ErrAttemptLimitExceeded and insert nothing.
func (s *Service) RecordQuizAttempt(userID, quizID uint, score int) (*courseModels.QuizAttempt, error) {
	var quiz courseModels.Quiz
	err := s.db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	if score < 0 || score > 100 {
		return nil, ErrInvalidScore
	}

	if _, err := s.findEnrollment(userID, quiz.CourseID); err != nil {
		return nil, err
	}

	var attemptCount int64
	err = s.db.Model(&courseModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&attemptCount).Error
	if err != nil {
		return nil, err
	}
	if quiz.MaxAttempts > 0 && attemptCount >= int64(quiz.MaxAttempts) {
		return nil, ErrAttemptLimitExceeded
	}

	attempt := courseModels.QuizAttempt{
		UserID:        userID,
		QuizID:        quizID,
		CourseID:      quiz.CourseID,
		Score:         score,
		Passed:        score >= quiz.PassingScore,
		AttemptNumber: int(attemptCount) + 1,
		AttemptedAt:   time.Now(),
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		return nil, err
	}

	return &attempt, nil
}

// RecordAssignmentSubmission files a PENDING submission. Only one ungraded
// submission per (student, assignment) is allowed at a time.
func (s *Service) RecordAssignmentSubmission(userID, assignmentID uint, files []string) (*courseModels.AssignmentSubmission, error) {
	var assignment courseModels.Assignment
	err := s.db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if _, err := s.findEnrollment(userID, assignment.CourseID); err != nil {
		return nil, err
	}

	var pending courseModels.AssignmentSubmission
	err = s.db.Where("user_id = ? AND assignment_id = ? AND status = ?", userID, assignmentID, courseModels.SubmissionPending).
		First(&pending).Error
	if err == nil {
		return nil, ErrDuplicateSubmission
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	fileJSON, err := json.Marshal(files)
	if err != nil {
		return nil, err
	}

	submission := courseModels.AssignmentSubmission{
		UserID:       userID,
		AssignmentID: assignmentID,
		CourseID:     assignment.CourseID,
		Files:        datatypes.JSON(fileJSON),
		Status:       courseModels.SubmissionPending,
		SubmittedAt:  time.Now(),
	}
	if err := s.db.Create(&submission).Error; err != nil {
		return nil, err
	}

	return &submission, nil
}

// GradeAssignment moves a submission from PENDING to GRADED exactly once.
// Regrading through this path fails with ErrAlreadyGraded.
func (s *Service) GradeAssignment(instructorID, submissionID uint, score int, feedback string) (*courseModels.AssignmentSubmission, error) {
	var submission courseModels.AssignmentSubmission
	err := s.db.Where("id = ?", submissionID).First(&submission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	if submission.Status == courseModels.SubmissionGraded {
		return nil, ErrAlreadyGraded
	}

	var assignment courseModels.Assignment
	if err := s.db.Where("id = ?", submission.AssignmentID).First(&assignment).Error; err != nil {
		return nil, ErrAssignmentNotFound
	}
	if score < 0 || score > assignment.MaxScore {
		return nil, ErrInvalidScore
	}

	now := time.Now()
	// Guard on status so a racing grader cannot overwrite the first grade.
	res := s.db.Model(&courseModels.AssignmentSubmission{}).
		Where("id = ? AND status = ?", submissionID, courseModels.SubmissionPending).
		Updates(map[string]interface{}{
			"status":    courseModels.SubmissionGraded,
			"score":     score,
			"feedback":  feedback,
			"graded_at": now,
			"graded_by": instructorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyGraded
	}

	submission.Status = courseModels.SubmissionGraded
	submission.Score = &score
	submission.Feedback = feedback
	submission.GradedAt = &now
	submission.GradedBy = &instructorID
	return &submission, nil
}
