package services

import "errors"

// Errors surfaced by the progress and certificate engine. Controllers map
// these onto HTTP statuses with errors.Is; nothing is downgraded silently.
var (
	// not found
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrRequestNotFound     = errors.New("certificate request not found")

	// invalid state
	ErrCourseNotCompleted = errors.New("course not completed")
	ErrAlreadyCertified   = errors.New("certificate already issued")
	ErrAlreadyGraded      = errors.New("submission already graded")
	ErrRequestPending     = errors.New("certificate request already pending")

	// limits and conflicts
	ErrAttemptLimitExceeded = errors.New("quiz attempt limit exceeded")
	ErrDuplicateSubmission  = errors.New("an ungraded submission already exists")
	ErrCodeGeneration       = errors.New("failed to generate a unique verification code")

	// validation
	ErrInvalidScore = errors.New("score out of range")

	// storage gave up after its own retries
	ErrUnavailable = errors.New("storage unavailable")
)
