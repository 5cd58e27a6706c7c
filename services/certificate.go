package services

import (
	"math"
	"strings"
	"time"

	courseModels "academy/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds the verification-code collision retry loop.
const maxCodeAttempts = 5

// quizAverageThreshold is the advisory readiness bar for the average quiz
// score across a course. It informs the reviewing instructor, nothing more.
const quizAverageThreshold = 70

// RequestCertificate files a pending certificate request for instructor
// review. The enrollment must already be COMPLETED.
func (s *Service) RequestCertificate(userID, courseID uint) (*courseModels.CertificateRequest, error) {
	enrollment, err := s.findEnrollment(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != courseModels.EnrollmentCompleted {
		return nil, ErrCourseNotCompleted
	}

	var existingCert courseModels.Certificate
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existingCert).Error; err == nil {
		return nil, ErrAlreadyCertified
	}

	var existingRequest courseModels.CertificateRequest
	err = s.db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, courseModels.RequestPending, false).First(&existingRequest).Error
	if err == nil {
		return nil, ErrRequestPending
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	request := courseModels.CertificateRequest{
		UserID:       userID,
		CourseID:     courseID,
		EnrollmentID: enrollment.ID,
		Status:       courseModels.RequestPending,
		RequestedAt:  time.Now(),
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// PerformanceSummary aggregates a student's results within one course. It is
// a read-only projection for the reviewing instructor; ReadyForCertificate is
// advisory and never enforced by the engine.
type PerformanceSummary struct {
	Progress             Progress `json:"progress"`
	QuizCount            int      `json:"quiz_count"`
	QuizAverage          float64  `json:"quiz_average"` // over the latest attempt per quiz
	QuizzesPassed        int      `json:"quizzes_passed"`
	AssignmentCount      int      `json:"assignment_count"`
	AssignmentsSubmitted int      `json:"assignments_submitted"`
	AssignmentsGraded    int      `json:"assignments_graded"`
	AssignmentAverage    float64  `json:"assignment_average"`
	ReadyForCertificate  bool     `json:"ready_for_certificate"`
}

// GetPerformanceSummary computes the instructor-facing review projection for
// a (student, course) pair.
func (s *Service) GetPerformanceSummary(userID, courseID uint) (*PerformanceSummary, error) {
	if _, err := s.findEnrollment(userID, courseID); err != nil {
		return nil, err
	}

	progress, err := s.ComputeProgress(userID, courseID)
	if err != nil {
		return nil, err
	}

	summary := PerformanceSummary{Progress: progress}

	var quizzes []courseModels.Quiz
	if err := s.db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&quizzes).Error; err != nil {
		return nil, err
	}
	summary.QuizCount = len(quizzes)

	var attempts []courseModels.QuizAttempt
	err = s.db.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("quiz_id asc, attempt_number asc").Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	// Latest attempt per quiz; the ordering above makes the last row win.
	latest := make(map[uint]courseModels.QuizAttempt)
	for _, attempt := range attempts {
		latest[attempt.QuizID] = attempt
	}
	if len(latest) > 0 {
		sum := 0
		for _, attempt := range latest {
			sum += attempt.Score
			if attempt.Passed {
				summary.QuizzesPassed++
			}
		}
		summary.QuizAverage = roundTo2(float64(sum) / float64(len(latest)))
	}

	var assignments []courseModels.Assignment
	if err := s.db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&assignments).Error; err != nil {
		return nil, err
	}
	summary.AssignmentCount = len(assignments)

	var submissions []courseModels.AssignmentSubmission
	err = s.db.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	submittedFor := make(map[uint]bool)
	gradeSum := 0
	for _, submission := range submissions {
		submittedFor[submission.AssignmentID] = true
		if submission.Status == courseModels.SubmissionGraded && submission.Score != nil {
			summary.AssignmentsGraded++
			gradeSum += *submission.Score
		}
	}
	summary.AssignmentsSubmitted = len(submittedFor)
	if summary.AssignmentsGraded > 0 {
		summary.AssignmentAverage = roundTo2(float64(gradeSum) / float64(summary.AssignmentsGraded))
	}

	quizOK := summary.QuizCount == 0 || summary.QuizAverage >= quizAverageThreshold
	allSubmitted := summary.AssignmentsSubmitted == summary.AssignmentCount
	summary.ReadyForCertificate = progress.Percentage == 100 && quizOK && allSubmitted

	return &summary, nil
}

// IssueCertificate creates the single certificate for a (student, course)
// pair. Verification code generation and the insert are atomic; a pending
// review request, when present, is approved in the same transaction. Calling
// without a pending request is the degenerate auto-issue path.
func (s *Service) IssueCertificate(issuerID, userID, courseID uint) (*courseModels.Certificate, error) {
	enrollment, err := s.findEnrollment(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != courseModels.EnrollmentCompleted {
		return nil, ErrCourseNotCompleted
	}

	var certificate courseModels.Certificate
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing courseModels.Certificate
		if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
			return ErrAlreadyCertified
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		code, err := generateVerificationCode(tx)
		if err != nil {
			return err
		}

		now := time.Now()
		certificate = courseModels.Certificate{
			UserID:           userID,
			CourseID:         courseID,
			VerificationCode: code,
			IssuedAt:         now,
			IssuedBy:         issuerID,
		}
		if err := tx.Create(&certificate).Error; err != nil {
			return err
		}

		// Approve the pending review request if the student filed one.
		var request courseModels.CertificateRequest
		err = tx.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
			userID, courseID, courseModels.RequestPending, false).First(&request).Error
		if err == nil {
			request.Status = courseModels.RequestApproved
			request.ReviewedAt = &now
			request.ReviewedBy = &issuerID
			if err := tx.Save(&request).Error; err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(s.buildEvent(EventCertificateIssued, userID, courseID, certificate.VerificationCode, ""))
	return &certificate, nil
}

// RejectCertificateRequest marks the student's pending request REJECTED. No
// certificate row is created; the student is informed through the notifier.
func (s *Service) RejectCertificateRequest(reviewerID, userID, courseID uint, reason string) (*courseModels.CertificateRequest, error) {
	var request courseModels.CertificateRequest
	err := s.db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, courseModels.RequestPending, false).First(&request).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	now := time.Now()
	request.Status = courseModels.RequestRejected
	request.ReviewedAt = &now
	request.ReviewedBy = &reviewerID
	request.RejectionReason = reason
	if err := s.db.Save(&request).Error; err != nil {
		return nil, err
	}

	s.notifier.Notify(s.buildEvent(EventCertificateRejected, userID, courseID, "", reason))
	return &request, nil
}

// VerifyCertificate looks a certificate up by its public verification code.
func (s *Service) VerifyCertificate(code string) (*courseModels.Certificate, error) {
	var certificate courseModels.Certificate
	err := s.db.Where("verification_code = ?", code).First(&certificate).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	return &certificate, nil
}

// generateVerificationCode draws random codes until one is unused, bounded by
// maxCodeAttempts. The unique column constraint is the final arbiter.
func generateVerificationCode(tx *gorm.DB) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
		code := "CERT-" + raw[:16]

		var count int64
		if err := tx.Model(&courseModels.Certificate{}).Where("verification_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
