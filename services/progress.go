package services

import (
	"math"
	"time"

	courseModels "academy/models/course"
)

// Progress is the derived completion state of one enrollment. Percentage is
// advisory for the UI; the authoritative signal is the enrollment status.
type Progress struct {
	CompletedLessons int `json:"completed_lessons"`
	TotalLessons     int `json:"total_lessons"`
	Percentage       int `json:"percentage"`
}

// ComputeProgress derives lesson progress from the completion ledger. Only
// published lessons count; a course with no lessons reports 0 percent.
func (s *Service) ComputeProgress(userID, courseID uint) (Progress, error) {
	var total int64
	err := s.db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&total).Error
	if err != nil {
		return Progress{}, err
	}

	var completed int64
	err = s.db.Model(&courseModels.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Where("lesson_completions.user_id = ? AND lesson_completions.course_id = ? AND lessons.is_deleted = ? AND lessons.is_published = ?",
			userID, courseID, false, true).
		Count(&completed).Error
	if err != nil {
		return Progress{}, err
	}

	progress := Progress{
		CompletedLessons: int(completed),
		TotalLessons:     int(total),
	}
	if total > 0 {
		progress.Percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return progress, nil
}

// IsCourseComplete reports whether every published lesson of the course has a
// completion record. An empty course is never complete.
func (s *Service) IsCourseComplete(userID, courseID uint) (bool, error) {
	p, err := s.ComputeProgress(userID, courseID)
	if err != nil {
		return false, err
	}
	return p.TotalLessons > 0 && p.CompletedLessons == p.TotalLessons, nil
}

// ReevaluateEnrollment refreshes the advisory progress column and, when the
// course is fully completed, ratchets the enrollment from ACTIVE to
// COMPLETED. The transition happens at most once: the UPDATE is guarded on
// the current status, so concurrent re-evaluations race for a single row
// change and only the winner emits the course-completed event. An already
// COMPLETED enrollment is left untouched.
func (s *Service) ReevaluateEnrollment(userID, courseID uint) error {
	enrollment, err := s.findEnrollment(userID, courseID)
	if err != nil {
		return err
	}
	if enrollment.Status == courseModels.EnrollmentCompleted {
		return nil
	}

	progress, err := s.ComputeProgress(userID, courseID)
	if err != nil {
		return err
	}

	complete := progress.TotalLessons > 0 && progress.CompletedLessons == progress.TotalLessons
	if !complete {
		return s.db.Model(&courseModels.Enrollment{}).
			Where("id = ?", enrollment.ID).
			Update("progress", progress.Percentage).Error
	}

	now := time.Now()
	res := s.db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND status = ?", enrollment.ID, courseModels.EnrollmentActive).
		Updates(map[string]interface{}{
			"status":       courseModels.EnrollmentCompleted,
			"progress":     100,
			"completed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Another writer completed the enrollment first.
		return nil
	}

	s.notifier.Notify(s.buildEvent(EventCourseCompleted, userID, courseID, "", ""))
	return nil
}

// buildEvent enriches an event with user and course display fields so
// notification transports need no database access.
func (s *Service) buildEvent(eventType string, userID, courseID uint, code, reason string) Event {
	event := Event{
		Type:       eventType,
		UserID:     userID,
		CourseID:   courseID,
		Code:       code,
		Reason:     reason,
		OccurredAt: time.Now(),
	}
	if user, err := s.findUser(userID); err == nil {
		event.UserName = user.Name
		event.UserEmail = user.Email
	}
	if course, err := s.findCourse(courseID); err == nil {
		event.CourseTitle = course.Title
	}
	return event
}
