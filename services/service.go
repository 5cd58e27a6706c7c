package services

import (
	"academy/models"
	courseModels "academy/models/course"

	"gorm.io/gorm"
)

// Service is the student progress tracking and certificate eligibility engine.
// All identity (student, instructor) is passed into each call explicitly.
type Service struct {
	db       *gorm.DB
	notifier Notifier

	analytics analyticsCache
}

// New creates an engine bound to a database and a notifier.
func New(db *gorm.DB, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{db: db, notifier: notifier}
}

// Default is the engine instance used by the HTTP controllers.
var Default *Service

// Init wires the package-level engine used by controllers.
func Init(db *gorm.DB, notifier Notifier) {
	Default = New(db, notifier)
}

func (s *Service) findUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) findCourse(id uint) (*courseModels.Course, error) {
	var c courseModels.Course
	if err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetEnrollment returns the enrollment row for a (student, course) pair.
func (s *Service) GetEnrollment(userID, courseID uint) (*courseModels.Enrollment, error) {
	return s.findEnrollment(userID, courseID)
}

// findEnrollment resolves the active enrollment row for a (student, course)
// pair. A missing row is a contract violation by the caller: ledger events
// must never be recorded before enrollment.
func (s *Service) findEnrollment(userID, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}
