package services

import (
	"sort"
	"sync"
	"time"

	"academy/models"
	courseModels "academy/models/course"
)

// Scope restricts an analytics projection to one instructor's courses.
// The zero value means platform-wide.
type Scope struct {
	InstructorID uint
}

// MonthCount is a per-month counter bucket, keyed YYYY-MM.
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// MonthRevenue is a per-month revenue bucket in minor currency units.
// Revenue is recognized at enrollment time, not at completion.
type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// CourseStat ranks one course by enrollment count.
type CourseStat struct {
	CourseID    uint    `json:"course_id"`
	Title       string  `json:"title"`
	Enrollments int64   `json:"enrollments"`
	Rating      float64 `json:"rating"`
}

// InstructorStat ranks one instructor by aggregate student count.
type InstructorStat struct {
	InstructorID uint    `json:"instructor_id"`
	Name         string  `json:"name"`
	Students     int64   `json:"students"`
	AvgRating    float64 `json:"avg_rating"`
}

const monthLayout = "2006-01"

// scopedEnrollments loads the non-deleted enrollments visible to the scope.
// Bucketing happens in Go so the projection behaves identically on every
// supported database.
func (s *Service) scopedEnrollments(scope Scope) ([]courseModels.Enrollment, error) {
	db := s.db.Model(&courseModels.Enrollment{}).Where("enrollments.is_deleted = ?", false)
	if scope.InstructorID != 0 {
		db = db.Joins("JOIN courses ON courses.id = enrollments.course_id").
			Where("courses.instructor_id = ? AND courses.is_deleted = ?", scope.InstructorID, false)
	}
	var enrollments []courseModels.Enrollment
	if err := db.Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// EnrollmentsByMonth groups enrollments by their enrollment month.
func (s *Service) EnrollmentsByMonth(scope Scope) ([]MonthCount, error) {
	enrollments, err := s.scopedEnrollments(scope)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]int64)
	for _, enrollment := range enrollments {
		buckets[enrollment.CreatedAt.Format(monthLayout)]++
	}

	result := make([]MonthCount, 0, len(buckets))
	for month, count := range buckets {
		result = append(result, MonthCount{Month: month, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

// RevenueByMonth attributes each course's price to the month its enrollments
// were created in.
func (s *Service) RevenueByMonth(scope Scope) ([]MonthRevenue, error) {
	enrollments, err := s.scopedEnrollments(scope)
	if err != nil {
		return nil, err
	}

	prices := make(map[uint]int64)
	buckets := make(map[string]int64)
	for _, enrollment := range enrollments {
		price, ok := prices[enrollment.CourseID]
		if !ok {
			var course courseModels.Course
			if err := s.db.Select("price").Where("id = ?", enrollment.CourseID).First(&course).Error; err == nil {
				price = course.Price
			}
			prices[enrollment.CourseID] = price
		}
		buckets[enrollment.CreatedAt.Format(monthLayout)] += price
	}

	result := make([]MonthRevenue, 0, len(buckets))
	for month, revenue := range buckets {
		result = append(result, MonthRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

// TopCourses ranks courses by enrollment count; ties break on rating
// descending, then course ID ascending so the ordering is deterministic.
func (s *Service) TopCourses(scope Scope, limit int) ([]CourseStat, error) {
	enrollments, err := s.scopedEnrollments(scope)
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64)
	for _, enrollment := range enrollments {
		counts[enrollment.CourseID]++
	}

	stats := make([]CourseStat, 0, len(counts))
	for courseID, count := range counts {
		var course courseModels.Course
		if err := s.db.Where("id = ?", courseID).First(&course).Error; err != nil {
			continue
		}
		stats = append(stats, CourseStat{
			CourseID:    courseID,
			Title:       course.Title,
			Enrollments: count,
			Rating:      course.Rating,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Enrollments != stats[j].Enrollments {
			return stats[i].Enrollments > stats[j].Enrollments
		}
		if stats[i].Rating != stats[j].Rating {
			return stats[i].Rating > stats[j].Rating
		}
		return stats[i].CourseID < stats[j].CourseID
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

// TopInstructors ranks instructors by total students across their courses,
// tie-broken by average course rating descending.
func (s *Service) TopInstructors(scope Scope, limit int) ([]InstructorStat, error) {
	var courses []courseModels.Course
	db := s.db.Where("is_deleted = ?", false)
	if scope.InstructorID != 0 {
		db = db.Where("instructor_id = ?", scope.InstructorID)
	}
	if err := db.Find(&courses).Error; err != nil {
		return nil, err
	}

	type agg struct {
		students    int64
		ratingSum   float64
		courseCount int64
	}
	byInstructor := make(map[uint]*agg)
	for _, course := range courses {
		a, ok := byInstructor[course.InstructorID]
		if !ok {
			a = &agg{}
			byInstructor[course.InstructorID] = a
		}
		var count int64
		err := s.db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		a.students += count
		a.ratingSum += course.Rating
		a.courseCount++
	}

	stats := make([]InstructorStat, 0, len(byInstructor))
	for instructorID, a := range byInstructor {
		stat := InstructorStat{InstructorID: instructorID, Students: a.students}
		if a.courseCount > 0 {
			stat.AvgRating = roundTo2(a.ratingSum / float64(a.courseCount))
		}
		var instructor models.User
		if err := s.db.Select("name").Where("id = ?", instructorID).First(&instructor).Error; err == nil {
			stat.Name = instructor.Name
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Students != stats[j].Students {
			return stats[i].Students > stats[j].Students
		}
		if stats[i].AvgRating != stats[j].AvgRating {
			return stats[i].AvgRating > stats[j].AvgRating
		}
		return stats[i].InstructorID < stats[j].InstructorID
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

// Snapshot is a cached platform-wide rollup. It is a pure projection: safe to
// discard and rebuild from the ledger at any time.
type Snapshot struct {
	GeneratedAt    time.Time        `json:"generated_at"`
	Enrollments    []MonthCount     `json:"enrollments_by_month"`
	Revenue        []MonthRevenue   `json:"revenue_by_month"`
	TopCourses     []CourseStat     `json:"top_courses"`
	TopInstructors []InstructorStat `json:"top_instructors"`
}

type analyticsCache struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

// RefreshSnapshot recomputes and caches the global rollup. The scheduler
// calls this periodically; the refresh interval is the staleness bound.
func (s *Service) RefreshSnapshot() (*Snapshot, error) {
	enrollments, err := s.EnrollmentsByMonth(Scope{})
	if err != nil {
		return nil, err
	}
	revenue, err := s.RevenueByMonth(Scope{})
	if err != nil {
		return nil, err
	}
	topCourses, err := s.TopCourses(Scope{}, 10)
	if err != nil {
		return nil, err
	}
	topInstructors, err := s.TopInstructors(Scope{}, 10)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		GeneratedAt:    time.Now(),
		Enrollments:    enrollments,
		Revenue:        revenue,
		TopCourses:     topCourses,
		TopInstructors: topInstructors,
	}

	s.analytics.mu.Lock()
	s.analytics.snapshot = snapshot
	s.analytics.mu.Unlock()
	return snapshot, nil
}

// CachedSnapshot returns the last refreshed rollup, if any.
func (s *Service) CachedSnapshot() (*Snapshot, bool) {
	s.analytics.mu.RLock()
	defer s.analytics.mu.RUnlock()
	if s.analytics.snapshot == nil {
		return nil, false
	}
	return s.analytics.snapshot, true
}
