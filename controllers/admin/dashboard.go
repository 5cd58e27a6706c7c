package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/services"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetPlatformAnalytics serves the platform-wide rollup. Reads come from the
// scheduler-warmed cache when fresh; otherwise the projection is recomputed
// on demand.
func GetPlatformAnalytics(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	snapshot, ok := services.Default.CachedSnapshot()
	if !ok {
		var err error
		snapshot, err = services.Default.RefreshSnapshot()
		if err != nil {
			return middleware.ServiceError(c, err, "Failed to compute analytics!")
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully!", snapshot)
}

// DashboardStats gets dashboard statistics
func DashboardStats(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var totalCourses, publishedCourses, totalEnrollments, completedEnrollments, issuedCertificates, pendingRequests int64

	database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)
	database.Database.Db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	database.Database.Db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND status = ?", false, courseModels.EnrollmentCompleted).Count(&completedEnrollments)
	database.Database.Db.Model(&courseModels.Certificate{}).Count(&issuedCertificates)
	database.Database.Db.Model(&courseModels.CertificateRequest{}).Where("is_deleted = ? AND status = ?", false, courseModels.RequestPending).Count(&pendingRequests)

	// Get recent enrollments
	type RecentEnrollment struct {
		UserName    string    `json:"user_name"`
		CourseTitle string    `json:"course_title"`
		EnrolledAt  time.Time `json:"enrolled_at"`
	}

	var recentEnrollments []courseModels.Enrollment
	database.Database.Db.Where("is_deleted = ?", false).Order("created_at desc").Limit(5).Find(&recentEnrollments)

	recent := make([]RecentEnrollment, len(recentEnrollments))
	for i, e := range recentEnrollments {
		var enrolledUser models.User
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.UserID).First(&enrolledUser)
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		recent[i] = RecentEnrollment{
			UserName:    enrolledUser.Name,
			CourseTitle: course.Title,
			EnrolledAt:  e.CreatedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats": fiber.Map{
			"total_courses":         totalCourses,
			"published_courses":     publishedCourses,
			"total_enrollments":     totalEnrollments,
			"completed_enrollments": completedEnrollments,
			"issued_certificates":   issuedCertificates,
			"pending_requests":      pendingRequests,
		},
		"recent_enrollments": recent,
	})
}
