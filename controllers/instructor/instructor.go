package instructorController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/services"

	"github.com/gofiber/fiber/v2"
)

// GradeSubmission grades a pending assignment submission
func GradeSubmission(c *fiber.Ctx) error {
	instructorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID := c.Locals("submissionID").(int)

	reqData, ok := c.Locals("validatedGrade").(*struct {
		Score    int    `json:"score" validate:"min=0"`
		Feedback string `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	submission, err := services.Default.GradeAssignment(instructorID, uint(submissionID), reqData.Score, reqData.Feedback)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to grade submission!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", submission)
}

// GetPendingSubmissions lists ungraded submissions for the instructor's courses
func GetPendingSubmissions(c *fiber.Ctx) error {
	instructorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type SubmissionWithDetails struct {
		courseModels.AssignmentSubmission
		UserName    string `json:"user_name"`
		CourseTitle string `json:"course_title"`
	}

	var submissions []courseModels.AssignmentSubmission
	err := database.Database.Db.
		Joins("JOIN courses ON courses.id = assignment_submissions.course_id").
		Where("assignment_submissions.status = ? AND courses.instructor_id = ? AND courses.is_deleted = ?",
			courseModels.SubmissionPending, instructorID, false).
		Order("assignment_submissions.submitted_at asc").
		Find(&submissions).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	result := make([]SubmissionWithDetails, len(submissions))
	for i, s := range submissions {
		var submitter models.User
		var course courseModels.Course
		database.Database.Db.Select("name").Where("id = ?", s.UserID).First(&submitter)
		database.Database.Db.Select("title").Where("id = ?", s.CourseID).First(&course)
		result[i] = SubmissionWithDetails{
			AssignmentSubmission: s,
			UserName:             submitter.Name,
			CourseTitle:          course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending submissions fetched successfully!", fiber.Map{
		"submissions": result,
		"total":       len(result),
	})
}

// GetStudentPerformance returns the performance summary used to decide a
// certificate request. Read-only; the readiness flag is advisory.
func GetStudentPerformance(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetUserID := c.Locals("targetUserID").(int)
	courseID := c.Locals("courseID").(int)

	var student models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetUserID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	summary, err := services.Default.GetPerformanceSummary(uint(targetUserID), uint(courseID))
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to fetch performance summary!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Performance summary fetched successfully!", fiber.Map{
		"student": fiber.Map{
			"id":    student.ID,
			"name":  student.Name,
			"email": student.Email,
		},
		"summary": summary,
	})
}

// GetPendingCertificateRequests lists certificate requests awaiting review
func GetPendingCertificateRequests(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedCertificateQuery").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	var total int64
	database.Database.Db.Model(&courseModels.CertificateRequest{}).
		Where("status = ? AND is_deleted = ?", courseModels.RequestPending, false).Count(&total)

	type RequestWithDetails struct {
		courseModels.CertificateRequest
		UserName    string `json:"user_name"`
		UserEmail   string `json:"user_email"`
		CourseTitle string `json:"course_title"`
	}

	var requests []courseModels.CertificateRequest
	if err := database.Database.Db.Where("status = ? AND is_deleted = ?", courseModels.RequestPending, false).
		Offset(offset).Limit(limit).Order("requested_at asc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	result := make([]RequestWithDetails, len(requests))
	for i, r := range requests {
		var reqUser models.User
		var course courseModels.Course
		database.Database.Db.Where("id = ?", r.UserID).First(&reqUser)
		database.Database.Db.Where("id = ?", r.CourseID).First(&course)
		result[i] = RequestWithDetails{
			CertificateRequest: r,
			UserName:           reqUser.Name,
			UserEmail:          reqUser.Email,
			CourseTitle:        course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending certificate requests fetched successfully!", fiber.Map{
		"requests": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// IssueCertificate issues a certificate, approving a pending request if one exists
func IssueCertificate(c *fiber.Ctx) error {
	instructorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedIssue").(*struct {
		UserID   uint `json:"user_id" validate:"required"`
		CourseID uint `json:"course_id" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	certificate, err := services.Default.IssueCertificate(instructorID, reqData.UserID, reqData.CourseID)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to issue certificate!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", certificate)
}

// RejectCertificateRequest rejects a pending certificate request
func RejectCertificateRequest(c *fiber.Ctx) error {
	instructorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedReject").(*struct {
		UserID   uint   `json:"user_id" validate:"required"`
		CourseID uint   `json:"course_id" validate:"required"`
		Reason   string `json:"reason" validate:"required,min=3"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	request, err := services.Default.RejectCertificateRequest(instructorID, reqData.UserID, reqData.CourseID, reqData.Reason)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to reject certificate request!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request rejected!", request)
}

// GetInstructorAnalytics returns rollups scoped to the instructor's courses
func GetInstructorAnalytics(c *fiber.Ctx) error {
	instructorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	scope := services.Scope{InstructorID: instructorID}

	enrollments, err := services.Default.EnrollmentsByMonth(scope)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to compute analytics!")
	}
	revenue, err := services.Default.RevenueByMonth(scope)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to compute analytics!")
	}
	topCourses, err := services.Default.TopCourses(scope, 10)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to compute analytics!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully!", fiber.Map{
		"enrollments_by_month": enrollments,
		"revenue_by_month":     revenue,
		"top_courses":          topCourses,
	})
}
