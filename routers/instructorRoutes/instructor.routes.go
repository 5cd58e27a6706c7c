package instructorRoutes

import (
	controllers "academy/controllers/instructor"
	"academy/middleware"
	"academy/models"
	validators "academy/validators/instructor"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up grading, review and analytics routes
func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleInstructor, models.RoleAdmin),
	)

	// Assignment grading
	instructorGroup.Get("/submissions/pending", controllers.GetPendingSubmissions)
	instructorGroup.Post("/submission/:submission_id/grade", validators.GradeSubmission(), controllers.GradeSubmission)

	// Certificate review
	instructorGroup.Get("/student/:user_id/course/:course_id/summary", validators.StudentPerformance(), controllers.GetStudentPerformance)
	instructorGroup.Get("/certificates/pending", validators.CertificateList(), controllers.GetPendingCertificateRequests)
	instructorGroup.Post("/certificate/issue", validators.IssueCertificate(), controllers.IssueCertificate)
	instructorGroup.Post("/certificate/reject", validators.RejectCertificate(), controllers.RejectCertificateRequest)

	// Scoped analytics
	instructorGroup.Get("/analytics", controllers.GetInstructorAnalytics)
}
