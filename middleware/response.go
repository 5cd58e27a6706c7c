package middleware

import (
	"errors"

	"academy/services"

	"github.com/gofiber/fiber/v2"
)

// ServiceError maps engine errors onto HTTP responses. Every error kind keeps
// its specific reason; only unknown errors collapse to the fallback message.
func ServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrEnrollmentNotFound):
		return JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	case errors.Is(err, services.ErrLessonNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	case errors.Is(err, services.ErrQuizNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	case errors.Is(err, services.ErrAssignmentNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	case errors.Is(err, services.ErrSubmissionNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	case errors.Is(err, services.ErrCertificateNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	case errors.Is(err, services.ErrRequestNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	case errors.Is(err, services.ErrCourseNotCompleted):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course first!", nil)
	case errors.Is(err, services.ErrAlreadyCertified):
		return JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", nil)
	case errors.Is(err, services.ErrAlreadyGraded):
		return JsonResponse(c, fiber.StatusConflict, false, "Submission already graded!", nil)
	case errors.Is(err, services.ErrRequestPending):
		return JsonResponse(c, fiber.StatusConflict, false, "Certificate request already pending!", nil)
	case errors.Is(err, services.ErrDuplicateSubmission):
		return JsonResponse(c, fiber.StatusConflict, false, "An ungraded submission already exists!", nil)
	case errors.Is(err, services.ErrAttemptLimitExceeded):
		return JsonResponse(c, fiber.StatusTooManyRequests, false, "Quiz attempt limit exceeded!", nil)
	case errors.Is(err, services.ErrInvalidScore):
		return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Score is out of range!", nil)
	case errors.Is(err, services.ErrUnavailable):
		return JsonResponse(c, fiber.StatusServiceUnavailable, false, "Service temporarily unavailable!", nil)
	default:
		return JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
	}
}
