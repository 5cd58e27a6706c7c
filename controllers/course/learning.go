package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/services"

	"github.com/gofiber/fiber/v2"
)

// CompleteLesson marks a lesson as completed for the current user. Marking
// the same lesson again returns the existing record unchanged.
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	completion, err := services.Default.RecordLessonComplete(userID, uint(lessonID))
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to mark lesson as completed!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", completion)
}

// SubmitQuizAttempt records a scored quiz attempt for the current user.
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	reqData, ok := c.Locals("validatedQuizAttempt").(*struct {
		Score int `json:"score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	attempt, err := services.Default.RecordQuizAttempt(userID, uint(quizID), reqData.Score)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to submit quiz attempt!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz attempt submitted!", fiber.Map{
		"attempt": attempt,
		"passed":  attempt.Passed,
	})
}

// SubmitAssignment files a pending assignment submission for grading.
func SubmitAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		Files []string `json:"files"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	submission, err := services.Default.RecordAssignmentSubmission(userID, uint(assignmentID), reqData.Files)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to submit assignment!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

// GetUserProgress gets the user's progress in a course
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	enrollment, err := services.Default.GetEnrollment(userID, uint(courseID))
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to fetch progress!")
	}

	progress, err := services.Default.ComputeProgress(userID, uint(courseID))
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to fetch progress!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"progress":   progress,
	})
}
