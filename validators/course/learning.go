package courseValidator

import (
	"academy/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := paramID(c, "lesson_id", "lessonID"); err != nil {
			return err
		}
		return c.Next()
	}
}

func SubmitQuizAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := paramID(c, "quiz_id", "quizID"); err != nil {
			return err
		}

		reqData := new(struct {
			Score int `json:"score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Score < 0 || reqData.Score > 100 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"score": "Score must be between 0 and 100!",
			})
		}

		c.Locals("validatedQuizAttempt", reqData)
		return c.Next()
	}
}

func SubmitAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := paramID(c, "assignment_id", "assignmentID"); err != nil {
			return err
		}

		reqData := new(struct {
			Files []string `json:"files"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Files) == 0 {
			errors["files"] = "At least one file is required!"
		}
		for _, f := range reqData.Files {
			if strings.TrimSpace(f) == "" {
				errors["files"] = "File URLs must not be empty!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

func VerifyCertificateCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := strings.TrimSpace(c.Params("code"))
		if code == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification code is required!", nil)
		}

		c.Locals("verificationCode", code)
		return c.Next()
	}
}
