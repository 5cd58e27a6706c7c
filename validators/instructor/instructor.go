package instructorValidator

import (
	"academy/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func paramID(c *fiber.Ctx, param, localsKey string) error {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing "+param+"!", nil)
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
	}

	c.Locals(localsKey, id)
	return nil
}

func GradeSubmission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := paramID(c, "submission_id", "submissionID"); err != nil {
			return err
		}

		reqData := new(struct {
			Score    int    `json:"score" validate:"min=0"`
			Feedback string `json:"feedback"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"score": "Score must not be negative!",
			})
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}

func StudentPerformance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := paramID(c, "user_id", "targetUserID"); err != nil {
			return err
		}
		if err := paramID(c, "course_id", "courseID"); err != nil {
			return err
		}
		return c.Next()
	}
}

func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   uint `json:"user_id" validate:"required"`
			CourseID uint `json:"course_id" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "UserID":
					errors["user_id"] = "User ID is required!"
				case "CourseID":
					errors["course_id"] = "Course ID is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedIssue", reqData)
		return c.Next()
	}
}

func RejectCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   uint   `json:"user_id" validate:"required"`
			CourseID uint   `json:"course_id" validate:"required"`
			Reason   string `json:"reason" validate:"required,min=3"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "UserID":
					errors["user_id"] = "User ID is required!"
				case "CourseID":
					errors["course_id"] = "Course ID is required!"
				case "Reason":
					errors["reason"] = "A rejection reason of at least 3 characters is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReject", reqData)
		return c.Next()
	}
}

func CertificateList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page != nil && *reqData.Page < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{"page": "Page must be greater than 0!"})
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{"limit": "Limit must be greater than 0!"})
		}

		c.Locals("validatedCertificateQuery", reqData)
		return c.Next()
	}
}
