package questionValidator

import (
	questionController "github.com/Thedarik/Quations/controllers/question"
	"github.com/Thedarik/Quations/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateGroup validates the create-group payload.
func CreateGroup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(questionController.GroupCreate)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Group title is required (max 128 characters)!",
			})
		}

		c.Locals("validatedGroup", reqData)
		return c.Next()
	}
}

// CreateQuestion validates the multipart create-question payload: text, four
// non-empty answers and a correct-answer index between 1 and 4.
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(questionController.QuestionCreate)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "GroupTitle":
					errors["group_title"] = "Group title is required!"
				case "Text":
					errors["text"] = "Question text is required!"
				case "Answer1", "Answer2", "Answer3", "Answer4":
					errors["answers"] = "All four answers are required!"
				case "CorrectAnswer":
					errors["correct_answer"] = "Correct answer index must be between 1 and 4!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}
