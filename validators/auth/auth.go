package authValidator

import (
	authController "github.com/Thedarik/Quations/controllers/auth"
	"github.com/Thedarik/Quations/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Credentials validates the register/login payload (form or JSON) and passes
// the parsed struct to the controller via Locals.
func Credentials() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.Credentials)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Username":
					errors["username"] = "Username must be between 3 and 64 characters!"
				case "Password":
					errors["password"] = "Password must be between 6 and 128 characters!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCredentials", reqData)
		return c.Next()
	}
}
