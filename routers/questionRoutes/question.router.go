package questionRoutes

import (
	questionControllers "github.com/Thedarik/Quations/controllers/question"
	"github.com/Thedarik/Quations/middleware"
	questionValidators "github.com/Thedarik/Quations/validators/question"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestionRoutes(app *fiber.App) {
	app.Post("/groups", middleware.JWTMiddleware, questionValidators.CreateGroup(), questionControllers.CreateGroup)

	questionGroup := app.Group("/questions", middleware.JWTMiddleware)
	questionGroup.Post("/", questionValidators.CreateQuestion(), questionControllers.CreateQuestion)
	questionGroup.Get("/all", questionControllers.AllQuestions)
	questionGroup.Get("/test", questionControllers.TestQuestions)
	questionGroup.Get("/pdf", questionControllers.ExportPDF)
}
