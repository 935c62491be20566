package authRoutes

import (
	authControllers "github.com/Thedarik/Quations/controllers/auth"
	"github.com/Thedarik/Quations/middleware"
	authValidators "github.com/Thedarik/Quations/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Post("/register", authValidators.Credentials(), authControllers.Register)
	app.Post("/login", authValidators.Credentials(), authControllers.Login)
	app.Get("/users", middleware.JWTMiddleware, authControllers.UserList)
	app.Delete("/users/:username", middleware.JWTMiddleware, authControllers.DeleteUser)
	app.Delete("/users", middleware.JWTMiddleware, authControllers.DeleteAllUsers)
	app.Get("/health", authControllers.Health)
}
