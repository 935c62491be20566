package main

import (
	"log"

	"github.com/Thedarik/Quations/config"
	"github.com/Thedarik/Quations/database"
	authRoutes "github.com/Thedarik/Quations/routers/authRoutes"
	questionRoutes "github.com/Thedarik/Quations/routers/questionRoutes"
	"github.com/Thedarik/Quations/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// setupApp builds the Fiber application with all middleware and routes.
func setupApp() *fiber.App {
	app := fiber.New()

	// Any uncaught failure becomes a 500 instead of killing the process
	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded question images
	app.Static("/uploads", "./"+config.AppConfig.UploadsDir)

	authRoutes.SetupAuthRoutes(app)
	questionRoutes.SetupQuestionRoutes(app)

	return app
}

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := setupApp()

	sweeper := utils.StartSweeper()
	defer sweeper.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
