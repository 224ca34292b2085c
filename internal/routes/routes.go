package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskflow/taskflow-api/internal/handlers"
	"github.com/taskflow/taskflow-api/internal/middleware"
)

func Setup(app *fiber.App, jwtSecret string, auth *handlers.AuthHandler, goals *handlers.GoalHandler) {
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", auth.Register)
	authGroup.Post("/login", auth.Login)
	authGroup.Post("/refreshtoken", auth.RefreshToken)
	authGroup.Get("/verify", auth.Verify)
	authGroup.Post("/forgot-password", auth.ForgotPassword)
	authGroup.Post("/reset-password", auth.ResetPassword)

	protected := api.Group("/", middleware.Protected(jwtSecret))

	protected.Get("/me", auth.GetMe)
	protected.Post("/auth/change-password", auth.ChangePassword)

	goalsGroup := protected.Group("/goals")
	goalsGroup.Post("/", goals.CreateGoal)
	goalsGroup.Get("/", goals.GetGoalsByDate)
	goalsGroup.Put("/:goalId", goals.UpdateGoal)
	goalsGroup.Delete("/:goalId", goals.DeleteGoal)
	goalsGroup.Post("/:goalId/log", goals.LogStep)
}
