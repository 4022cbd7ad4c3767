package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskhive/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/auth/login", handlers.Auth.Login)
	r.POST("/auth/register", handlers.Auth.Register)

	// Protected routes
	r.GET("/profile", authMiddleware(handlers.Profile.GetProfile))

	r.GET("/tasks", authMiddleware(handlers.Task.List))
	r.POST("/tasks", authMiddleware(handlers.Task.Create))
	r.GET("/tasks/{id}", authMiddleware(handlers.Task.Get))
	r.PUT("/tasks/{id}", authMiddleware(handlers.Task.Update))
	r.DELETE("/tasks/{id}", authMiddleware(handlers.Task.Delete))

	return r
}
