package controller

import (
	"review-lifecycle-api/internal/auth"
	"review-lifecycle-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, tokens *auth.Tokens) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	handler.Use(requestLogger)

	api := handler.Group("/api", sessionMiddleware(tokens))
	newDiagnosticRoutesHandler(api, services)
	newReviewRoutesHandler(api, services, tokens)
	newContactRoutesHandler(api, services, validate)
	newAdminRoutesHandler(api.Group("/admin"), services, validate)
}
