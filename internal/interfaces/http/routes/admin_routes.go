package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PavaniTiago/cck-survey-api/internal/interfaces/http/handlers"
)

// RegisterAdminRoutes expõe o arquivo de respostas quando ele está habilitado
func RegisterAdminRoutes(router fiber.Router, responseHandler *handlers.ResponseHandler) {
	if responseHandler == nil {
		return
	}
	router.Get("/responses", responseHandler.GetResponses)
}
