package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"github.com/PavaniTiago/cck-survey-api/internal/application/usecases"
	"github.com/PavaniTiago/cck-survey-api/internal/domain/repositories"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/cck-survey-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/cck-survey-api/internal/interfaces/http/middleware"
)

// Dependencies reúne o que as rotas precisam para atender a pesquisa
type Dependencies struct {
	Flow       *usecases.FlowUseCase
	Sessions   *cache.SessionStore
	SessionTTL time.Duration
	Sheets     handlers.SheetsChecker
	Archive    repositories.ResponseArchive
	Logger     *zap.Logger
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Add ETag support for efficient caching
	app.Use(etag.New())

	app.Use(middleware.RequestLogger(logger))

	h := handlers.NewHandlers(deps.Flow, deps.Sheets, deps.Sessions, deps.Archive, logger)

	// Routes
	groups := middleware.SetupRouteGroups(app, middleware.SurveySession(deps.Sessions, deps.Flow, deps.SessionTTL))

	// Health check
	groups.Public.Get("/health", h.Health.Health)
	groups.Public.Get("/health/sheets", h.Health.Sheets)

	// Survey routes
	groups.Survey.Get("/", h.Survey.GetPage)
	groups.Survey.Post("/consent", h.Survey.Consent)
	groups.Survey.Post("/start", h.Survey.Start)
	groups.Survey.Post("/evaluation", h.Survey.SubmitEvaluation)
	groups.Survey.Post("/demographics", h.Survey.SubmitDemographics)
	groups.Survey.Get("/export", h.Survey.Export)
	groups.Survey.Post("/reset", h.Survey.Reset)

	RegisterAdminRoutes(groups.Admin, h.Responses)
}
