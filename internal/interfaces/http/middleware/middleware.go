package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func SetupMiddlewares(app *fiber.App, allowOrigins string) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// CORS configuration
	// O cookie de sessão exige origens explícitas
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: allowOrigins != "*",
		MaxAge:           300, // 5 minutes
	}))
}

// RouteGroups define os grupos de rotas da API
type RouteGroups struct {
	Public fiber.Router
	Survey fiber.Router
	Admin  fiber.Router
}

// SetupRouteGroups configura os grupos de rotas com seus respectivos middlewares
func SetupRouteGroups(app *fiber.App, sessionMiddleware fiber.Handler) RouteGroups {
	// Grupo público (sem sessão)
	public := app.Group("/")

	// Grupo do respondente, com sessão por cookie
	survey := app.Group("/survey")
	survey.Use(sessionMiddleware)

	admin := app.Group("/admin")

	return RouteGroups{
		Public: public,
		Survey: survey,
		Admin:  admin,
	}
}
