package routes

import (
	"flux-backend/src/controllers"
	"flux-backend/src/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups everything the routes are wired to. SubmitLimiter and
// ListGuard are optional.
type Handlers struct {
	Applications  *controllers.ApplicationController
	Auth          *controllers.AuthController
	Health        *controllers.HealthController
	SubmitLimiter fiber.Handler
	ListGuard     fiber.Handler
}

// NewApp builds the fiber app with the shared middleware stack and every route.
func NewApp(log *zap.Logger, allowedOrigins string, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "flux-backend",
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,HEAD,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	InitRoutes(app, h)
	return app
}

func InitRoutes(app *fiber.App, h Handlers) {
	ApplicationRoutes(app, h)
	AuthRoutes(app, h)

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/healthz", h.Health.Healthz)
	app.All("/", h.Health.Root)
}
