package http

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/config"
	"github.com/travel-ledger/internal/delivery/http/handler"
	"github.com/travel-ledger/internal/delivery/http/middleware"
	"github.com/travel-ledger/internal/pkg/errors"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	healthHandler  *handler.HealthHandler
	stampHandler   *handler.StampHandler
	geocodeHandler *handler.GeocodeHandler
	ledgerHandler  *handler.LedgerHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthHandler *handler.HealthHandler,
	stampHandler *handler.StampHandler,
	geocodeHandler *handler.GeocodeHandler,
	ledgerHandler *handler.LedgerHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Travel Ledger",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    8 * 1024 * 1024,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		healthHandler:  healthHandler,
		stampHandler:   stampHandler,
		geocodeHandler: geocodeHandler,
		ledgerHandler:  ledgerHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App возвращает fiber приложение (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.CORSOriginList()))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Stamps
	stamps := api.Group("/stamps")
	stamps.Get("/", s.stampHandler.List)
	stamps.Post("/", s.stampHandler.Create)
	stamps.Get("/:id", s.stampHandler.Get)
	stamps.Put("/:id", s.stampHandler.Update)
	stamps.Delete("/:id", s.stampHandler.Delete)
	stamps.Delete("/:id/image", s.stampHandler.RedactImage)

	// Geocode
	api.Post("/geocode/reverse", s.geocodeHandler.Reverse)

	// Ledger views
	ledger := api.Group("/ledger")
	ledger.Get("/summary", s.ledgerHandler.Summary)
	ledger.Get("/hubs", s.ledgerHandler.Hubs)
	ledger.Get("/passport", s.ledgerHandler.Passport)
	ledger.Get("/route", s.ledgerHandler.Route)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			appErr = errors.New(httpErrorCode(code), e.Message, code)
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": appErr,
		})
	}
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
