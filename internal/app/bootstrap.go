package app

import (
	"context"
	"fmt"
	"strings"

	"founder-match/internal/config"
	"founder-match/internal/delivery/http/handler"
	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/delivery/http/routes"
	v1 "founder-match/internal/delivery/http/routes/v1"
	useruc "founder-match/internal/usecase/user"
	"founder-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container and the HTTP app and starts the realtime hub.
// The returned cleanup stops the hub and closes every connection.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(cfg, c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Named("http")).Middleware())
	app.Use(middleware.Metrics())
	app.Use(middleware.NewErrorMiddleware(logger.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	checks := map[string]handler.Pinger{"postgres": c.DB}
	if c.Mongo != nil {
		checks["mongo"] = MongoPinger{Client: c.Mongo}
	}
	// the cache degrades to a no-op, so redis is reported but not required
	health := handler.NewHealthHandler(checks).WithOptional(map[string]handler.Pinger{"redis": c.Cache})

	h := v1.Handlers{
		Auth:           handler.NewAuthHandler(c.Auth),
		User:           handler.NewUserHandler(useruc.NewService(c.Users, c.Profile)),
		Profile:        handler.NewProfileHandler(c.Profile),
		Skill:          handler.NewSkillHandler(c.Skill),
		Match:          handler.NewMatchHandler(c.Generator, c.Query, c.Lifecycle),
		Notification:   handler.NewNotificationHandler(c.Notification),
		Message:        handler.NewMessageHandler(c.Message),
		Analytics:      handler.NewAnalyticsHandler(c.Analytics),
		AuthMiddleware: middleware.NewAuthMiddleware(c.JWT),
	}

	routes.NewRegistry(
		health,
		ws.NewHandler(c.Hub, c.JWT, c.Logger.Named("ws")),
		h,
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
