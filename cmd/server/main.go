package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbeisheim/chessdev-backend/internal/config"
	"github.com/benbeisheim/chessdev-backend/internal/controller"
	"github.com/benbeisheim/chessdev-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: len(cfg.AllowedOrigins) > 0,
	}))
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		logger.Debug("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		return err
	})

	// Initialize services
	sessions := service.NewSessionManager(cfg.MaxSessions, logger.Named("sessions"))
	gameService := service.NewGameService(sessions, logger.Named("game"), service.WithCPU(cfg.CPUSeed, cfg.CPUPromotion))

	// Initialize controllers
	sessionController := controller.NewSessionController(gameService, logger.Named("http"))
	wsController := controller.NewWebSocketController(gameService, logger.Named("ws"))
	controller.Register(app, sessionController, wsController, cfg.AllowedOrigins)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.SessionIdle > 0 {
		go sessions.RunReaper(ctx, cfg.SessionIdle, reapInterval(cfg.SessionIdle))
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		cancel()
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func reapInterval(idle time.Duration) time.Duration {
	if d := idle / 4; d > time.Second {
		return d
	}
	return time.Second
}
