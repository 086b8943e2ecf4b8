package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/brehanbank/promotion-service/internal/adapters/http/handler"
	"github.com/brehanbank/promotion-service/internal/core/notification"
	"github.com/brehanbank/promotion-service/internal/core/promotion"
	"github.com/brehanbank/promotion-service/internal/platform/config"
)

const defaultShutdownTimeout = 10 * time.Second

// Server は HTTP サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr      string
	shutdownTimeout time.Duration
	app             *fiber.App
}

// New は指定されたアドレスで待ち受ける HTTP サーバーを構築します。
func New(cfg config.ServerConfig, logger *zap.Logger, promotions promotion.UseCase, notifications notification.UseCase) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "promotion-service",
		DisableStartupMessage: true,
	})
	app.Use(requestLogger(logger))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	employeeHandler := handler.NewEmployeeHandler(promotions)
	notificationHandler := handler.NewNotificationHandler(notifications)

	api := app.Group("/api", handler.CallerMiddleware())
	api.Get("/employees", employeeHandler.List)
	api.Get("/employees/pending", employeeHandler.Pending)
	api.Get("/employees/:id", employeeHandler.Get)
	api.Put("/employees/:id/recommendation", employeeHandler.UpdateRecommendation)
	api.Get("/notifications", notificationHandler.List)
	api.Get("/notifications/unread-count", notificationHandler.UnreadCount)
	api.Post("/notifications/read-all", notificationHandler.MarkAllRead)
	api.Post("/notifications/:id/read", notificationHandler.MarkRead)

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &Server{
		listenAddr:      cfg.ListenAddr,
		shutdownTimeout: shutdownTimeout,
		app:             app,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると
// 処理中のリクエストを待ってから停止します。
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.listenAddr)
	}()

	select {
	case <-ctx.Done():
		if err := s.app.ShutdownWithTimeout(s.shutdownTimeout); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP on %s: %w", s.listenAddr, err)
		}
		return nil
	}
}

// App はルーティング済みの fiber.App を返します。テスト用です。
func (s *Server) App() *fiber.App {
	return s.app
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Info("request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return err
	}
}
