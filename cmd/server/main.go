package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/brehanbank/promotion-service/internal/adapters/repository/postgres"
	"github.com/brehanbank/promotion-service/internal/core/notification"
	"github.com/brehanbank/promotion-service/internal/core/promotion"
	"github.com/brehanbank/promotion-service/internal/platform/config"
	pg "github.com/brehanbank/promotion-service/internal/platform/db/postgres"
	"github.com/brehanbank/promotion-service/internal/platform/logger"
	"github.com/brehanbank/promotion-service/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)

	notificationSvc := notification.NewService(notificationRepo, nil)
	promotionSvc := promotion.NewService(employeeRepo, notificationSvc, nil, txManager, zapLogger)

	httpServer := server.New(cfg.Server, zapLogger, promotionSvc, notificationSvc)

	zapLogger.Info("HTTP server listening", zap.String("addr", cfg.Server.ListenAddr))

	if err := httpServer.Run(ctx); err != nil {
		zapLogger.Fatal("server stopped with error", zap.Error(err))
	}
}
