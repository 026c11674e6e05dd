package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/api"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/api/handler"
	custommw "github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/api/middleware"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/application"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/backend"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/config"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/pkg/logger"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/pkg/metrics"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/worker"
)

func main() {
	// .env があれば読み込む（本番では環境変数を直接設定する）
	_ = godotenv.Load()

	defer logger.Sync()

	cfg := config.Load()
	m := metrics.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// バックエンド解決（memory | postgres | redis）
	b, err := backend.Build(ctx, cfg)
	if err != nil {
		logger.Fatal("バックエンド初期化に失敗", zap.Error(err))
	}
	defer b.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := b.Migrate(migrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	// サービス層
	var cache application.AvailabilityCache
	if b.Cache != nil {
		cache = b.Cache
	}
	availabilityService := application.NewAvailabilityService(b.Bookings, b.Blocks, b.Boats, cache, m)
	bookingService := application.NewBookingService(b.TxManager, b.Bookings, b.Boats, availabilityService, b.Locks, cfg.Lock, m)
	blockService := application.NewBlockService(b.Blocks, b.Boats, availabilityService, b.Locks, cfg.Lock)
	boatService := application.NewBoatService(b.Boats)

	// HTTPサーバー
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	custommw.SetupMiddleware(e)
	e.Use(custommw.PrometheusMiddleware(m))

	registerRoutes(e, availabilityService, bookingService, blockService, boatService)

	// 完了予約ワーカー
	markerInterval := 5 * time.Minute
	if v := os.Getenv("COMPLETION_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			markerInterval = d
		}
	}
	marker := worker.NewCompletedBookingMarker(bookingService, markerInterval)
	go marker.Start(ctx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()
	logger.Info("サーバー起動", zap.String("port", cfg.Server.Port))

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("シャットダウン開始")

	cancel()
	marker.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("シャットダウン完了")
}

func registerRoutes(
	e *echo.Echo,
	availabilityService *application.AvailabilityService,
	bookingService *application.BookingService,
	blockService *application.BlockService,
	boatService *application.BoatService,
) {
	healthHandler := handler.NewHealthHandler()
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	blockHandler := handler.NewBlockHandler(blockService)
	boatHandler := handler.NewBoatHandler(boatService)

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommw.MetricsBasicAuth())

	v1 := e.Group("/api/v1")

	v1.POST("/boats", boatHandler.Create)
	v1.GET("/boats", boatHandler.ListMine)
	v1.GET("/boats/:boat_id", boatHandler.GetByID)

	v1.GET("/boats/:boat_id/availability/unavailable", availabilityHandler.ListUnavailable)
	v1.GET("/boats/:boat_id/availability/check", availabilityHandler.Check)

	v1.POST("/boats/:boat_id/blocks", blockHandler.Create)
	v1.GET("/boats/:boat_id/blocks", blockHandler.List)
	v1.DELETE("/boats/:boat_id/blocks/:block_id", blockHandler.Delete)

	v1.POST("/bookings", bookingHandler.Create)
	v1.GET("/bookings", bookingHandler.ListMine)
	v1.GET("/bookings/:id", bookingHandler.GetByID)
	v1.POST("/bookings/:id/cancel", bookingHandler.Cancel)
	v1.POST("/bookings/:id/reschedule", bookingHandler.Reschedule)
}
