package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/stay_booking/internal/adapter/handler"
	"github.com/srgjo27/stay_booking/internal/adapter/middleware"
	"github.com/srgjo27/stay_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/stay_booking/internal/core/services"
	"github.com/srgjo27/stay_booking/internal/platform/cache"
	"github.com/srgjo27/stay_booking/internal/platform/config"
	"github.com/srgjo27/stay_booking/internal/platform/database"
	"github.com/srgjo27/stay_booking/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log, logCloser, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		logrus.Fatalf("Failed to create logger: %v", err)
	}
	defer logCloser.Close()

	db, err := database.NewPostgresDB(database.Config{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		DBName:       cfg.DBName,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	}, log)
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db, log); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis is optional: without it availability is uncached and rate limits are per instance.
	var redisClient *redis.Client
	if client, err := cache.NewRedisClient(context.Background(), cache.Config{Addr: cfg.RedisAddr(), DB: cfg.RedisDB}, log); err != nil {
		log.WithError(err).Warn("running without redis")
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	transactor := postgres.NewTransactor(db)
	roomRepo := postgres.NewRoomRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	blockedRepo := postgres.NewBlockedDatesRepository(db)
	pricingRepo := postgres.NewPricingRepository(db)

	availabilityService := services.NewAvailabilityService(roomRepo, bookingRepo, blockedRepo, redisClient, cfg.AvailabilityCacheTTL, log)
	pricingService := services.NewPricingService(roomRepo, pricingRepo, log)
	bookingService := services.NewBookingService(transactor, roomRepo, bookingRepo, availabilityService, pricingService, log)

	bookingLimiter, err := middleware.RateLimit(cfg.BookingRateLimit, "create_booking", redisClient, log)
	if err != nil {
		log.Fatalf("Failed to create rate limiter: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.Router{
		Bookings:       handler.NewBookingHandler(bookingService, log),
		Rooms:          handler.NewRoomHandler(availabilityService, pricingService, log),
		BookingLimiter: bookingLimiter,
		Middleware: []gin.HandlerFunc{
			middleware.AccessLog(log),
			middleware.CORS(cfg.CORSOrigins),
		},
	}

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	if cfg.NoShowSweepInterval > 0 {
		go bookingService.RunNoShowSweeper(sweeperCtx, cfg.NoShowSweepInterval, cfg.NoShowGrace)
	}

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router.Engine(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down server")
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("server exiting")
}
