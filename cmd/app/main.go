package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdonin/skybooking/config"
	"github.com/avdonin/skybooking/internal/audit"
	"github.com/avdonin/skybooking/internal/bootstrap"
	"github.com/avdonin/skybooking/internal/cache"
	"github.com/avdonin/skybooking/internal/kafka"
	"github.com/avdonin/skybooking/internal/logger"
	"github.com/avdonin/skybooking/internal/repository"
	"github.com/avdonin/skybooking/internal/service/booking"
	"github.com/avdonin/skybooking/internal/service/flights"
	"github.com/avdonin/skybooking/internal/service/payments"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Path, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	txManager := repository.NewTxManager(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	auditor := audit.NewRecorder(auditRepo, zlog)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	paymentService := payments.NewPaymentService(transactionRepo)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		transactionRepo,
		txManager,
		redisCache,
		producer,
		auditor,
		zlog,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	handlers := bootstrap.NewHandlers(flightService, bookingService, paymentService, auditor)
	if err := bootstrap.Run(ctx, cfg, zlog, handlers); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
