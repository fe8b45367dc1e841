package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/fleetops/config"
	"github.com/Domenick1991/fleetops/internal/bootstrap"
	"github.com/Domenick1991/fleetops/internal/cache"
	"github.com/Domenick1991/fleetops/internal/kafka"
	"github.com/Domenick1991/fleetops/internal/repository"
	"github.com/Domenick1991/fleetops/internal/service/airports"
	"github.com/Domenick1991/fleetops/internal/service/booking"
	"github.com/Domenick1991/fleetops/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Ledger.AirportsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	airportRepo := repository.NewAirportRepository(pool)
	fleetRepo := repository.NewFleetRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	balanceRepo := repository.NewBalanceRepository(pool)

	airportService := airports.NewAirportService(airportRepo, redisCache)
	flightService := flights.NewFlightService(
		fleetRepo,
		airportRepo,
		balanceRepo,
		flights.WithLedgerTopic(producer, cfg.Kafka.LedgerTopic),
	)
	bookingService := booking.NewBookingService(
		bookingRepo,
		airportRepo,
		fleetRepo,
		balanceRepo,
		producer,
		cfg.Kafka.LedgerTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, airportService, flightService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
