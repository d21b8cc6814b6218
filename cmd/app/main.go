package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbook/config"
	"github.com/Domenick1991/flightbook/internal/bootstrap"
	"github.com/Domenick1991/flightbook/internal/cache"
	"github.com/Domenick1991/flightbook/internal/kafka"
	"github.com/Domenick1991/flightbook/internal/logging"
	"github.com/Domenick1991/flightbook/internal/service/booking"
	"github.com/Domenick1991/flightbook/internal/service/customers"
	"github.com/Domenick1991/flightbook/internal/service/flights"
	"github.com/Domenick1991/flightbook/internal/storage"
	"github.com/Domenick1991/flightbook/internal/store"
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

	logger, err := logging.Init(cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway := storage.NewFileGateway(cfg.Data.Dir)
	snap, err := gateway.LoadAll(ctx)
	if err != nil {
		logger.Fatalw("load data files", "dir", cfg.Data.Dir, "error", err)
	}

	st := store.New()
	st.Restore(snap)
	logger.Infow("store loaded",
		"flights", len(snap.Flights), "customers", len(snap.Customers), "bookings", len(snap.Bookings))

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightService := flights.NewFlightService(st, gateway, redisCache,
		time.Duration(cfg.Cache.QuotesTTLSeconds)*time.Second, logger)
	customerService := customers.NewCustomerService(st, gateway, logger)
	bookingService := booking.NewBookingService(st, gateway, producer,
		cfg.Kafka.BookingTopic, logger,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic))

	if err := bootstrap.Run(ctx, cfg, flightService, customerService, bookingService); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}
