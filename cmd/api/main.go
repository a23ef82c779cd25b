package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/rental_booking/internal/adapter/cache"
	"github.com/srgjo27/rental_booking/internal/adapter/consumer"
	"github.com/srgjo27/rental_booking/internal/adapter/handler"
	"github.com/srgjo27/rental_booking/internal/adapter/notifier"
	"github.com/srgjo27/rental_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/rental_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/ports"
	"github.com/srgjo27/rental_booking/internal/core/services"
	"github.com/srgjo27/rental_booking/internal/platform/clock"
	"github.com/srgjo27/rental_booking/internal/platform/config"
	"github.com/srgjo27/rental_booking/internal/platform/database"
	"github.com/srgjo27/rental_booking/internal/platform/mq"
	"github.com/srgjo27/rental_booking/internal/platform/obs"
)

type stores struct {
	vehicles     ports.VehicleRepository
	reservations ports.ReservationRepository
	invoices     ports.InvoiceRepository
	close        func()
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}

	st := openStores(ctx, cfg)
	defer st.close()

	var bookingNotifier ports.Notifier = notifier.NewLog()
	if cfg.RabbitURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer pub.Close()
		bookingNotifier = notifier.NewRabbitNotifier(pub)
	}

	sysClock := clock.System{}

	bookingService := services.NewBookingService(st.vehicles, st.reservations, bookingNotifier, sysClock, services.BookingConfig{
		Strategy:      cfg.Pricing,
		PendingTTL:    cfg.PendingTTL,
		SweepInterval: cfg.SweepInterval,
	})
	invoiceService := services.NewInvoiceService(st.reservations, st.invoices, sysClock)

	go bookingService.RunBackgroundCleanup(ctx)

	if cfg.RabbitURL != "" {
		cons, err := mq.NewConsumer(cfg.RabbitURL, cfg.PaymentExchange, cfg.PaymentQueue, []string{consumer.RKPaymentPaid})
		if err != nil {
			log.Fatalf("Failed to start payment consumer: %v", err)
		}
		defer cons.Close()

		go func() {
			log.Println("Payment consumer started (payment.paid)")
			if err := consumer.NewPaymentConsumer(bookingService, cons).Run(ctx); err != nil {
				log.Printf("Payment consumer stopped: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	handler.NewBookingHandler(bookingService, invoiceService).Register(mux)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s (pricing=%s)", cfg.HTTPAddr, cfg.Pricing)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Printf("Tracer shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func openStores(ctx context.Context, cfg config.App) stores {
	if cfg.Store == "memory" {
		log.Println("Using in-memory store; data is lost on exit.")
		return stores{
			vehicles:     memory.NewVehicleRepository(demoVehicles()...),
			reservations: memory.NewReservationRepository(),
			invoices:     memory.NewInvoiceRepository(),
			close:        func() {},
		}
	}

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		MaxConns: cfg.DBMaxConns,
	})
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	log.Printf("Connecting to Redis at %s...", cfg.RedisAddr())

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
		DB:   0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	return stores{
		vehicles:     cache.NewVehicleCache(postgres.NewVehicleRepository(db), redisClient, cfg.VehicleCacheTTL),
		reservations: postgres.NewReservationRepository(db),
		invoices:     postgres.NewInvoiceRepository(db),
		close: func() {
			_ = redisClient.Close()
			_ = db.Close()
		},
	}
}

func demoVehicles() []domain.Vehicle {
	return []domain.Vehicle{
		{ID: uuid.MustParse("0b6c8a3e-1f0e-4d7a-9b1e-3c5d7f9a1b20"), Name: "Honda Brio", RatePerHour: 400, RatePerDay: 3000, SecurityDeposit: 1500},
		{ID: uuid.MustParse("7e2d4f61-5a3b-4c8e-8d2f-6a1b3c5d7e90"), Name: "Toyota Avanza", RatePerHour: 500, RatePerDay: 5000, SecurityDeposit: 2000},
	}
}
