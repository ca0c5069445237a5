/**
 * @description
 * This is the main entry point for the anti-fraud service. It is responsible
 * for initializing all components of the service, including configuration,
 * database connection and migrations, the message broker producer and
 * consumer, the accumulator store, the core checker, and the HTTP server.
 * It wires everything together and starts the service.
 *
 * @dependencies
 * - log, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/jackc/pgx/v5: PostgreSQL driver.
 * - golang.org/x/sync/errgroup: Supervises the HTTP server lifecycle.
 * - internal/api, internal/app, internal/config, internal/store: Internal packages for the service.
 * - pkg/rabbitmq: Client for RabbitMQ.
 */

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/velopay/antifraud-service/internal/api"
	"github.com/velopay/antifraud-service/internal/app"
	"github.com/velopay/antifraud-service/internal/config"
	"github.com/velopay/antifraud-service/internal/store"
	"github.com/velopay/antifraud-service/pkg/rabbitmq"
)

func main() {
	// Load a local .env file when present; environment variables win.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}

	log.Printf("level=info component=bootstrap msg=\"starting antifraud-service\" port=%s", cfg.ServerPort)

	// Apply schema migrations before opening the pool.
	if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"migrations failed\" err=%v", err)
	}
	log.Println("level=info component=bootstrap msg=\"migrations applied\"")

	// Establish a connection pool to the PostgreSQL database.
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database url parse failed\" err=%v", err)
	}

	poolConfig.MaxConns = 20
	poolConfig.MinConns = 4
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	// Monetary columns are NUMERIC; register the decimal codec on every
	// connection so they scan into decimal.Decimal without casts.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	dbpool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database connection failed\" err=%v", err)
	}
	defer dbpool.Close()
	log.Println("level=info component=bootstrap msg=\"database connected\"")

	// Initialize the RabbitMQ producer to publish validation results.
	producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL, cfg.EventsExchange)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"rabbitmq producer init failed\" err=%v", err)
	}
	defer producer.Close()
	log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")

	// Initialize the data access layer and the core checker.
	accumulators := store.NewPostgresAccumulatorStore(dbpool)
	checker := app.NewChecker(accumulators, app.NewAMQPResultPublisher(producer))
	transactionConsumer := app.NewTransactionCreatedConsumer(checker, time.Duration(cfg.ConsumerTimeoutSeconds)*time.Second)

	// Wire up the consumer for transaction created events.
	rabbitConsumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"rabbitmq consumer init failed\" err=%v", err)
	}
	defer rabbitConsumer.Close()

	bindings := map[string]func([]byte) bool{
		"transaction.created": transactionConsumer.HandleMessage,
	}
	if err := rabbitConsumer.ConsumeWithBindings(cfg.EventsExchange, cfg.TransactionCreatedQueue, bindings); err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"transaction consumer start failed\" err=%v", err)
	}
	log.Printf("level=info component=bootstrap msg=\"consuming transaction events\" queue=%s", cfg.TransactionCreatedQueue)

	// Start the HTTP server for health checks and daily-total reads.
	handlers := api.NewHandlers(accumulators)
	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: api.Routes(handlers),
	}
	log.Printf("level=info component=http msg=\"server listening\" addr=%s", serverAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("level=info component=http msg=\"shutdown started\"")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", err)
	}

	log.Println("level=info component=http msg=\"shutdown complete\"")
}
