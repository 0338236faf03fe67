package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airport-booking/skyport/internal/api"
	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/config"
	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db"
	"airport-booking/skyport/internal/jobs"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/metrics"
	"airport-booking/skyport/internal/routes"
	"airport-booking/skyport/internal/workers"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Skyport starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	gdb, sqlDB, err := openDatabase(cfg)
	if err != nil {
		logging.Fatal("Failed to open database", "error", err)
	}
	defer sqlDB.Close()

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(gdb); err != nil {
			logging.Fatal("Failed to migrate database", "error", err)
		}
		logging.Info("Database schema up to date")
	}

	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient, err = common.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logging.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisClient.Close()
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	deps := api.InitDependencies(cfg, gdb, sqlDB, redisClient, metricsReg)
	router := routes.RegisterRoutes(cfg, deps, prometheus.DefaultGatherer)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	inventory := jobs.NewSeatInventoryJob(deps.Services.Stats, metricsReg)
	g.Go(func() error {
		inventory.RunScheduled(gctx, cfg.SeatInventoryInterval)
		return nil
	})

	if deps.Services.OrderEvents != nil && cfg.OrderEventWorkers > 0 {
		hostname, _ := os.Hostname()
		worker := workers.NewOrderEventWorker(
			"orders-"+hostname,
			constants.OrderEventsConsumerName,
			deps.Services.OrderEvents,
			workers.NewSeatGaugeHandler(deps.Repo.Flights, deps.Repo.Tickets, inventory),
			metricsReg,
		)
		g.Go(func() error {
			return worker.Start(gctx, cfg.OrderEventWorkers)
		})
	}

	if err := g.Wait(); err != nil {
		logging.Error("Skyport stopped with error", "error", err)
		os.Exit(1)
	}
	logging.Info("Skyport stopped")
}

// openDatabase connects to Postgres when configured, otherwise to a local sqlite file
func openDatabase(cfg *config.Config) (*gorm.DB, *sqlx.DB, error) {
	if cfg.UsesPostgres() {
		sqlDB, err := db.InitPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		gdb, err := db.InitPostgresORM(cfg.PostgresDSN)
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		logging.Info("Connected to Postgres")
		return gdb, sqlDB, nil
	}

	gdb, err := db.InitSQLiteORM(fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000", cfg.SQLitePath))
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.SQLX(gdb)
	if err != nil {
		return nil, nil, err
	}
	logging.Warn("PG_DSN not set, using sqlite", "path", cfg.SQLitePath)
	return gdb, sqlDB, nil
}
