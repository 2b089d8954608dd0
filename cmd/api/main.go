package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ariefcatur/go-storefront-api.git/internal/catalog"
	"github.com/ariefcatur/go-storefront-api.git/internal/config"
	"github.com/ariefcatur/go-storefront-api.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-storefront-api.git/internal/kafka"
	"github.com/ariefcatur/go-storefront-api.git/internal/metrics"
	"github.com/ariefcatur/go-storefront-api.git/internal/orders"
	"github.com/ariefcatur/go-storefront-api.git/internal/postgres"
	"github.com/ariefcatur/go-storefront-api.git/internal/redisx"
	"github.com/ariefcatur/go-storefront-api.git/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	log.SetFormatter(&log.JSONFormatter{})
	logger := log.WithField("service", cfg.ServiceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PGMaxConns)
	if err != nil {
		logger.WithError(err).Fatal("db connect")
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.WithError(err).Fatal("db schema")
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	prod.Start(ctx)

	// Engine, repos, handlers
	engine := orders.NewEngine(orders.NewPool(db), logger.WithField("component", "order-engine"))
	subMetrics := metrics.NewSubmissions()

	router := httpx.NewRouter()
	(&httpx.OrdersHandler{
		Engine:   engine,
		Repo:     &orders.Repo{DB: db},
		Producer: prod,
		Redis:    rdb,
		Metrics:  subMetrics,
		Service:  cfg.ServiceName,
		Log:      logger.WithField("component", "orders-http"),
	}).Register(router)
	(&httpx.ProductsHandler{
		Repo:  &catalog.Repo{DB: db},
		Redis: rdb,
		Log:   logger.WithField("component", "products-http"),
	}).Register(router)
	(&httpx.BrandsHandler{
		Repo: &catalog.Repo{DB: db},
		Log:  logger.WithField("component", "brands-http"),
	}).Register(router)
	(&httpx.UsersHandler{
		Repo: &users.Repo{DB: db},
		Log:  logger.WithField("component", "users-http"),
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // close inbox -> flush & close writer
	prod.WaitClosed() // drain
}
