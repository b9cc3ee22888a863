package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mserrat/tienda-api/internal/config"
	"github.com/mserrat/tienda-api/internal/events"
	"github.com/mserrat/tienda-api/internal/httpserver"
	"github.com/mserrat/tienda-api/internal/logging"
	"github.com/mserrat/tienda-api/internal/metrics"
	loggingmw "github.com/mserrat/tienda-api/internal/middleware/logging"
	"github.com/mserrat/tienda-api/internal/repo"
	"github.com/mserrat/tienda-api/internal/search"
	"github.com/mserrat/tienda-api/internal/seed"
	"github.com/mserrat/tienda-api/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	r := &repo.GormRepo{DB: db}

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	seeded, err := seed.Products(seedCtx, r, cfg.SeedPath)
	cancel()
	if err != nil {
		log.Printf("seed warning: %v", err)
	} else if len(seeded) > 0 {
		logger.Info("catalog seeded", "products", len(seeded))
	}

	var searchClient *search.Client
	if cfg.ESURL != "" {
		searchClient, err = search.New(cfg.ESURL, cfg.ESUser, cfg.ESPassword, "product")
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		if len(seeded) > 0 {
			idxCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := searchClient.IndexProducts(idxCtx, seeded); err != nil {
				logger.Warn("search index error", "error", err)
			}
			cancel()
		}
	}

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer([]string{cfg.KafkaAddress})
	}

	metricsCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	appMetrics, err := metrics.Init(metricsCtx, cfg.OTLPEndpoint)
	cancel()
	if err != nil {
		log.Fatalf("metrics init error: %v", err)
	}

	pricing := service.PricingPolicy{
		TaxRate:          cfg.TaxRate,
		ShippingFlatFee:  cfg.ShippingFlatFee,
		FreeShippingOver: cfg.FreeShippingOver,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:      &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret},
			Producer: producer,
			Metrics:  appMetrics,
		},
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc: &service.CatalogService{Repo: r, Search: searchClient},
		},
		CartHandler: &httpserver.CartHTTP{
			Svc:      &service.CartService{Repo: r, Pricing: pricing},
			Checkout: &service.CheckoutService{Repo: r, Pricing: pricing},
			Producer: producer,
			Metrics:  appMetrics,
		},
		PurchaseHandler: &httpserver.PurchaseHTTP{
			Svc: &service.PurchaseService{Repo: r},
		},
		JWTSecret: cfg.JWTSecret,
	})

	go func() {
		logger.Info("starting server", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}

	if err := appMetrics.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
