package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"webshop-demo/internal/cache"
	"webshop-demo/internal/client"
	"webshop-demo/internal/config"
	"webshop-demo/internal/repository"
	"webshop-demo/internal/server"
	"webshop-demo/internal/service"
	"webshop-demo/internal/session"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Log)

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("database init failed")
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	countCache := cache.NewCountCache()

	catalogSvc := service.NewCatalogService(productRepo, categoryRepo)
	authSvc := service.NewAuthService(userRepo)
	cartSvc := service.NewCartService(db, cartRepo, productRepo, countCache, cfg.Cache.CartCountTTL)
	paymentSvc := service.NewPaymentService(paymentRepo, log)
	checkoutSvc := service.NewCheckoutService(db, cartRepo, productRepo, orderRepo, paymentSvc, countCache)
	orderSvc := service.NewOrderService(orderRepo)

	sessions := session.NewManager(cfg.Session.Lifetime)

	srv, err := server.NewServer(log, sessions, cfg.HTTP.TemplatesDir,
		catalogSvc, authSvc, cartSvc, checkoutSvc, orderSvc)
	if err != nil {
		log.WithError(err).Fatal("server init failed")
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.WithField("addr", serverAddr).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.WithError(err).Fatal("HTTP server shutdown error")
	}
}

func newLogger(cfg config.Log) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}
