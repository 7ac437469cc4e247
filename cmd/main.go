package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/internal/cart"
	"github.com/Ahsankhan2345/shopping-hify/internal/catalog"
	"github.com/Ahsankhan2345/shopping-hify/internal/checkout"
	"github.com/Ahsankhan2345/shopping-hify/internal/events"
	"github.com/Ahsankhan2345/shopping-hify/internal/handler"
	"github.com/Ahsankhan2345/shopping-hify/internal/repository"
	"github.com/Ahsankhan2345/shopping-hify/internal/session"
	"github.com/Ahsankhan2345/shopping-hify/pkg/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("catalog_base_url", cfg.CatalogBaseURL),
		zap.Bool("durable_store", cfg.StoreTableName != ""),
		zap.Bool("events_enabled", cfg.KafkaBrokers != ""))

	// Persistence: DynamoDB when a table is configured, in-memory otherwise.
	// A non-remembered session always lives in the ephemeral store.
	var (
		users           session.UserStore
		durableSessions session.SessionStore
	)
	if cfg.StoreTableName != "" {
		dynamoClient, err := repository.NewDynamoDBClient(context.Background(), cfg)
		if err != nil {
			log.Fatal("Failed to create DynamoDB client:", err)
		}
		users = repository.NewUserRepository(dynamoClient, cfg.StoreTableName)
		durableSessions = repository.NewSessionRepository(dynamoClient, cfg.StoreTableName)
	} else {
		users = repository.NewMemoryUserStore()
		durableSessions = repository.NewMemorySessionStore()
	}
	ephemeralSessions := repository.NewMemorySessionStore()

	var producer *events.Producer
	if cfg.KafkaBrokers != "" {
		producer = events.NewProducer(cfg.KafkaBrokers, logger)
		defer producer.Close()
	}

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.CurrencyRate)
	catalogCache := catalog.NewCache(catalogClient, logger)

	cartStore := cart.NewStore(logger)
	checkoutService := checkout.NewService(cartStore, producer, logger)

	tokens := session.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)
	sessionService := session.NewService(users, durableSessions, ephemeralSessions, tokens, logger)

	router := handler.NewRouter(
		handler.NewProductHandler(catalogCache, logger),
		handler.NewCartHandler(cartStore, catalogCache, logger),
		handler.NewCheckoutHandler(checkoutService, logger),
		handler.NewAuthHandler(sessionService, logger),
		logger,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
