package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appcustomer "github.com/softhouse/customers/internal/application/customer"
	"github.com/softhouse/customers/internal/domain/customer"
	"github.com/softhouse/customers/internal/infrastructure/cache"
	"github.com/softhouse/customers/internal/infrastructure/config"
	"github.com/softhouse/customers/internal/infrastructure/logger"
	"github.com/softhouse/customers/internal/infrastructure/lookup"
	"github.com/softhouse/customers/internal/infrastructure/persistence"
	"github.com/softhouse/customers/internal/interfaces/http/dto"
	"github.com/softhouse/customers/internal/interfaces/http/handler"
	"github.com/softhouse/customers/internal/interfaces/http/middleware"
	"github.com/softhouse/customers/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting customers API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Address cache tier: Redis when enabled, in-process otherwise.
	// A Redis connection failure degrades to the in-process cache.
	var addressCache appcustomer.AddressCache
	var cachePinger handler.Pinger
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisAddressCache(&cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory address cache", zap.Error(err))
			addressCache = cache.NewMemoryAddressCache()
		} else {
			defer func() {
				_ = redisCache.Close()
			}()
			addressCache = redisCache
			cachePinger = redisCache
			log.Info("Redis address cache connected", zap.String("addr", cfg.Redis.Addr()))
		}
	} else {
		addressCache = cache.NewMemoryAddressCache()
	}

	var postalLookup customer.PostalLookup
	switch cfg.Lookup.Provider {
	case "stub":
		postalLookup = lookup.NewStubLookup()
		log.Warn("Using stub postal lookup provider")
	default:
		postalLookup = lookup.NewViaCEPClient(&cfg.Lookup)
	}

	customerRepo := persistence.NewGormCustomerRepository(db)
	addressRepo := persistence.NewGormAddressRepository(db)

	resolver := appcustomer.NewAddressResolver(addressRepo, postalLookup, addressCache, log)
	customerService := appcustomer.NewCustomerService(customerRepo, resolver, db, log)

	customerHandler := handler.NewCustomerHandler(customerService)
	healthHandler := handler.NewHealthHandler(db, cachePinger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(&cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.NoRoute(unknownResource)
	engine.NoMethod(unknownResource)

	r := router.NewRouter(engine)
	r.Register(customerHandler)
	r.Register(healthHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// unknownResource answers requests for paths or methods the API does
// not expose with a resource-not-found envelope
func unknownResource(c *gin.Context) {
	detail := fmt.Sprintf("The resource %s does not exist. Please check and try again.", c.Request.URL.Path)
	c.JSON(http.StatusNotFound, dto.NewOccurrence(dto.KindResourceNotFound, detail, detail))
}
