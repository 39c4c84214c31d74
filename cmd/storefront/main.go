package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pasarikan/storefront/internal/backend"
	"github.com/pasarikan/storefront/internal/catalog"
	"github.com/pasarikan/storefront/internal/config"
	"github.com/pasarikan/storefront/internal/events"
	"github.com/pasarikan/storefront/internal/httpserver"
	"github.com/pasarikan/storefront/internal/logging"
	"github.com/pasarikan/storefront/internal/payment"
	"github.com/pasarikan/storefront/internal/session"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(logging.RequestLogger(logger))

	var store session.Store
	if cfg.RedisAddr != "" {
		store = session.NewRedisStore(cfg.RedisAddr)
		logger.Info("session store", "kind", "redis", "addr", cfg.RedisAddr)
	} else {
		store = session.NewMemoryStore()
		logger.Info("session store", "kind", "memory")
	}

	bus := events.NewBus()
	badges := events.NewBadgeCache(bus)
	defer badges.Close()

	httpserver.Register(e, &httpserver.Deps{
		Backend: backend.New(backend.Config{
			BaseURL:      cfg.BackendURL,
			AttachBearer: cfg.AttachBearer,
		}),
		Sessions: store,
		Cookies:  session.NewCodec(cfg.SessionSecret, false),
		Bus:      bus,
		Badges:   badges,
		Gateway:  &payment.Stub{Delay: cfg.PaymentDelay},
		Debounce: catalog.NewDebouncer(catalog.DebounceQuiet),
	})

	go func() {
		logger.Info("storefront listening", "addr", cfg.ListenAddr, "backend", cfg.BackendURL)
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
