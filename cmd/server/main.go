package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/invoice-dashboard/internal/cache"
	"github.com/iliyamo/invoice-dashboard/internal/config"
	"github.com/iliyamo/invoice-dashboard/internal/database"
	"github.com/iliyamo/invoice-dashboard/internal/handler"
	"github.com/iliyamo/invoice-dashboard/internal/middleware"
	"github.com/iliyamo/invoice-dashboard/internal/queue"
	"github.com/iliyamo/invoice-dashboard/internal/repository"
	"github.com/iliyamo/invoice-dashboard/internal/router"
	"github.com/iliyamo/invoice-dashboard/internal/service"
	"github.com/iliyamo/invoice-dashboard/internal/utils"
	"github.com/iliyamo/invoice-dashboard/internal/validation"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load() // Load environment config
	log := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := database.Params{User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName}
	if cfg.MigrateOnStart {
		if err := database.RunMigrations(params); err != nil {
			return err
		}
		log.Info("migrations applied")
	}
	db, err := database.Open(params)
	if err != nil {
		return err
	}
	defer db.Close()

	// Redis is optional: without it the view cache and the login limiter
	// are pass-through.
	var rdb *redis.Client
	var views *cache.ViewStore
	cacheCfg := config.LoadCacheConfig()
	if client, err := config.NewRedisClient(config.LoadRedisConfig()); err != nil {
		log.WithError(err).Warn("redis unavailable; view cache and rate limiting disabled")
	} else {
		rdb = client
		defer rdb.Close()
		if cacheCfg.Enabled {
			views = cache.NewViewStore(rdb, cacheCfg.Prefix, cacheCfg.TTL, log)
		}
	}

	invalidators := service.Invalidators{}
	if views != nil {
		invalidators = append(invalidators, views)
	}
	queueCfg := config.LoadQueueConfig()
	if queueCfg.Enabled {
		origin := uuid.NewString()
		invalidators = append(invalidators, queue.NewPublisher(queueCfg.URL, queueCfg.Exchange, origin, log))
		if views != nil {
			go func() {
				err := queue.StartViewConsumer(ctx, queueCfg.URL, queueCfg.Exchange, origin, views, log)
				if err != nil && !errors.Is(err, context.Canceled) {
					log.WithError(err).Warn("view consumer stopped")
				}
			}()
		}
	}

	invoices := repository.NewInvoiceRepo(db, log)
	customers := repository.NewCustomerRepo(db, log)
	dashboard := repository.NewDashboardRepo(db, log)
	users := repository.NewUserRepo(db, log)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Validator = validation.EchoValidator{}
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	router.RegisterRoutes(e)
	router.RegisterAuth(e,
		handler.NewAuthHandler(service.NewAuthService(users, cfg.JWTSecret, cfg.SessionTTLMin, log), cfg.Env != "dev"),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
	)
	router.RegisterDashboard(e, router.DashboardHandlers{
		Dashboard: handler.NewDashboardHandler(dashboard, invoices),
		Invoices:  handler.NewInvoiceHandler(invoices, customers, service.NewInvoiceService(invoices, invalidators, log)),
		Customers: handler.NewCustomerHandler(customers),
	}, middleware.SessionAuth(cfg.JWTSecret), middleware.ViewCache(views, cacheCfg.MaxBodyBytes, log))

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
