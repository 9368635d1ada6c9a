package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	authservice "github.com/ayursutra/clinic-api/internal/auth"
	"github.com/ayursutra/clinic-api/internal/config"
	"github.com/ayursutra/clinic-api/internal/dashboard"
	"github.com/ayursutra/clinic-api/internal/handler"
	appointmenthandler "github.com/ayursutra/clinic-api/internal/handler/appointment"
	authhandler "github.com/ayursutra/clinic-api/internal/handler/auth"
	patienthandler "github.com/ayursutra/clinic-api/internal/handler/patient"
	practitionerhandler "github.com/ayursutra/clinic-api/internal/handler/practitioner"
	resourcehandler "github.com/ayursutra/clinic-api/internal/handler/resource"
	treatmenthandler "github.com/ayursutra/clinic-api/internal/handler/treatment"
	"github.com/ayursutra/clinic-api/internal/middleware"
	"github.com/ayursutra/clinic-api/internal/notification"
	"github.com/ayursutra/clinic-api/internal/repository/postgres"
	"github.com/ayursutra/clinic-api/internal/router"
	"github.com/ayursutra/clinic-api/internal/scheduling"
	"github.com/ayursutra/clinic-api/pkg/auth"
	"github.com/ayursutra/clinic-api/pkg/lock"
	"github.com/ayursutra/clinic-api/pkg/logger"
)

const version = "1.0.0"

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	appointmentRepo := postgres.NewAppointmentRepository(db)
	userRepo := postgres.NewUserRepository(db)
	resourceRepo := postgres.NewResourceRepository(db)

	var locker lock.Locker
	if cfg.Redis.UseInMemory {
		locker = lock.NewLocalLocker()
		log.Warn("using in-memory calendar locks; run a single instance only")
	} else {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal(err, "failed to connect to redis")
		}
		defer redisClient.Close()

		lockTTL := cfg.Redis.LockTTL
		if lockTTL <= 0 {
			lockTTL = 10 * time.Second
		}
		locker = lock.NewRedisLocker(redisClient, lockTTL)
	}

	cacheTTL := cfg.Dashboard.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	refCache := gocache.New(cacheTTL, 2*cacheTTL)

	jwtExpiry := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	if jwtExpiry <= 0 {
		jwtExpiry = 24 * time.Hour
	}
	jwtService := auth.NewJWTService(cfg.JWT.Secret, jwtExpiry)

	var notifier scheduling.Notifier
	if mailer := notification.NewService(cfg.SMTP); mailer != nil {
		notifier = mailer
	}

	authSvc := authservice.NewService(userRepo, jwtService)
	scheduler := scheduling.NewService(appointmentRepo, userRepo, resourceRepo, locker, notifier, log)
	dashboards := dashboard.NewService(appointmentRepo, userRepo, resourceRepo, refCache)

	authMW := middleware.NewAuthMiddleware(authSvc)
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = int(cfg.RateLimit.RPS)
		}
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, burst)
	}

	engine := router.Setup(router.Handlers{
		System:       handler.NewSystemHandler(db, version),
		Auth:         authhandler.NewHandler(authSvc),
		Appointment:  appointmenthandler.NewHandler(scheduler),
		Practitioner: practitionerhandler.NewHandler(dashboards, userRepo),
		Patient:      patienthandler.NewHandler(scheduler, dashboards),
		Treatment:    treatmenthandler.NewHandler(),
		Resource:     resourcehandler.NewHandler(resourceRepo),
	}, router.Options{
		Log:            log,
		AuthMiddleware: authMW,
		RateLimiter:    limiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	go func() {
		log.Info("server starting", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
	log.Info("server stopped")
}
