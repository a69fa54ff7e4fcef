package main

import (
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/paprooms/server/config"
	"github.com/paprooms/server/internal/auth"
	"github.com/paprooms/server/internal/handler"
	"github.com/paprooms/server/internal/middleware"
	"github.com/paprooms/server/internal/notifier"
	"github.com/paprooms/server/internal/repository"
	"github.com/paprooms/server/internal/service"
	"github.com/paprooms/server/pkg/database"
	"github.com/paprooms/server/pkg/gateway"
	"github.com/paprooms/server/pkg/mailer"
	"github.com/paprooms/server/pkg/rabbitmq"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Booking events: publisher feeds the notifier worker. Both are optional;
	// without a broker the booking flow runs with notifications skipped.
	var events notifier.Publisher
	if cfg.RabbitURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalw("failed to connect to RabbitMQ", "err", err)
		}
		defer publisher.Close()
		events = notifier.NewAMQPPublisher(publisher)

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalw("failed to connect to RabbitMQ", "err", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalw("failed to start consuming", "err", err)
		}

		mail := mailer.NewResend(cfg.ResendAPIKey, cfg.MailFrom, log)
		notifier.NewWorker(mail, log).Start(msgs)
	} else {
		log.Warn("RABBIT_URL missing; booking notifications disabled")
	}

	// Payment gateway: degraded mode without credentials, not a crash.
	var gw gateway.Gateway
	if cfg.PaymentsEnabled() {
		gw = gateway.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	} else {
		log.Warn("RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET missing; payments disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, 24*time.Hour)
	authSvc := service.NewAuthService(userRepo, tokens)
	catalogSvc := service.NewCatalogService(listingRepo, roomRepo)
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, listingRepo, userRepo, events, log)
	paymentSvc := service.NewPaymentService(paymentRepo, bookingRepo, gw, cfg.RazorpayKeySecret, events, log)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Infow("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "paprooms-server"})
	})

	requireAuth := middleware.RequireAuth(tokens, userRepo)
	optionalAuth := middleware.OptionalAuth(tokens, userRepo)

	handler.NewAuthHandler(authSvc).RegisterRoutes(e, requireAuth)
	handler.NewCatalogHandler(catalogSvc).RegisterRoutes(e, requireAuth)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e, requireAuth, optionalAuth)
	handler.NewPaymentHandler(paymentSvc).RegisterRoutes(e, optionalAuth)

	log.Infof("server starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
