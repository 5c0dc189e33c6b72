package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicehub/config"
	"servicehub/cron"
	"servicehub/database"
	"servicehub/database/gateway"
	"servicehub/events"
	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/routes"
	"servicehub/services/booking"
	"servicehub/services/notification"
	"servicehub/services/user"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Persistence gateway.
	var gw gateway.Gateway
	var mongoClient *mongo.Client
	switch config.AppConfig.GatewayDriver {
	case "memory":
		logger.Warn("main: using in-memory gateway, data is lost on restart")
		gw = gateway.NewMemoryGateway()
	default:
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		mongoClient = database.MongoClient
		gw = gateway.NewMongoGateway(database.Database(), logger.Named("gateway"))
	}

	// Booking events.
	var publisher events.Publisher = events.NopPublisher{}
	if config.AppConfig.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(config.AppConfig.AMQPURL, config.AppConfig.AMQPExchange)
		if err != nil {
			logger.Fatal("main: failed to connect to RabbitMQ", zap.Error(err))
		}
		defer amqpPub.Close()
		publisher = amqpPub
	}

	// services.
	engine := &booking.Engine{
		Gateway:   gw,
		Publisher: publisher,
		Logger:    logger.Named("booking"),
		Timeout:   config.AppConfig.GatewayTimeout,
	}
	userService := user.NewDefaultUserService(gw, config.AppConfig.TokenTTL, logger.Named("user"))

	cacheClient, err := utils.GetCacheClient()
	if err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}
	defer utils.CloseCache()

	poller := notification.NewPoller(engine, userService, notification.NewRedisSeenStore(cacheClient), logger.Named("poller"))
	worker, err := cron.StartPollWorker(poller, config.AppConfig.PollInterval, logger.Named("cron"))
	if err != nil {
		logger.Fatal("main: failed to start poll worker", zap.Error(err))
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, time.Minute, cacheClient, mongoClient)

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxyList()); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewUserHandler(userService),
		handlers.NewProviderHandler(userService, poller),
		handlers.NewBookingHandler(engine, userService),
		handlers.NewAdminHandler(engine),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
