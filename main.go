package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinevoice/config"
	"dinevoice/database"
	bookingRepo "dinevoice/database/repository/booking"
	"dinevoice/handlers"
	"dinevoice/middleware"
	"dinevoice/routes"
	"dinevoice/services/booking"
	"dinevoice/services/conversation"
	"dinevoice/services/speech"
	"dinevoice/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()

	// Voice sessions live in Redis unless REDIS_ADDR is blank.
	var redisClient *redis.Client
	var sessionStore conversation.SessionStore
	if cfg.RedisAddr != "" {
		redisClient = utils.GetSessionCacheClient()
		sessionStore = conversation.NewRedisSessionStore(redisClient, cfg.SessionTTL)
	} else {
		logger.Warn("REDIS_ADDR is empty, voice sessions are kept in memory")
		sessionStore = conversation.NewMemorySessionStore(cfg.SessionTTL)
	}

	// repositories.
	repo := bookingRepo.NewMongoBookingRepo(database.Database())
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	cancelIndex()

	// services.
	clock := utils.NewRealClock(cfg.Location())
	bookingService := booking.NewBookingService(repo, clock, logger)
	machine := conversation.NewMachine(clock, conversation.LocalSubmitter{Service: bookingService}, logger)
	host := conversation.NewHost(machine, sessionStore, clock, logger)

	var transcriber speech.Transcriber
	google, err := speech.NewGoogleTranscriber(context.Background(), cfg.GoogleServiceAccountFile, cfg.SpeechLanguage)
	switch {
	case err == nil:
		transcriber = google
		defer google.Close()
	case errors.Is(err, speech.ErrUnsupportedPlatform):
		logger.Warn("GOOGLE_SERVICE_ACCOUNT_FILE is empty, transcription is disabled")
	default:
		logger.Error("Speech client unavailable, transcription is disabled", zap.Error(err))
	}

	handlerBundle := &handlers.HandlerBundle{
		Bookings: handlers.NewBookingHandler(bookingService),
		Voice:    handlers.NewVoiceHandler(host, transcriber, cfg.SpeechLanguage),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins())

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 30*time.Second, redisClient, database.MongoClient)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Error("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
