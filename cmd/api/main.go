package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/luckyorbit/leaderboard-backend/api/routes"
	"github.com/luckyorbit/leaderboard-backend/internal/config"
	"github.com/luckyorbit/leaderboard-backend/internal/gateway"
	"github.com/luckyorbit/leaderboard-backend/internal/handlers"
	"github.com/luckyorbit/leaderboard-backend/internal/poller"
	"github.com/luckyorbit/leaderboard-backend/internal/repositories"
	mongorepo "github.com/luckyorbit/leaderboard-backend/internal/repositories/mongodb"
	"github.com/luckyorbit/leaderboard-backend/internal/services"
	"github.com/luckyorbit/leaderboard-backend/pkg/feedapi"
	"github.com/luckyorbit/leaderboard-backend/pkg/mongodb"
)

func main() {
	// Load .env if present; real deployments use environment variables
	_ = godotenv.Load(config.GetEnv("ENV_FILE", ".env"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.GetEnvAsBool("GIN_RELEASE", false) {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize repositories
	var settingsRepo repositories.SettingsRepository = mongorepo.NewSettingsRepository(db)
	var prizeRepo repositories.PrizeRepository = mongorepo.NewPrizeRepository(db)
	var targetRepo repositories.ResetTargetRepository = mongorepo.NewResetTargetRepository(db)

	clock := clockwork.NewRealClock()
	feed := feedapi.NewClient(cfg.Feed.Source, cfg.Feed.URL, cfg.Feed.Path)

	// Initialize services
	leaderboardService := services.NewLeaderboardService(feed, prizeRepo, cfg.Leaderboard.RankingKey, clock)
	settingsService := services.NewSettingsService(settingsRepo, prizeRepo)

	var policy services.TargetPolicy
	switch cfg.Countdown.Policy {
	case services.PolicyRolling:
		policy = services.NewRollingWindowPolicy(targetRepo)
	case services.PolicyExternal:
		policy = services.NewExternalAuthorityPolicy(settingsRepo)
	default:
		policy, err = services.NewMonthlyBoundaryPolicy(cfg.Countdown.Timezone)
		if err != nil {
			log.Fatalf("Failed to load countdown timezone %q: %v", cfg.Countdown.Timezone, err)
		}
	}
	countdownService := services.NewCountdownService(policy, clock, cfg.Countdown.ZoneLabel)

	// Initialize handlers and the push hub
	hub := gateway.NewHub()
	handlerDeps := routes.HandlerDependencies{
		LeaderboardHandler: handlers.NewLeaderboardHandler(leaderboardService),
		CountdownHandler:   handlers.NewCountdownHandler(countdownService),
		SettingsHandler:    handlers.NewSettingsHandler(settingsService),
		Hub:                hub,
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	// Start the background loops
	pollCtx, stopPolling := context.WithCancel(context.Background())
	defer stopPolling()
	poller.New(leaderboardService, countdownService, hub, clock).Start(pollCtx)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	stopPolling()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
