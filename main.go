package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aidanleach15-hash/shining-stars-sub000/handlers"
	"github.com/aidanleach15-hash/shining-stars-sub000/middleware"
	"github.com/aidanleach15-hash/shining-stars-sub000/models"
	"github.com/aidanleach15-hash/shining-stars-sub000/services"
	"github.com/aidanleach15-hash/shining-stars-sub000/utils"
	"github.com/aidanleach15-hash/shining-stars-sub000/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const liveSyncInterval = 30 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	teamName := os.Getenv("TEAM_NAME")
	if teamName == "" {
		teamName = "Shining Stars"
	}
	scoreboardURL := os.Getenv("SCOREBOARD_FEED_URL")
	if scoreboardURL == "" {
		log.Fatal("SCOREBOARD_FEED_URL environment variable not set")
	}
	leagueURL := os.Getenv("LEAGUE_FEED_URL")
	if leagueURL == "" {
		log.Fatal("LEAGUE_FEED_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserStats{},
		&models.Game{},
		&models.Prediction{},
		&models.LiveGame{},
		&models.Penalty{},
		&models.Standing{},
		&models.PlayerStat{},
		&models.RosterPlayer{},
		&models.MerchItem{},
		&models.Headline{},
		&models.Post{},
		&models.ChatMessage{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	// Optional cache: the app is fully functional without it.
	var cache *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL:", err)
		}
		cache = redis.NewClient(opt)
		log.Println("redis cache enabled")
	}

	// Optional media storage for merch/headline images.
	if os.Getenv("CLOUDFLARE_ACCOUNT_ID") != "" {
		if err := utils.InitMedia(); err != nil {
			log.Fatal("failed to initialize media storage:", err)
		}
		log.Println("media storage enabled")
	}

	scoreboard := workers.NewScoreboardClient(scoreboardURL, teamName)
	league := workers.NewLeagueClient(leagueURL, teamName)

	authService := services.NewAuthService(db, jwtSecret)
	predictionService := services.NewPredictionService(db)
	settlementService := services.NewSettlementService(db)
	leaderboardService := services.NewLeaderboardService(db, cache)
	liveGameService := services.NewLiveGameService(db, scoreboard, cache, teamName)
	contentService := services.NewContentService(db, league, settlementService)
	communityService := services.NewCommunityService(db)

	app := fiber.New()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Use(middleware.UserContextMiddleware(jwtSecret))

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupPredictionRoutes(app, predictionService, leaderboardService)
	handlers.SetupLiveRoutes(app, liveGameService)
	handlers.SetupContentRoutes(app, contentService)
	handlers.SetupCommunityRoutes(app, communityService)
	handlers.SetupAdminRoutes(app, contentService, settlementService, liveGameService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go workers.PollLiveGame(ctx, func(ctx context.Context) error {
		_, err := liveGameService.Sync(ctx)
		return err
	}, liveSyncInterval)

	services.StartScheduledJobs(settlementService, contentService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5100"
	}
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	log.Printf("server running on http://localhost:%s", port)
	log.Printf("live sync polling every %s for %s", liveSyncInterval, teamName)

	<-ctx.Done()
	log.Println("shutting down server...")
	_ = app.Shutdown()
}
