package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"slidecraft/config"
	"slidecraft/controllers"
	"slidecraft/db"
	"slidecraft/internal/logger"
	"slidecraft/internal/ratelimit"
	"slidecraft/middlewares"
	"slidecraft/routes"
	"slidecraft/services"
	"slidecraft/utils"
	"slidecraft/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.DefaultPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	utils.SetJWTSecret(cfg.JWT.Secret, cfg.TokenExpiry())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Connect(ctx, cfg.Database.URI)
	if err != nil {
		appLog.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer store.Close(context.Background())
	appLog.Info("connected to MongoDB", "database", store.DatabaseName())

	orchestrator, closeProviders, err := services.NewOrchestrator(ctx, cfg, appLog)
	if err != nil {
		appLog.Fatal("failed to set up generation", "error", err)
	}
	defer closeProviders()

	var limiter *ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLog.Fatal("failed to connect to Redis", "addr", cfg.Redis.Addr, "error", err)
		}
		defer rdb.Close()
		limiter = ratelimit.New(rdb, "generate", cfg.Generation.MaxPerWindow, cfg.RateWindow())
	} else {
		appLog.Warn("redis.addr not set; generation requests are not rate limited")
	}

	storage, err := services.NewImageStorage(ctx, cfg)
	if err != nil {
		appLog.Fatal("failed to set up upload storage", "driver", cfg.Uploads.Driver, "error", err)
	}

	hub := websocket.NewHub(appLog)
	deckService := services.NewDeckService(store, orchestrator, limiter, hub, appLog)

	router := setupRouter(cfg, appLog, routerDeps{
		auth:    controllers.NewAuthController(store, appLog),
		decks:   controllers.NewDeckController(deckService, appLog),
		uploads: controllers.NewUploadController(services.NewUploadService(storage), appLog),
		hub:     hub,
	})

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: router,
	}
	go func() {
		appLog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("graceful shutdown failed", "error", err)
	}
}

type routerDeps struct {
	auth    *controllers.AuthController
	decks   *controllers.DeckController
	uploads *controllers.UploadController
	hub     *websocket.Hub
}

func setupRouter(cfg *config.Config, appLog *logger.Logger, deps routerDeps) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger(appLog))
	router.MaxMultipartMemory = 8 << 20

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.Uploads.Driver != "s3" {
		router.Static(cfg.Uploads.PublicPrefix, cfg.Uploads.Dir)
	}

	api := router.Group("/api")
	routes.SetupAuthRoutes(api, deps.auth)

	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		routes.SetupDeckRoutes(auth, deps.decks)
		routes.SetupUploadRoutes(auth, deps.uploads)
	}

	router.GET("/ws/generation", deps.hub.ProgressHandler)
	return router
}
