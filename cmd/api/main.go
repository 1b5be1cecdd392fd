package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillswap/skillswap/internal/audio"
	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/handler"
	"github.com/skillswap/skillswap/internal/middleware"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/routes"
	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/ws"
	pkgcache "github.com/skillswap/skillswap/pkg/cache"
	"github.com/skillswap/skillswap/pkg/i18n"
	pkglogger "github.com/skillswap/skillswap/pkg/logger"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	dotenvFiles := config.LoadDotEnv(env)

	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := config.ConfigPath(env)
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	pkglogger.SetLevel(cfg.App.LogLevel)
	config.LogResolved(cfg)
	logger := pkglogger.GetLogger()

	locale := i18n.Locale(cfg.App.Locale)
	if locale != "" {
		i18n.SetDefault(locale)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	substrate, err := repository.OpenSubstrate(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.Storage.Driver, err)
	}
	defer func() {
		if err := substrate.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close storage")
		}
	}()
	middleware.SetStorageDriver(cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverMemory {
		pkglogger.Warn("memory storage selected, state is lost on exit")
	}

	stateRepo := repository.NewStateRepository(substrate.KV, pkglogger.WithComponent("state"))
	store := service.NewStore(stateRepo.Load(),
		service.WithOptions(service.Options{
			MinPasswordLength: cfg.Registration.MinPasswordLength,
			MaxImageBytes:     cfg.Registration.MaxImageBytes,
		}),
		service.WithLogger(pkglogger.WithComponent("store")),
	)

	// Commit subscribers
	hub := ws.NewHub(pkglogger.WithComponent("ws"))
	go hub.Run()

	mic := audio.NewStreamMicrophone(cfg.Audio.DefaultMIME)
	recorder := audio.NewRecorder(mic, store, cfg.Audio.MaxBytes, cfg.Audio.DefaultMIME, pkglogger.WithComponent("audio"))

	store.Subscribe(service.NewPersistenceSubscriber(stateRepo, pkglogger.WithComponent("persistence")))
	store.Subscribe(hub)
	store.Subscribe(recorder)
	store.Flush()

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				middleware.SetWSClients(hub.ClientCount())
			case <-ctx.Done():
				return
			}
		}
	}()

	descriptions := service.NewDescriptionService(cfg.GenAI, pkglogger.WithComponent("genai"))
	if !descriptions.Enabled() {
		pkglogger.Warn("GENAI API key not set, description drafts will use the fallback text")
	}
	if substrate.Redis != nil {
		descriptions.SetCache(pkgcache.NewService(substrate.Redis))
		pkglogger.Info("Description cache enabled")
	}

	// i18n Bundle
	bundle := i18n.NewBundle(i18n.Default())
	for l, msgs := range i18n.DefaultMessages() {
		bundle.LoadMessages(l, msgs)
	}
	if _, err := os.Stat("i18n"); err == nil {
		if err := bundle.LoadDir("i18n"); err != nil {
			pkglogger.Warn("i18n LoadDir failed: %v", err)
		}
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	origins := handler.ParseOrigins(cfg.Server.AllowOrigins)
	if len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "X-Request-ID"},
			AllowCredentials: true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Language"},
			MaxAge:           12 * time.Hour,
		}))
	}

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.I18n(bundle))
	router.Use(middleware.Session(store))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
			"storage": cfg.Storage.Driver,
			"time":    time.Now().Unix(),
		})
	})

	descriptionLimit := middleware.RateLimit(substrate.Redis, middleware.RateLimitConfig{
		RequestsPerMinute: cfg.GenAI.RequestsPerMinute,
		KeyPrefix:         "skillswap:ratelimit:description:",
	})
	routes.Setup(router, routes.Handlers{
		Auth:        handler.NewAuthHandler(store, cfg.Registration.MinPasswordLength),
		Navigation:  handler.NewNavigationHandler(store),
		Dashboard:   handler.NewDashboardHandler(store),
		Chat:        handler.NewChatHandler(store, recorder, mic, cfg.Audio.MaxBytes, cfg.Audio.DefaultMIME),
		Profile:     handler.NewProfileHandler(store),
		Description: handler.NewDescriptionHandler(descriptions),
		WS:          handler.NewWSHandler(hub, store, cfg.Server.AllowOrigins),

		DescriptionLimit: descriptionLimit,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		pkglogger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	pkglogger.Info("Shutting down...")

	recorder.Cancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkglogger.Error("server shutdown failed: %v", err)
	}
	hub.Stop()
}
