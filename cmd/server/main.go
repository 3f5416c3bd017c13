package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"leadscan/internal/config"
	"leadscan/internal/handler"
	"leadscan/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(&cfg.Logging)

	logrus.Infof("LeadScan %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize clients; missing credentials mean the pipeline runs in a
	// degraded mode, which is called out loudly at startup.
	if !cfg.Serp.Enabled {
		logrus.Warn("SERPAPI_API_KEY is not set - platform search is disabled, every scan will fall back")
	}
	openaiClient := service.NewOpenAIClient(&cfg.OpenAI)
	if openaiClient.IsEnabled() {
		logrus.Infof("LLM client initialized (base: %s, model: %s)", cfg.OpenAI.APIBase, cfg.OpenAI.ChatModel)
	} else {
		logrus.Warn("OPENAI_API_KEY / DEEPSEEK_API_KEY is not set - classification is disabled, scans degrade to raw search hits")
	}

	// Initialize the scan pipeline
	serpClient := service.NewSerpClient(&cfg.Serp)
	searcher := service.NewFanoutSearcher(serpClient, &cfg.Scan, &cfg.Serp)
	prompts := service.NewPromptBuilder(cfg.Scan.TargetLanguage)
	classifier := service.NewClassifier(openaiClient, prompts)
	ranker := service.NewRanker(&cfg.Scan)
	fallback := service.NewFallbackController(&cfg.Scan)
	scanService := service.NewScanService(searcher, classifier, ranker, fallback)

	logrus.Infof("Scan pipeline initialized (min score: %d, fallback mode: %s)", cfg.Scan.MinScore, cfg.Scan.FallbackMode)

	// Initialize handlers
	scanHandler := handler.NewScanHandler(scanService)
	chatHandler := handler.NewChatHandler(openaiClient)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "leadscan",
			"version": Version,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	api := router.Group("/api")
	{
		api.POST("/scan", scanHandler.Scan)
		api.POST("/chat", chatHandler.Chat)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logrus.Infof("Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server")
}

func setupLogging(cfg *config.LoggingConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
