// Package api wires the HTTP surface together and starts the server.
package api

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/louenes/lectura/internal/auth"
	"github.com/louenes/lectura/internal/conversation"
	"github.com/louenes/lectura/internal/providers/answer"
	"github.com/louenes/lectura/internal/providers/supadata"
	"github.com/louenes/lectura/internal/stores/conversations"
	"github.com/louenes/lectura/pkg/utils"

	conversations_module "github.com/louenes/lectura/internal/api/modules/conversations"
	health_module "github.com/louenes/lectura/internal/api/modules/health"
	transcribe_module "github.com/louenes/lectura/internal/api/modules/transcribe"
)

func Start(cfg *utils.Config) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	// Create MySQL config
	dbConfig := mysql.Config{
		User:      cfg.Get("MYSQL_USER"),
		Passwd:    cfg.Get("MYSQL_ROOT_PASSWORD"),
		Net:       "tcp",
		Addr:      fmt.Sprintf("%s:%s", cfg.Get("MYSQL_HOST"), cfg.Get("MYSQL_PORT")),
		DBName:    cfg.Get("MYSQL_DATABASE"),
		ParseTime: true,
	}

	// Initialize the conversation store
	store, err := conversations.NewStore(dbConfig.FormatDSN(), logger)
	if err != nil {
		logger.Fatal("failed to initialize conversation store", zap.Error(err))
	}
	defer store.Close()

	// Initialize the external provider gateways
	transcripts := supadata.NewClient(cfg.Get("SUPADATA_BASE_URL"), cfg.Get("SUPADATA_API_KEY"), logger)

	settings, err := answer.LoadSettings(cfg.Get("ANSWER_SETTINGS_FILE"))
	if err != nil {
		logger.Fatal("failed to load answer settings", zap.Error(err))
	}
	answers := answer.NewClient(cfg.Get("OPENAI_API_KEY"), settings, logger)

	// Create the Q&A orchestrator from the injected collaborators
	orchestrator := conversation.NewOrchestrator(store, transcripts, answers, logger)

	// Create the access-token validator
	validator, err := auth.NewValidator(cfg.Get("SUPABASE_URL"), cfg.Get("SUPABASE_ANON_KEY"), logger)
	if err != nil {
		logger.Fatal("failed to create auth validator", zap.Error(err))
	}

	// Add app level settings/routes
	engine := gin.Default()

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)

	transcribe_module.RegisterRoutes(baseGroup, transcribe_module.NewController(transcripts, logger))

	conversations_module.RegisterRoutes(baseGroup,
		conversations_module.NewController(orchestrator, store, logger),
		validator.Middleware())

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
