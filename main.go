package main

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/skycopilot/backend/internal/client"
	"github.com/skycopilot/backend/internal/config"
	"github.com/skycopilot/backend/internal/db"
	"github.com/skycopilot/backend/internal/handler"
	"github.com/skycopilot/backend/internal/service"
	"github.com/skycopilot/backend/internal/template"
)

// @title Skycopilot Advisory API
// @version 1.0
// @description Advisory generation and historical incident retrieval backend for pilot assistance.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env가 없으면 조용히 넘어간다 (운영 환경은 실제 환경변수 사용)
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	embeddingDim, err := strconv.Atoi(cfg.AI.EmbeddingDim)
	if err != nil || embeddingDim <= 0 {
		log.Fatalf("invalid EMBEDDING_DIM: %q", cfg.AI.EmbeddingDim)
	}

	// DB 연결 및 스키마 보장
	database, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer database.Close()

	if err := database.EnsureIncidentSchema(ctx, embeddingDim); err != nil {
		log.Fatalf("failed to ensure incident schema: %v", err)
	}
	if err := database.EnsureAuthSchema(ctx); err != nil {
		log.Fatalf("failed to ensure auth schema: %v", err)
	}

	// AI 프로바이더 (gemini / openai / ollama)
	aiClient, err := client.NewAIClient(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to init ai client: %v", err)
	}

	registry, err := template.NewRegistry()
	if err != nil {
		log.Fatalf("failed to init template registry: %v", err)
	}

	advisoryTimeout, err := time.ParseDuration(cfg.Advisory.Timeout)
	if err != nil {
		log.Fatalf("invalid ADVISORY_TIMEOUT: %q", cfg.Advisory.Timeout)
	}

	advisoryService := service.NewAdvisoryService(registry, aiClient, advisoryTimeout)
	searchService := service.NewSearchService(database, aiClient)
	incidentService := service.NewIncidentService(database, aiClient)

	authService, err := service.NewAuthService(database, cfg.Auth)
	if err != nil {
		log.Fatalf("failed to init auth service: %v", err)
	}
	if cfg.Auth.AdminUsername != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			log.Fatalf("failed to ensure admin account: %v", err)
		}
	}

	ssoService, err := service.NewSSOService(ctx, authService, database, cfg.OIDC)
	if err != nil {
		log.Fatalf("failed to init sso service: %v", err)
	}

	advisoryHandler := handler.NewAdvisoryHandler(advisoryService)
	searchHandler := handler.NewSearchHandler(searchService)
	incidentHandler := handler.NewIncidentHandler(incidentService)
	authHandler := handler.NewAuthHandler(authService, ssoService)

	router := gin.Default()
	router.Use(handler.RequestIDMiddleware())
	if cfg.CORS.AllowedOrigins != "" {
		router.Use(handler.CORSMiddleware(splitOrigins(cfg.CORS.AllowedOrigins), true))
	}

	router.GET("/ping", handler.Ping)
	router.GET("/", handler.Root)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", handler.AuthMiddleware(authService), authHandler.Me)
		if ssoService != nil {
			auth.GET("/sso/login", authHandler.SSOLogin)
			auth.GET("/sso/callback", authHandler.SSOCallback)
		}
	}

	api := router.Group("/api/v1", handler.AuthMiddleware(authService))
	{
		api.POST("/advisory", advisoryHandler.Advise)
		api.GET("/similar-incidents", searchHandler.SearchSimilarIncidents)
		api.POST("/incidents", incidentHandler.StoreIncident)
		api.GET("/incidents", incidentHandler.ListIncidents)
	}

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func splitOrigins(raw string) []string {
	return strings.Split(raw, ",")
}
