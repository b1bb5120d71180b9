// @title           QuickAI Backend API
// @version         1.0.0
// @description     API gateway for AI content generation. Forwards requests to upstream AI and media providers, persists creation records, and enforces the free/premium quota.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"
	"net/url"

	"quickai-backend/docs"
	"quickai-backend/internal/clipdrop"
	"quickai-backend/internal/config"
	"quickai-backend/internal/database"
	"quickai-backend/internal/handlers"
	"quickai-backend/internal/mediastore"
	"quickai-backend/internal/middleware"
	"quickai-backend/internal/resume"
	"quickai-backend/internal/supabase"
	"quickai-backend/internal/textgen"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Database: migrations first, then the creations store.
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	// Identity provider: JWT validation uses the shared secret, plan and
	// usage metadata go through the admin API.
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}
	ledger := supabase.NewIdentityLedger(supabaseClient)

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	// Upstream adapters.
	textClient := textgen.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.TextModel)
	clipdropClient := clipdrop.NewClient(cfg.ClipdropBaseURL, cfg.ClipdropAPIKey)
	mediaClient, err := mediastore.NewClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("Failed to initialize media store client: %v", err)
	}

	aiHandler := handlers.NewAIHandler(
		textClient,
		clipdropClient,
		storageClient,
		mediaClient,
		resume.Parser{},
		dbClient,
		ledger,
		cfg.ExposeUpstreamErrors,
	)
	creationsHandler := handlers.NewCreationsHandler(dbClient)

	router := gin.Default()

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg, ledger))

	ai := api.Group("/ai")
	ai.POST("/generate-article", aiHandler.GenerateArticle)
	ai.POST("/generate-blog-title", aiHandler.GenerateBlogTitle)
	ai.POST("/generate-image", aiHandler.GenerateImage)
	ai.POST("/remove-image-background", aiHandler.RemoveImageBackground)
	ai.POST("/remove-image-object", aiHandler.RemoveImageObject)
	ai.POST("/resume-review", aiHandler.ResumeReview)

	user := api.Group("/user")
	user.GET("/get-user-creations", creationsHandler.GetUserCreations)
	user.GET("/get-published-creations", creationsHandler.GetPublishedCreations)
	user.POST("/toggle-like-creations", creationsHandler.ToggleLike)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
