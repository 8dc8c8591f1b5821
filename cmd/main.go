package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"bizdel/internal/caching"
	"bizdel/internal/handlers"
	"bizdel/internal/jobs/background"
	"bizdel/internal/middleware"
	"bizdel/internal/repositories"
	"bizdel/internal/services"
	"bizdel/pkg/database"
)

func main() {
	ctx := context.Background()

	// Backing store: Postgres when DATABASE_URL is set, in-memory otherwise.
	var store *repositories.Store
	var dbPinger handlers.Pinger
	storeKind := "memory"

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pool, err := database.NewPool(ctx, databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		store = repositories.NewPostgresStore(pool)
		dbPinger = pool
		storeKind = "postgres"
	} else {
		log.Println("DATABASE_URL not set, using in-memory store")
		store = repositories.NewMemoryStore()
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: JWT_SECRET not set, using generated secret")
	}

	// Redis configuration; the scheme cache is skipped when unset.
	var cacheSvc caching.CacheService
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisDB := 0
		if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
			if db, err := strconv.Atoi(redisDBStr); err == nil {
				redisDB = db
			}
		}
		cacheSvc = caching.NewRedisCacheService(redisAddr, os.Getenv("REDIS_PASSWORD"), redisDB)
	}

	// MinIO configuration; document upload/download endpoints are disabled
	// when unset, metadata endpoints still work.
	var minioSvc services.MinioService
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "bizdel-documents"
	}
	if minioEndpoint := os.Getenv("MINIO_ENDPOINT"); minioEndpoint != "" {
		svc, err := services.NewMinioService(
			minioEndpoint,
			os.Getenv("MINIO_ACCESS_KEY"),
			os.Getenv("MINIO_SECRET_KEY"),
			os.Getenv("MINIO_USE_SSL") == "true",
		)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO service: %v", err)
		}
		if err := svc.EnsureBucketExists(ctx, minioBucket); err != nil {
			log.Printf("WARN: could not ensure MinIO bucket %q: %v", minioBucket, err)
		}
		minioSvc = svc
	}

	// Seed the scheme catalog on an empty store.
	if err := repositories.SeedSchemes(ctx, store.Schemes); err != nil {
		log.Printf("WARN: scheme seeding failed: %v", err)
	}

	// Create services
	authSvc := services.NewAuthService(store.Users, store.Profiles, jwtSecret)
	profileSvc := services.NewProfileService(store.Profiles)
	applicationSvc := services.NewApplicationService(store.Applications, store.Notifications)
	complianceSvc := services.NewComplianceService(store.Compliance)
	documentSvc := services.NewDocumentService(store.Documents, minioSvc, minioBucket)
	schemeSvc := services.NewSchemeService(store.Schemes, cacheSvc)
	notificationSvc := services.NewNotificationService(store.Notifications)
	assistantSvc := services.NewAssistantService()

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	profileHandlers := handlers.NewProfileHandlers(profileSvc)
	applicationHandlers := handlers.NewApplicationHandlers(applicationSvc)
	complianceHandlers := handlers.NewComplianceHandlers(complianceSvc)
	documentHandlers := handlers.NewDocumentHandlers(documentSvc)
	schemeHandlers := handlers.NewSchemeHandlers(schemeSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	assistantHandlers := handlers.NewAssistantHandlers(assistantSvc)
	healthHandlers := handlers.NewHealthHandlers(dbPinger, storeKind)

	// Background reminder sweep
	scheduler, err := background.NewJobScheduler(store.Compliance, notificationSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("WARN: scheduler shutdown failed: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	api := e.Group("/api")

	// Authentication routes (no JWT required)
	api.POST("/auth/register", authHandlers.Register)
	api.POST("/auth/login", authHandlers.Login)

	// AI chat is public: the frontend shows it before login.
	api.POST("/ai/chat", assistantHandlers.Chat)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.JWTMiddleware(jwtSecret))

	protected.GET("/profile/:userId", profileHandlers.GetProfile)
	protected.POST("/profile", profileHandlers.CreateProfile)
	protected.PUT("/profile/:userId", profileHandlers.UpdateProfile)

	protected.GET("/applications/:userId", applicationHandlers.ListApplications)
	protected.POST("/applications", applicationHandlers.CreateApplication)
	protected.PUT("/applications/:id", applicationHandlers.UpdateApplication)

	protected.GET("/compliance/:userId", complianceHandlers.ListComplianceItems)
	protected.POST("/compliance", complianceHandlers.CreateComplianceItem)
	protected.PUT("/compliance/:id", complianceHandlers.UpdateComplianceItem)
	protected.POST("/compliance/:id/filed", complianceHandlers.MarkFiled)

	protected.GET("/documents/:userId", documentHandlers.ListDocuments)
	protected.POST("/documents", documentHandlers.CreateDocument)
	protected.POST("/documents/upload", documentHandlers.UploadDocument)
	protected.GET("/documents/:id/url", documentHandlers.GetDocumentURL)
	protected.DELETE("/documents/:id", documentHandlers.DeleteDocument)

	protected.GET("/schemes", schemeHandlers.ListSchemes)

	protected.GET("/notifications/:userId", notificationHandlers.ListNotifications)
	protected.POST("/notifications", notificationHandlers.CreateNotification)
	protected.PUT("/notifications/:id/read", notificationHandlers.MarkNotificationRead)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s (store: %s)", port, storeKind)
	if err := e.Start(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
