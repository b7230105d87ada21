package main

import (
	"context"
	"log"
	"time"

	"myapp/config"
	"myapp/controllers"
	"myapp/database"
	"myapp/handlers"
	"myapp/metrics"
	"myapp/middleware"
	"myapp/routes"
	"myapp/services"
	"myapp/templates"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	_ "myapp/docs"
)

// @title MyApp API
// @version 1.0.0
// @description Blog posts, comments and users, plus operational endpoints.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	hubService := services.NewHubService()
	defer hubService.Stop()

	var groups services.GroupRegistry = hubService
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := services.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		groups = services.NewRedisGroupRegistry(rdb, hubService)
		log.Println("Push channel groups mirrored to redis")
	}

	registry := metrics.NewRegistry()
	probe := services.NewStatusProbe(db)
	hostMetrics := services.NewHostMetricsProvider(time.Second)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger("/health/", "/prometheus/"))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.RequestMetrics(registry))
	r.SetHTMLTemplate(templates.Load())

	systemController := controllers.NewSystemController(cfg, registry, probe, hostMetrics, services.NewHostMetricsProvider(0))
	authController := controllers.NewAuthController(db, cfg.JWTSecret, cfg.JWTTTL)
	userController := controllers.NewUserController(db, cfg.PageSize)
	postController := controllers.NewPostController(db, cfg.PageSize)
	commentController := controllers.NewCommentController(db, cfg.PageSize)
	wsHandler := handlers.NewWebSocketHandler(
		groups,
		registry.ActiveConnections,
		services.MetricsChannelSpec(hostMetrics, cfg.MetricsInterval),
		services.StatusChannelSpec(probe, cfg.StatusInterval),
		cfg.CORSAllowedOrigins,
	)

	routes.SetupRoutes(r, cfg.JWTSecret, services.NewUserService(db), systemController, authController, userController, postController, commentController, wsHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Swagger docs available at: http://%s/api/docs/index.html", cfg.PublicHost)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
