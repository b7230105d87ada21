package routes

import (
	"myapp/controllers"
	apierrors "myapp/errors"
	"myapp/handlers"
	"myapp/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret string,
	users middleware.UserLookup,
	systemController *controllers.SystemController,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	w *handlers.WebSocketHandler,
) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(systemController.NoMethod)
	r.NoRoute(systemController.NoRoute)

	r.GET("/", systemController.Home)
	r.GET("/ws-test/", systemController.WSTest)

	r.GET("/health/", systemController.Health)
	r.HEAD("/health/", systemController.Health)
	r.GET("/status/", systemController.Status)
	r.GET("/metrics/", systemController.Metrics)
	r.GET("/demo-lb/", systemController.DemoLB)
	r.GET("/prometheus/", systemController.Prometheus)

	ws := r.Group("/ws")
	ws.Use(middleware.Authenticate(jwtSecret, users))
	{
		ws.GET("/metrics/", w.Metrics)
		ws.GET("/status/", w.Status)
	}

	api := r.Group("/api")
	api.Use(middleware.Authenticate(jwtSecret, users))
	{
		api.GET("/", systemController.APIRoot)
		api.GET("/schema/", systemController.Schema)
		api.GET("/redoc/", systemController.Redoc)
		api.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		auth := api.Group("/auth")
		{
			auth.POST("/register/", authController.Register)
			auth.POST("/login/", authController.Login)
			auth.GET("/me/", middleware.AuthRequired(), authController.Me)
		}

		v1 := api.Group("/v1")

		posts := v1.Group("/posts")
		{
			posts.GET("/", postController.GetPosts)
			posts.POST("/", postController.CreatePost)
			posts.GET("/:id/", postController.GetPost)
			posts.PUT("/:id/", postController.UpdatePost)
			posts.PATCH("/:id/", postController.UpdatePost)
			posts.DELETE("/:id/", postController.DeletePost)
			posts.POST("/:id/publish/", postController.PublishPost)
			posts.POST("/:id/unpublish/", postController.UnpublishPost)
		}

		comments := v1.Group("/comments")
		{
			comments.GET("/", commentController.GetComments)
			comments.POST("/", commentController.CreateComment)
			comments.GET("/:id/", commentController.GetComment)
			comments.PUT("/:id/", commentController.UpdateComment)
			comments.PATCH("/:id/", commentController.UpdateComment)
			comments.DELETE("/:id/", commentController.DeleteComment)
		}

		// Writes answer 405 for anonymous and authenticated callers alike. A token that
		// is present but invalid is still rejected with 401 first, since identity is
		// resolved for the whole /api group before any route runs.
		userRoutes := v1.Group("/users")
		{
			userRoutes.GET("/", userController.GetUsers)
			userRoutes.GET("/:id/", userController.GetUser)
			userRoutes.POST("/", apierrors.MethodNotAllowed)
			userRoutes.PUT("/:id/", apierrors.MethodNotAllowed)
			userRoutes.PATCH("/:id/", apierrors.MethodNotAllowed)
			userRoutes.DELETE("/:id/", apierrors.MethodNotAllowed)
		}
	}
}
