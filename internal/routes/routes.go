package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"melodistic/internal/handlers"
	"melodistic/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	parser middleware.TokenParser,
	limiter *middleware.RateLimiter,
	gatherer prometheus.Gatherer,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	trackHandler *handlers.TrackHandler,
	processHandler *handlers.ProcessHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	requireUser := middleware.AuthMiddleware(parser)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("", healthHandler.Ping)
	api.GET("/healthz", healthHandler.Healthz)
	api.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ---- auth (credential endpoints are rate limited per client IP)
	auth := api.Group("/auth")
	{
		public := auth.Group("", limiter.Handler())
		public.POST("/signup", authHandler.Signup)
		public.POST("/signin", authHandler.Signin)
		public.POST("/google", authHandler.Google)
		public.POST("/forget-password", authHandler.ForgetPassword)
		public.POST("/reset-password/verify", authHandler.VerifyResetCode)
		public.POST("/reset-password", authHandler.ResetPassword)
		auth.GET("/verify", authHandler.VerifyEmail)

		auth.GET("/me", requireUser, authHandler.Me)
		auth.POST("/change-password", requireUser, limiter.Handler(), authHandler.ChangePassword)
	}

	// ---- tracks
	track := api.Group("/track")
	{
		track.GET("", middleware.OptionalAuth(parser), trackHandler.List)
		track.GET("/:trackId", requireUser, trackHandler.Get)
		track.POST("", requireUser, trackHandler.Create)
		track.POST("/:trackId/image", requireUser, trackHandler.UpdateImage)
		track.DELETE("/:trackId", requireUser, trackHandler.Delete)
	}

	// ---- user
	user := api.Group("/user", requireUser)
	{
		user.GET("/library", userHandler.Library)
		user.GET("/favorite", userHandler.Favorites)
		user.POST("/favorite", userHandler.ToggleFavorite)
		user.POST("/duration", userHandler.UpdateDuration)
		user.POST("/image", userHandler.UploadImage)
	}

	// ---- process
	process := api.Group("/process", requireUser)
	{
		process.GET("", processHandler.List)
		process.POST("/youtube", processHandler.Youtube)
		process.POST("/file", processHandler.File)
		process.DELETE("/:processId", processHandler.Delete)
	}

	return r
}
