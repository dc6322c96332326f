package routes

import (
	"context"
	"net/http"
	"time"

	"campus-connect/internal/adapters/storage"
	"campus-connect/internal/api/handlers"
	"campus-connect/internal/api/middleware"
	"campus-connect/internal/models"
	"campus-connect/internal/security"
	"campus-connect/internal/services"
	"campus-connect/internal/websocket"
	"campus-connect/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// Dependencies are the services the HTTP surface is built from.
type Dependencies struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Requests      *services.RequestService
	Chats         *services.ChatService
	Notifications *services.NotificationService
	Admin         *services.AdminService
	Tokens        *security.TokenManager
	Limiter       middleware.Limiter
	Socket        *websocket.Server

	AllowedOrigins []string
	PublicBaseURL  string
	// UploadDir is served under /uploads when avatars are stored locally.
	UploadDir    string
	HealthChecks map[string]HealthCheck
	Debug        bool
}

type Router struct {
	engine              *gin.Engine
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	requestHandler      *handlers.RequestHandler
	chatHandler         *handlers.ChatHandler
	notificationHandler *handlers.NotificationHandler
	adminHandler        *handlers.AdminHandler
	wsHandler           *handlers.WSHandler
	rateLimitMW         *middleware.RateLimitMiddleware
	authMW              *middleware.AuthMiddleware
	deps                Dependencies
}

func NewRouter(deps Dependencies, log *logger.Logger) *Router {
	if deps.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(deps.AllowedOrigins))
	engine.Use(middleware.LogApi(log))

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewMemoryLimiter()
	}

	return &Router{
		engine:              engine,
		authHandler:         handlers.NewAuthHandler(deps.Auth, log),
		userHandler:         handlers.NewUserHandler(deps.Users, deps.PublicBaseURL, log),
		requestHandler:      handlers.NewRequestHandler(deps.Requests, log),
		chatHandler:         handlers.NewChatHandler(deps.Chats, deps.PublicBaseURL, log),
		notificationHandler: handlers.NewNotificationHandler(deps.Notifications, log),
		adminHandler:        handlers.NewAdminHandler(deps.Admin, log),
		wsHandler:           handlers.NewWSHandler(deps.Socket, log),
		rateLimitMW:         middleware.NewRateLimitMiddleware(limiter, log),
		authMW:              middleware.NewAuthMiddleware(deps.Tokens, log),
		deps:                deps,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/health", r.health)
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if r.deps.UploadDir != "" {
		r.engine.Static(storage.PublicPrefix, r.deps.UploadDir)
	}

	api := r.engine.Group("/api")

	// Public routes (no authentication required)
	authRoutes := api.Group("/auth")
	authRoutes.Use(r.rateLimitMW.RateLimitIP("auth", 50, time.Minute))
	{
		authRoutes.POST("/signup", r.authHandler.Signup)
		authRoutes.POST("/login", r.authHandler.Login)
	}

	// Authenticated routes
	protected := api.Group("")
	protected.Use(r.authMW.RequireAuth())
	{
		protected.GET("/auth/me", r.authHandler.Me)
		protected.GET("/ws", r.wsHandler.HandleWebSocket)

		directory := protected.Group("")
		directory.Use(r.rateLimitMW.RateLimit("users", 100, time.Minute))
		{
			directory.GET("/seniors", r.userHandler.ListSeniors)
			directory.PUT("/users/me", r.userHandler.UpdateProfile)
			directory.POST("/users/me/avatar", r.userHandler.UploadAvatar)
			directory.DELETE("/users/me/avatar", r.userHandler.DeleteAvatar)
			directory.GET("/users/:id", r.userHandler.GetUser)
		}

		requests := protected.Group("/requests")
		requests.Use(r.rateLimitMW.RateLimit("requests", 100, time.Minute))
		{
			requests.POST("", r.requestHandler.Create)
			requests.GET("", r.requestHandler.List)
			requests.POST("/:id/respond", r.requestHandler.Respond)
			requests.DELETE("/:id", r.requestHandler.Withdraw)
		}

		chats := protected.Group("/chats")
		chats.Use(r.rateLimitMW.RateLimit("chats", 200, time.Minute))
		{
			chats.GET("", r.chatHandler.ListChats)
			chats.POST("", r.chatHandler.OpenChat)
			chats.GET("/:id/messages", r.chatHandler.Messages)
			chats.POST("/:id/messages", r.chatHandler.SendMessage)
		}

		notifications := protected.Group("/notifications")
		notifications.Use(r.rateLimitMW.RateLimit("notifications", 200, time.Minute))
		{
			notifications.GET("", r.notificationHandler.List)
			notifications.POST("/read-all", r.notificationHandler.MarkAllRead)
			notifications.POST("/:id/read", r.notificationHandler.MarkRead)
			notifications.DELETE("/:id", r.notificationHandler.Delete)
		}

		admin := protected.Group("/admin")
		admin.Use(r.authMW.RequireRole(models.RoleAdmin))
		{
			admin.GET("/stats", r.adminHandler.Stats)
			admin.GET("/users/export", r.adminHandler.ExportUsers)
		}
	}
}

func (r *Router) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(r.deps.HealthChecks))
	status := http.StatusOK
	for name, check := range r.deps.HealthChecks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	body := gin.H{"status": "ok", "checks": checks}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
