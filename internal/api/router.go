package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/byteverse/platform-api/docs"
	"github.com/byteverse/platform-api/internal/abuse"
	"github.com/byteverse/platform-api/internal/api/handler"
	"github.com/byteverse/platform-api/internal/api/middleware"
	"github.com/byteverse/platform-api/internal/auth"
	"github.com/byteverse/platform-api/internal/content"
	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
	"github.com/byteverse/platform-api/internal/core/service"
	"github.com/byteverse/platform-api/internal/infrastructure/config"
	mongodb "github.com/byteverse/platform-api/internal/infrastructure/db/mongo"
)

// Dependencies carries everything the router needs that is constructed
// in main: connections, the abuse pipeline pieces and the outbound
// dispatcher.
type Dependencies struct {
	Config     *config.Config
	Mongo      *mongo.Database
	Redis      *redis.Client // nil when the in-memory blocklist is used
	Blocklist  abuse.Blocklist
	Monitor    *abuse.Monitor
	Mailer     ports.Mailer
	Renderer   ports.EmailRenderer
	Dispatcher ports.OutboundDispatcher
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	cfg := deps.Config
	log := deps.Log

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	// The access pipeline runs in a fixed order: blocklist gate first,
	// abuse monitor second, authentication per route group after that.
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("byteverse"))
	e.Use(middleware.BlocklistGate(deps.Blocklist, deps.Config.Abuse.FailClosed, log))
	e.Use(middleware.AbuseMonitor(deps.Monitor))

	// --- Repositories ---
	users := mongodb.NewUserRepository(deps.Mongo)
	admins := mongodb.NewAdminRepository(deps.Mongo)
	blogs := mongodb.NewBlogRepository(deps.Mongo)
	comments := mongodb.NewCommentRepository(deps.Mongo)
	events := mongodb.NewEventRepository(deps.Mongo)
	registrations := mongodb.NewRegistrationRepository(deps.Mongo)
	community := mongodb.NewCommunityRepository(deps.Mongo)
	projects := mongodb.NewProjectRepository(deps.Mongo)
	pending := mongodb.NewPendingProjectRepository(deps.Mongo)
	notifications := mongodb.NewNotificationRepository(deps.Mongo)

	// --- Token domains ---
	// User and admin tokens are signed with independent secrets; a
	// token from one domain never validates in the other.
	userTokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	adminTokens := auth.NewTokenManager(cfg.AdminJWTSecret, cfg.AdminTokenTTL)

	// --- Services ---
	authService := service.NewAuthService(users, userTokens, deps.Mailer, deps.Renderer, deps.Dispatcher, cfg.BaseURL, log)
	adminAuthService := service.NewAdminAuthService(admins, adminTokens)
	userService := service.NewUserService(users, blogs, projects, log)
	blogService := service.NewBlogService(blogs, content.NewImageValidator(log), deps.Dispatcher, log)
	commentService := service.NewCommentService(comments, blogs, deps.Dispatcher)
	eventService := service.NewEventService(events, registrations, deps.Renderer, deps.Dispatcher, log)
	communityService := service.NewCommunityService(community, deps.Renderer, deps.Dispatcher, cfg.CommunityGroupLink, log)
	projectService := service.NewProjectService(projects, pending, deps.Renderer, deps.Dispatcher, cfg.AdminEmails, log)
	notificationService := service.NewNotificationService(notifications)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.Env == "production", cfg.TokenTTL)
	adminHandler := handler.NewAdminHandler(adminAuthService)
	userHandler := handler.NewUserHandler(userService)
	blogHandler := handler.NewBlogHandler(blogService)
	commentHandler := handler.NewCommentHandler(commentService)
	eventHandler := handler.NewEventHandler(eventService)
	communityHandler := handler.NewCommunityHandler(communityService)
	projectHandler := handler.NewProjectHandler(projectService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	userAuth := middleware.UserAuth(userTokens, users, log)
	optionalAuth := middleware.OptionalUserAuth(userTokens, users)
	adminAuth := middleware.AdminAuth(adminTokens, admins, log)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, userAuth)
	authGroup.PUT("/updatedetails", authHandler.UpdateDetails, userAuth)
	authGroup.PUT("/updatepassword", authHandler.UpdatePassword, userAuth)
	authGroup.GET("/verify/:token", authHandler.Verify)
	authGroup.POST("/forgotpassword", authHandler.ForgotPassword)
	authGroup.PUT("/resetpassword/:token", authHandler.ResetPassword)

	// --- Admin routes ---
	adminGroup := e.Group("/api/admin")
	adminGroup.POST("/login", adminHandler.Login)
	adminGroup.GET("/me", adminHandler.Me, adminAuth, adminOnly)

	// --- User profiles ---
	usersGroup := e.Group("/api/users")
	usersGroup.GET("/me", userHandler.Profile, userAuth)
	usersGroup.PUT("/me", userHandler.UpdateProfile, userAuth)
	usersGroup.GET("/profile/:username", userHandler.PublicProfile)

	// --- Blogs and comments ---
	blogGroup := e.Group("/api/blogs")
	blogGroup.GET("", blogHandler.List)
	blogGroup.GET("/user/blogs", blogHandler.Mine, userAuth)
	blogGroup.GET("/:id", blogHandler.Get, optionalAuth)
	blogGroup.POST("", blogHandler.Create, userAuth)
	blogGroup.PUT("/:id", blogHandler.Update, userAuth)
	blogGroup.DELETE("/:id", blogHandler.Delete, userAuth)
	blogGroup.POST("/:id/like", blogHandler.ToggleLike, userAuth)
	blogGroup.GET("/:id/comments", commentHandler.List)
	blogGroup.POST("/:id/comments", commentHandler.Add, userAuth)
	blogGroup.DELETE("/:id/comments/:commentId", commentHandler.Delete, userAuth)
	blogGroup.POST("/:id/comments/:commentId/like", commentHandler.Like, userAuth)

	// --- Events ---
	eventGroup := e.Group("/api/events")
	eventGroup.GET("", eventHandler.List)
	eventGroup.GET("/:id", eventHandler.Get)
	eventGroup.POST("", eventHandler.Create, adminAuth, adminOnly)
	eventGroup.PUT("/:id", eventHandler.Update, adminAuth, adminOnly)
	eventGroup.DELETE("/:id", eventHandler.Delete, adminAuth, adminOnly)
	eventGroup.POST("/:id/registrations", eventHandler.Register, optionalAuth)
	eventGroup.GET("/:id/registrations", eventHandler.Registrations, adminAuth, adminOnly)
	eventGroup.GET("/:id/registration-status", eventHandler.RegistrationStatus)
	eventGroup.POST("/:id/resend-confirmation", eventHandler.ResendConfirmation)
	eventGroup.POST("/:id/broadcast-group-link", eventHandler.BroadcastGroupLink, adminAuth, adminOnly)

	// --- Community ---
	communityGroup := e.Group("/api/community")
	communityGroup.POST("/join", communityHandler.Join)
	communityGroup.GET("/members", communityHandler.Members, adminAuth, adminOnly)

	// --- Projects and submissions ---
	projectGroup := e.Group("/api/projects")
	projectGroup.GET("", projectHandler.List)
	projectGroup.GET("/:id", projectHandler.Get)

	submissionGroup := e.Group("/api/project-submissions")
	submissionGroup.POST("", projectHandler.Submit)
	submissionGroup.GET("", projectHandler.Pending, adminAuth, adminOnly)
	submissionGroup.GET("/statistics", projectHandler.Statistics, adminAuth, adminOnly)
	submissionGroup.POST("/:id/approve", projectHandler.Approve, adminAuth, adminOnly)
	submissionGroup.POST("/:id/reject", projectHandler.Reject, adminAuth, adminOnly)

	// --- Notifications ---
	notificationGroup := e.Group("/api/notifications", userAuth)
	notificationGroup.GET("", notificationHandler.List)
	notificationGroup.PUT("/read-all", notificationHandler.MarkAllRead)
	notificationGroup.PUT("/:id/read", notificationHandler.MarkRead)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
