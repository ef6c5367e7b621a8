package router

import (
	"github.com/conecta-social/conecta-server/backend/internal/handlers"
	"github.com/conecta-social/conecta-server/backend/internal/mailer"
	"github.com/conecta-social/conecta-server/backend/internal/middleware"
	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/realtime"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/conecta-social/conecta-server/backend/internal/storage"
	"github.com/conecta-social/conecta-server/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *config.DB, cfg *config.Config, uploader storage.Uploader, log *logrus.Logger) error {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Experience{},
		&models.Education{},
		&models.Certificate{},
		&models.Like{},
		&models.Comment{},
		&models.Vacancy{},
		&models.Application{},
		&models.Community{},
		&models.CommunityRating{},
		&models.ProfessionalArea{},
		&models.Skill{},
	)
	if err != nil {
		return err
	}
	log.Info("postgres auto-migrations completed")

	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	if err := config.EnsureMongoIndexes(mongoDB); err != nil {
		return err
	}
	log.Info("mongo indexes ensured")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	profileRepo := repositories.NewPostgresProfileRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	vacancyRepo := repositories.NewPostgresVacancyRepository(db.Postgres)
	applicationRepo := repositories.NewPostgresApplicationRepository(db.Postgres)
	communityRepo := repositories.NewPostgresCommunityRepository(db.Postgres)
	catalogRepo := repositories.NewPostgresCatalogRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	feedRepo := repositories.NewMongoFeedRepository(mongoDB)
	conversationRepo := repositories.NewMongoConversationRepository(mongoDB)
	messageRepo := repositories.NewMongoMessageRepository(mongoDB)

	// --- Shared services ---
	smtpMailer := mailer.NewSMTPMailer(cfg)
	hub := realtime.NewHub(log)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(userRepo, smtpMailer, cfg, log)
	userHandler := handlers.NewUserHandler(
		userRepo, followRepo, profileRepo, postRepo, feedRepo, likeRepo,
		commentRepo, conversationRepo, messageRepo, applicationRepo,
		uploader, smtpMailer, log,
	)
	networkHandler := handlers.NewNetworkHandler(userRepo, followRepo)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	postHandler := handlers.NewPostHandler(postRepo, feedRepo, followRepo, likeRepo, commentRepo, userRepo, uploader, log)
	feedHandler := handlers.NewFeedHandler(feedRepo, postRepo, userRepo)
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo)
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo)
	messageHandler := handlers.NewMessageHandler(conversationRepo, messageRepo, userRepo, hub, log)
	vacancyHandler := handlers.NewVacancyHandler(vacancyRepo, applicationRepo, catalogRepo, userRepo, log)
	communityHandler := handlers.NewCommunityHandler(communityRepo, catalogRepo, log)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	wsHandler := realtime.NewHandler(hub)

	// --- Register Routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler.RegisterAuthRoutes(authGroup)

	// External vacancy ingestion is public: the scraper has no account.
	externalGroup := e.Group("/api/v1")
	vacancyHandler.RegisterExternalVacancyRoutes(externalGroup)

	api := e.Group("/api/v1", middleware.JWTAuthMiddleware(cfg.AccessTokenSecret))
	userHandler.RegisterUserRoutes(api)
	networkHandler.RegisterNetworkRoutes(api)
	profileHandler.RegisterProfileRoutes(api)
	postHandler.RegisterPostRoutes(api)
	feedHandler.RegisterFeedRoutes(api)
	likeHandler.RegisterLikeRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	messageHandler.RegisterMessageRoutes(api)
	vacancyHandler.RegisterVacancyRoutes(api)
	communityHandler.RegisterCommunityRoutes(api)
	catalogHandler.RegisterCatalogRoutes(api)
	wsHandler.RegisterRoutes(api)

	log.Info("routes registered")
	return nil
}
