package router

import (
	"gestionale-sicurezza/internal/config"
	"gestionale-sicurezza/internal/handler"
	"gestionale-sicurezza/internal/importer"
	"gestionale-sicurezza/internal/middleware"
	"gestionale-sicurezza/internal/repository"
	"gestionale-sicurezza/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redis *redis.Client,
	cfg *config.Config,
) {
	// Initialize repositories and the import engine collaborators
	sessionRepo := repository.NewImportSessionRepository(db)
	stores, editions := repository.ImportStores(db)

	engine := importer.New(stores, editions, importer.Tolerances{
		PriceDivergencePct:   cfg.PriceTolerancePct,
		LateRegistrationDays: cfg.LateRegistrationDays,
	}, utils.GetLogger())

	// Initialize Asynq client (optional - only if Redis is available)
	var asynqClient *asynq.Client
	if redis != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	importHandler := handler.NewImportHandler(sessionRepo, engine, asynqClient, cfg)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))

	imports := protected.Group("/imports")
	imports.Get("/", importHandler.GetSessions)
	imports.Get("/:id<int>", importHandler.GetSessionDetail)
	imports.Get("/:id<int>/report", importHandler.DownloadReport)
	imports.Post("/:entity/preview", importHandler.Preview)
	imports.Post("/:entity/commit", importHandler.Commit)
	imports.Get("/:entity/template", importHandler.DownloadTemplate)
}
