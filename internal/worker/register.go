package worker

import (
	"gestionale-sicurezza/internal/config"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func RegisterHandlers(mux *asynq.ServeMux, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	reportHandler := NewReportHandler(db, redis, cfg)
	mux.HandleFunc(reportHandler.TaskType(), reportHandler.Handle)
}
