package services

import (
	"watchlist/config"
	"watchlist/internal/database"
	"watchlist/internal/repositories"
)

type Service struct {
	TMDB        *TMDBService
	IngestMemo  *IngestMemoService
	Ingest      *IngestService
	Transaction *TransactionService
	Scheduler   *SchedulerService
}

func New(db database.DB, config config.Config) (Service, error) {
	transactionService := NewTransactionService(db)
	repos := repositories.New(db)

	tmdbService := NewTMDBService(config)
	ingestMemoService := NewIngestMemoService()
	ingestService := NewIngestService(tmdbService, ingestMemoService, repos, transactionService)
	schedulerService := NewSchedulerService()

	return Service{
		TMDB:        tmdbService,
		IngestMemo:  ingestMemoService,
		Ingest:      ingestService,
		Transaction: transactionService,
		Scheduler:   schedulerService,
	}, nil
}
