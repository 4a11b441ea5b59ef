package jobs

import (
	"context"
	"errors"
	"watchlist/internal/repositories"
	"watchlist/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type catalogIngester interface {
	IngestShow(ctx context.Context, showID int, isMovie bool) error
}

// CatalogRefreshJob re-ingests every show still in production, picking up new
// seasons and episodes without user traffic. Memo entries are dropped first
// so the nightly pass always reaches the provider.
type CatalogRefreshJob struct {
	showRepo repositories.ShowRepository
	ingest   catalogIngester
	memo     *services.IngestMemoService
	log      logger.Logger
}

func NewCatalogRefreshJob(
	showRepo repositories.ShowRepository,
	ingest catalogIngester,
	memo *services.IngestMemoService,
) *CatalogRefreshJob {
	log := logger.New("catalogRefreshJob")
	log.Info("Creating catalog refresh job")

	return &CatalogRefreshJob{
		showRepo: showRepo,
		ingest:   ingest,
		memo:     memo,
		log:      log,
	}
}

func (j *CatalogRefreshJob) Name() string {
	return "CatalogRefresh"
}

func (j *CatalogRefreshJob) Schedule() services.Schedule {
	return services.Daily
}

func (j *CatalogRefreshJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	shows, err := j.showRepo.ListInProduction(ctx)
	if err != nil {
		return log.Err("failed to list in-production shows", err)
	}

	if len(shows) == 0 {
		log.Info("No in-production shows to refresh")
		return nil
	}

	log.Info("Starting catalog refresh", "count", len(shows))

	var refreshed, failed int
	for _, show := range shows {
		if ctx.Err() != nil {
			return log.Err("catalog refresh cancelled", ctx.Err(),
				"refreshed", refreshed, "failed", failed)
		}

		j.memo.Forget(show.ShowID, show.IsMovie)

		if err := j.ingest.IngestShow(ctx, show.ShowID, show.IsMovie); err != nil {
			if errors.Is(err, services.ErrCatalogNotFound) {
				log.Warn("show no longer in catalog",
					"showID", show.ShowID, "isMovie", show.IsMovie)
				continue
			}
			failed++
			log.Warn("failed to refresh show",
				"showID", show.ShowID, "isMovie", show.IsMovie, "error", err)
			continue
		}
		refreshed++
	}

	log.Info("Catalog refresh finished", "refreshed", refreshed, "failed", failed)
	return nil
}
