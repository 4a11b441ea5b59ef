package repositories

import (
	"context"
	"watchlist/internal/database"
	"watchlist/internal/logger"
	. "watchlist/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EpisodeRepository interface {
	UpsertBatch(ctx context.Context, tx *gorm.DB, episodes []*Episode) error
	ListForShow(ctx context.Context, showID int, isMovie bool) ([]*Episode, error)
	ListForSeason(ctx context.Context, showID int, isMovie bool, seasonNumber int) ([]*Episode, error)
}

type episodeRepository struct {
	db  database.DB
	log logger.Logger
}

func NewEpisodeRepository(db database.DB) EpisodeRepository {
	return &episodeRepository{
		db:  db,
		log: logger.New("episodeRepository"),
	}
}

func (r *episodeRepository) UpsertBatch(ctx context.Context, tx *gorm.DB, episodes []*Episode) error {
	log := r.log.Function("UpsertBatch")

	if len(episodes) == 0 {
		return nil
	}

	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "show_id"}, {Name: "is_movie"},
			{Name: "season_number"}, {Name: "episode_number"},
		},
		DoUpdates: clause.Assignments(coalesceAssignments("episodes", EpisodeCoalesceColumns())),
	}).CreateInBatches(&episodes, 500).Error
	if err != nil {
		return log.Err("failed to upsert episode batch", err, "count", len(episodes))
	}

	return nil
}

func (r *episodeRepository) ListForShow(
	ctx context.Context,
	showID int,
	isMovie bool,
) ([]*Episode, error) {
	log := r.log.Function("ListForShow")

	var episodes []*Episode
	err := r.db.SQLWithContext(ctx).
		Where("show_id = ? AND is_movie = ?", showID, isMovie).
		Order("season_number, episode_number").
		Find(&episodes).Error
	if err != nil {
		return nil, log.Err("failed to list episodes", err, "showID", showID, "isMovie", isMovie)
	}

	return episodes, nil
}

func (r *episodeRepository) ListForSeason(
	ctx context.Context,
	showID int,
	isMovie bool,
	seasonNumber int,
) ([]*Episode, error) {
	log := r.log.Function("ListForSeason")

	var episodes []*Episode
	err := r.db.SQLWithContext(ctx).
		Where("show_id = ? AND is_movie = ? AND season_number = ?", showID, isMovie, seasonNumber).
		Order("episode_number").
		Find(&episodes).Error
	if err != nil {
		return nil, log.Err("failed to list season episodes", err,
			"showID", showID, "isMovie", isMovie, "seasonNumber", seasonNumber)
	}

	return episodes, nil
}
