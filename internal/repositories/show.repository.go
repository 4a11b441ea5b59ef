package repositories

import (
	"context"
	"errors"
	"watchlist/internal/database"
	"watchlist/internal/logger"
	. "watchlist/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShowRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, show *Show) error
	GetByKey(ctx context.Context, showID int, isMovie bool) (*Show, error)
	GetWithSeasons(ctx context.Context, showID int, isMovie bool) (*Show, error)
	Exists(ctx context.Context, showID int, isMovie bool) (bool, error)
	ListInProduction(ctx context.Context) ([]*Show, error)
	Search(ctx context.Context, query string, limit int) ([]*Show, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type showRepository struct {
	db  database.DB
	log logger.Logger
}

func NewShowRepository(db database.DB) ShowRepository {
	return &showRepository{
		db:  db,
		log: logger.New("showRepository"),
	}
}

// Upsert writes a show row, replacing every catalog column when the
// (show_id, is_movie) key already exists.
func (r *showRepository) Upsert(ctx context.Context, tx *gorm.DB, show *Show) error {
	log := r.log.Function("Upsert")

	if err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "show_id"}, {Name: "is_movie"}},
		DoUpdates: clause.AssignmentColumns(ShowUpsertColumns()),
	}).Create(show).Error; err != nil {
		return log.Err("failed to upsert show", err, "showID", show.ShowID, "isMovie", show.IsMovie)
	}

	return nil
}

func (r *showRepository) GetByKey(ctx context.Context, showID int, isMovie bool) (*Show, error) {
	log := r.log.Function("GetByKey")

	var show Show
	err := r.db.SQLWithContext(ctx).
		First(&show, "show_id = ? AND is_movie = ?", showID, isMovie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get show", err, "showID", showID, "isMovie", isMovie)
	}

	return &show, nil
}

func (r *showRepository) GetWithSeasons(
	ctx context.Context,
	showID int,
	isMovie bool,
) (*Show, error) {
	log := r.log.Function("GetWithSeasons")

	var show Show
	err := r.db.SQLWithContext(ctx).
		Preload("Seasons", func(db *gorm.DB) *gorm.DB {
			return db.Order("seasons.season_number")
		}).
		First(&show, "show_id = ? AND is_movie = ?", showID, isMovie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get show with seasons", err, "showID", showID, "isMovie", isMovie)
	}

	return &show, nil
}

func (r *showRepository) Exists(ctx context.Context, showID int, isMovie bool) (bool, error) {
	log := r.log.Function("Exists")

	var count int64
	err := r.db.SQLWithContext(ctx).
		Model(&Show{}).
		Where("show_id = ? AND is_movie = ?", showID, isMovie).
		Count(&count).Error
	if err != nil {
		return false, log.Err("failed to check show existence", err, "showID", showID, "isMovie", isMovie)
	}

	return count > 0, nil
}

// ListInProduction returns every show still marked in production, the set the
// nightly refresh job re-fetches.
func (r *showRepository) ListInProduction(ctx context.Context) ([]*Show, error) {
	log := r.log.Function("ListInProduction")

	var shows []*Show
	err := r.db.SQLWithContext(ctx).
		Where("in_production = ?", true).
		Find(&shows).Error
	if err != nil {
		return nil, log.Err("failed to list in-production shows", err)
	}

	return shows, nil
}

func (r *showRepository) Search(ctx context.Context, query string, limit int) ([]*Show, error) {
	log := r.log.Function("Search")

	var shows []*Show
	err := r.db.SQLWithContext(ctx).
		Where("title ILIKE ?", "%"+query+"%").
		Order("popularity DESC NULLS LAST").
		Limit(limit).
		Find(&shows).Error
	if err != nil {
		return nil, log.Err("failed to search shows", err, "query", query)
	}

	return shows, nil
}

// DeleteAll empties the catalog. Seasons, episodes, and show_genres cascade
// from the shows table.
func (r *showRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	log := r.log.Function("DeleteAll")

	if err := tx.WithContext(ctx).Exec("DELETE FROM shows").Error; err != nil {
		return log.Err("failed to delete all shows", err)
	}

	return nil
}
