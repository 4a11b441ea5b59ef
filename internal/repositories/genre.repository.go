package repositories

import (
	"context"
	"watchlist/internal/database"
	"watchlist/internal/logger"
	. "watchlist/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenreRepository interface {
	UpsertBatch(ctx context.Context, tx *gorm.DB, genres []*Genre) error
	LinkToShow(ctx context.Context, tx *gorm.DB, showID int, isMovie bool, genreIDs []int) error
	ListForShow(ctx context.Context, showID int, isMovie bool) ([]*Genre, error)
}

type genreRepository struct {
	db  database.DB
	log logger.Logger
}

func NewGenreRepository(db database.DB) GenreRepository {
	return &genreRepository{
		db:  db,
		log: logger.New("genreRepository"),
	}
}

// UpsertBatch inserts genres that do not exist yet. Existing rows keep their
// stored name, matching the insert-if-absent behavior of the catalog sync.
func (r *genreRepository) UpsertBatch(ctx context.Context, tx *gorm.DB, genres []*Genre) error {
	log := r.log.Function("UpsertBatch")

	if len(genres) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&genres).Error; err != nil {
		return log.Err("failed to upsert genre batch", err, "count", len(genres))
	}

	return nil
}

func (r *genreRepository) LinkToShow(
	ctx context.Context,
	tx *gorm.DB,
	showID int,
	isMovie bool,
	genreIDs []int,
) error {
	log := r.log.Function("LinkToShow")

	if len(genreIDs) == 0 {
		return nil
	}

	links := make([]*ShowGenre, len(genreIDs))
	for i, genreID := range genreIDs {
		links[i] = &ShowGenre{
			ShowID:  showID,
			IsMovie: isMovie,
			GenreID: genreID,
		}
	}

	if err := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error; err != nil {
		return log.Err("failed to link genres to show", err, "showID", showID, "count", len(links))
	}

	return nil
}

func (r *genreRepository) ListForShow(
	ctx context.Context,
	showID int,
	isMovie bool,
) ([]*Genre, error) {
	log := r.log.Function("ListForShow")

	var genres []*Genre
	err := r.db.SQLWithContext(ctx).
		Joins("JOIN show_genres ON show_genres.genre_id = genres.id").
		Where("show_genres.show_id = ? AND show_genres.is_movie = ?", showID, isMovie).
		Order("genres.name").
		Find(&genres).Error
	if err != nil {
		return nil, log.Err("failed to list genres for show", err, "showID", showID, "isMovie", isMovie)
	}

	return genres, nil
}
