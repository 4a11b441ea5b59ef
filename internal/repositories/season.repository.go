package repositories

import (
	"context"
	"fmt"
	"watchlist/internal/database"
	"watchlist/internal/logger"
	. "watchlist/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeasonRepository interface {
	UpsertBatch(ctx context.Context, tx *gorm.DB, seasons []*Season) error
	CountForShow(ctx context.Context, showID int, isMovie bool) (int64, error)
	ListForShow(ctx context.Context, showID int, isMovie bool) ([]*Season, error)
}

type seasonRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSeasonRepository(db database.DB) SeasonRepository {
	return &seasonRepository{
		db:  db,
		log: logger.New("seasonRepository"),
	}
}

// coalesceAssignments builds "col = COALESCE(excluded.col, table.col)" update
// expressions so a nil field in the incoming payload never clears a stored
// value.
func coalesceAssignments(table string, columns []string) map[string]any {
	assignments := make(map[string]any, len(columns))
	for _, column := range columns {
		assignments[column] = gorm.Expr(
			fmt.Sprintf("COALESCE(excluded.%s, %s.%s)", column, table, column),
		)
	}
	return assignments
}

func (r *seasonRepository) UpsertBatch(ctx context.Context, tx *gorm.DB, seasons []*Season) error {
	log := r.log.Function("UpsertBatch")

	if len(seasons) == 0 {
		return nil
	}

	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "show_id"}, {Name: "is_movie"}, {Name: "season_number"},
		},
		DoUpdates: clause.Assignments(coalesceAssignments("seasons", SeasonCoalesceColumns())),
	}).Create(&seasons).Error
	if err != nil {
		return log.Err("failed to upsert season batch", err, "count", len(seasons))
	}

	return nil
}

func (r *seasonRepository) CountForShow(
	ctx context.Context,
	showID int,
	isMovie bool,
) (int64, error) {
	log := r.log.Function("CountForShow")

	var count int64
	err := r.db.SQLWithContext(ctx).
		Model(&Season{}).
		Where("show_id = ? AND is_movie = ?", showID, isMovie).
		Count(&count).Error
	if err != nil {
		return 0, log.Err("failed to count seasons", err, "showID", showID, "isMovie", isMovie)
	}

	return count, nil
}

func (r *seasonRepository) ListForShow(
	ctx context.Context,
	showID int,
	isMovie bool,
) ([]*Season, error) {
	log := r.log.Function("ListForShow")

	var seasons []*Season
	err := r.db.SQLWithContext(ctx).
		Where("show_id = ? AND is_movie = ?", showID, isMovie).
		Order("season_number").
		Find(&seasons).Error
	if err != nil {
		return nil, log.Err("failed to list seasons", err, "showID", showID, "isMovie", isMovie)
	}

	return seasons, nil
}
