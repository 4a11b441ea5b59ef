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

type UserShowRepository interface {
	Upsert(ctx context.Context, entry *UserShow) error
	Get(ctx context.Context, userID, showID int, isMovie bool) (*UserShow, error)
	ListForUser(ctx context.Context, userID int, listType *ListType) ([]*UserShowEntry, error)
	Delete(ctx context.Context, userID, showID int, isMovie bool) error
}

// UserShowEntry is a list row joined with its show for client display.
type UserShowEntry struct {
	UserShow
	Title            *string `json:"title"`
	PosterPath       *string `json:"posterPath"`
	NumberOfEpisodes *int    `json:"numberOfEpisodes"`
	NumberOfSeasons  *int    `json:"numberOfSeasons"`
	Runtime          *int    `json:"runtime"`
}

type userShowRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserShowRepository(db database.DB) UserShowRepository {
	return &userShowRepository{
		db:  db,
		log: logger.New("userShowRepository"),
	}
}

// Upsert writes the full list entry, replacing any previous state for the
// same (user, show) pair.
func (r *userShowRepository) Upsert(ctx context.Context, entry *UserShow) error {
	log := r.log.Function("Upsert")

	err := r.db.SQLWithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "show_id"}, {Name: "is_movie"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"list_type", "season_number", "episode_number", "score", "updated_at",
		}),
	}).Create(entry).Error
	if err != nil {
		return log.Err("failed to upsert user show", err,
			"userID", entry.UserID, "showID", entry.ShowID, "isMovie", entry.IsMovie)
	}

	return nil
}

func (r *userShowRepository) Get(
	ctx context.Context,
	userID, showID int,
	isMovie bool,
) (*UserShow, error) {
	log := r.log.Function("Get")

	var entry UserShow
	err := r.db.SQLWithContext(ctx).
		First(&entry, "user_id = ? AND show_id = ? AND is_movie = ?", userID, showID, isMovie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get user show", err,
			"userID", userID, "showID", showID, "isMovie", isMovie)
	}

	return &entry, nil
}

func (r *userShowRepository) ListForUser(
	ctx context.Context,
	userID int,
	listType *ListType,
) ([]*UserShowEntry, error) {
	log := r.log.Function("ListForUser")

	query := r.db.SQLWithContext(ctx).
		Model(&UserShow{}).
		Select("user_shows.*, shows.title, shows.poster_path, shows.number_of_episodes, shows.number_of_seasons, shows.runtime").
		Joins("JOIN shows ON shows.show_id = user_shows.show_id AND shows.is_movie = user_shows.is_movie").
		Where("user_shows.user_id = ?", userID)

	if listType != nil {
		query = query.Where("user_shows.list_type = ?", *listType)
	}

	var entries []*UserShowEntry
	if err := query.Order("user_shows.updated_at DESC").Find(&entries).Error; err != nil {
		return nil, log.Err("failed to list user shows", err, "userID", userID)
	}

	return entries, nil
}

func (r *userShowRepository) Delete(ctx context.Context, userID, showID int, isMovie bool) error {
	log := r.log.Function("Delete")

	err := r.db.SQLWithContext(ctx).
		Delete(&UserShow{}, "user_id = ? AND show_id = ? AND is_movie = ?", userID, showID, isMovie).Error
	if err != nil {
		return log.Err("failed to delete user show", err,
			"userID", userID, "showID", showID, "isMovie", isMovie)
	}

	return nil
}
