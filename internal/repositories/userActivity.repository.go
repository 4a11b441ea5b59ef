package repositories

import (
	"context"
	"watchlist/internal/database"
	"watchlist/internal/logger"
	. "watchlist/internal/models"
)

const DefaultActivityLimit = 50

type UserActivityRepository interface {
	ListForUsers(ctx context.Context, userIDs []int, limit int) ([]*ActivityEntry, error)
	GetEntry(ctx context.Context, activityID int64) (*ActivityEntry, error)
	DeleteEntry(ctx context.Context, activityID int64, userID int) (bool, error)
}

type userActivityRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserActivityRepository(db database.DB) UserActivityRepository {
	return &userActivityRepository{
		db:  db,
		log: logger.New("userActivityRepository"),
	}
}

const activityEntrySelect = `
	user_activity.activity_id,
	users.username,
	user_activity.show_id,
	CASE WHEN user_activity.is_movie THEN 'movie' ELSE 'tv' END AS type,
	user_activity.date,
	user_activity.list_type,
	user_activity.season AS season_number,
	user_activity.episode AS episode_number,
	COALESCE(episodes.still_path, shows.poster_path) AS image_path,
	seasons.name AS season_name,
	episodes.name AS episode_name,
	shows.title AS show_name`

// ListForUsers returns the newest activity entries for the given users,
// joined with show, season and episode display data. The caller passes the
// viewer's own id plus everyone they follow to build a feed.
func (r *userActivityRepository) ListForUsers(
	ctx context.Context,
	userIDs []int,
	limit int,
) ([]*ActivityEntry, error) {
	log := r.log.Function("ListForUsers")

	if len(userIDs) == 0 {
		return []*ActivityEntry{}, nil
	}
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	var entries []*ActivityEntry
	err := r.db.SQLWithContext(ctx).
		Table("user_activity").
		Select(activityEntrySelect).
		Joins("JOIN users ON users.id = user_activity.user_id").
		Joins("JOIN shows ON shows.show_id = user_activity.show_id AND shows.is_movie = user_activity.is_movie").
		Joins("LEFT JOIN seasons ON seasons.show_id = user_activity.show_id AND seasons.is_movie = user_activity.is_movie AND seasons.season_number = user_activity.season").
		Joins("LEFT JOIN episodes ON episodes.show_id = user_activity.show_id AND episodes.is_movie = user_activity.is_movie AND episodes.season_number = user_activity.season AND episodes.episode_number = user_activity.episode").
		Where("user_activity.user_id IN ?", userIDs).
		Order("user_activity.date DESC, user_activity.activity_id DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, log.Err("failed to list user activity", err, "userCount", len(userIDs))
	}

	return entries, nil
}

func (r *userActivityRepository) GetEntry(
	ctx context.Context,
	activityID int64,
) (*ActivityEntry, error) {
	log := r.log.Function("GetEntry")

	var entries []*ActivityEntry
	err := r.db.SQLWithContext(ctx).
		Table("user_activity").
		Select(activityEntrySelect).
		Joins("JOIN users ON users.id = user_activity.user_id").
		Joins("JOIN shows ON shows.show_id = user_activity.show_id AND shows.is_movie = user_activity.is_movie").
		Joins("LEFT JOIN seasons ON seasons.show_id = user_activity.show_id AND seasons.is_movie = user_activity.is_movie AND seasons.season_number = user_activity.season").
		Joins("LEFT JOIN episodes ON episodes.show_id = user_activity.show_id AND episodes.is_movie = user_activity.is_movie AND episodes.season_number = user_activity.season AND episodes.episode_number = user_activity.episode").
		Where("user_activity.activity_id = ?", activityID).
		Limit(1).
		Scan(&entries).Error
	if err != nil {
		return nil, log.Err("failed to get activity entry", err, "activityID", activityID)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	return entries[0], nil
}

// DeleteEntry removes one activity row, but only when it belongs to the
// requesting user. Returns whether a row was deleted.
func (r *userActivityRepository) DeleteEntry(
	ctx context.Context,
	activityID int64,
	userID int,
) (bool, error) {
	log := r.log.Function("DeleteEntry")

	result := r.db.SQLWithContext(ctx).
		Delete(&UserActivity{}, "activity_id = ? AND user_id = ?", activityID, userID)
	if result.Error != nil {
		return false, log.Err("failed to delete activity entry", result.Error,
			"activityID", activityID, "userID", userID)
	}

	return result.RowsAffected > 0, nil
}
