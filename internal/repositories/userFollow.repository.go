package repositories

import (
	"context"
	"watchlist/internal/database"
	"watchlist/internal/logger"
	. "watchlist/internal/models"

	"gorm.io/gorm/clause"
)

type UserFollowRepository interface {
	Create(ctx context.Context, userID, followID int) error
	Delete(ctx context.Context, userID, followID int) error
	Exists(ctx context.Context, userID, followID int) (bool, error)
	GetFollowingIDs(ctx context.Context, userID int) ([]int, error)
	GetFollowerIDs(ctx context.Context, userID int) ([]int, error)
	ListFriends(ctx context.Context, userID int) ([]*Profile, error)
}

type userFollowRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserFollowRepository(db database.DB) UserFollowRepository {
	return &userFollowRepository{
		db:  db,
		log: logger.New("userFollowRepository"),
	}
}

func (r *userFollowRepository) Create(ctx context.Context, userID, followID int) error {
	log := r.log.Function("Create")

	follow := &UserFollow{UserID: userID, FollowID: followID}
	err := r.db.SQLWithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
	if err != nil {
		return log.Err("failed to create follow", err, "userID", userID, "followID", followID)
	}

	return nil
}

func (r *userFollowRepository) Delete(ctx context.Context, userID, followID int) error {
	log := r.log.Function("Delete")

	err := r.db.SQLWithContext(ctx).
		Delete(&UserFollow{}, "user_id = ? AND follow_id = ?", userID, followID).Error
	if err != nil {
		return log.Err("failed to delete follow", err, "userID", userID, "followID", followID)
	}

	return nil
}

func (r *userFollowRepository) Exists(ctx context.Context, userID, followID int) (bool, error) {
	log := r.log.Function("Exists")

	var count int64
	err := r.db.SQLWithContext(ctx).
		Model(&UserFollow{}).
		Where("user_id = ? AND follow_id = ?", userID, followID).
		Count(&count).Error
	if err != nil {
		return false, log.Err("failed to check follow", err, "userID", userID, "followID", followID)
	}

	return count > 0, nil
}

// GetFollowingIDs returns the ids of everyone userID follows.
func (r *userFollowRepository) GetFollowingIDs(ctx context.Context, userID int) ([]int, error) {
	log := r.log.Function("GetFollowingIDs")

	var ids []int
	err := r.db.SQLWithContext(ctx).
		Model(&UserFollow{}).
		Where("user_id = ?", userID).
		Pluck("follow_id", &ids).Error
	if err != nil {
		return nil, log.Err("failed to get following ids", err, "userID", userID)
	}

	return ids, nil
}

// GetFollowerIDs returns the ids of everyone following userID.
func (r *userFollowRepository) GetFollowerIDs(ctx context.Context, userID int) ([]int, error) {
	log := r.log.Function("GetFollowerIDs")

	var ids []int
	err := r.db.SQLWithContext(ctx).
		Model(&UserFollow{}).
		Where("follow_id = ?", userID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, log.Err("failed to get follower ids", err, "userID", userID)
	}

	return ids, nil
}

// ListFriends returns profiles of users with a mutual follow relationship.
func (r *userFollowRepository) ListFriends(ctx context.Context, userID int) ([]*Profile, error) {
	log := r.log.Function("ListFriends")

	var friends []*Profile
	err := r.db.SQLWithContext(ctx).
		Table("users").
		Select("users.id, users.username").
		Joins("JOIN user_follows outgoing ON outgoing.follow_id = users.id AND outgoing.user_id = ?", userID).
		Joins("JOIN user_follows incoming ON incoming.user_id = users.id AND incoming.follow_id = ?", userID).
		Order("users.username").
		Scan(&friends).Error
	if err != nil {
		return nil, log.Err("failed to list friends", err, "userID", userID)
	}

	return friends, nil
}
