package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"
	"watchlist/internal/database"
	"watchlist/internal/logger"
	. "watchlist/internal/models"

	"gorm.io/gorm"
)

const (
	USER_STATS_CACHE_PREFIX = "user_stats:"
	USER_STATS_CACHE_EXPIRY = 15 * time.Minute
)

type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	GetByMail(ctx context.Context, mail string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int) error
	GetStatistics(ctx context.Context, userID int) (*UserStatistics, error)
	InvalidateStatistics(ctx context.Context, userID int)
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *User) (*User, error) {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return nil, log.Err("failed to create user", err, "username", user.Username)
	}

	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get user by ID", err, "id", id)
	}

	return &user, nil
}

func (r *userRepository) GetByMail(ctx context.Context, mail string) (*User, error) {
	log := r.log.Function("GetByMail")

	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "mail = ?", mail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get user by mail", err, "mail", mail)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	log := r.log.Function("GetByUsername")

	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get user by username", err, "username", username)
	}

	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]*User, error) {
	log := r.log.Function("GetAll")

	var users []*User
	if err := r.db.SQLWithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, log.Err("failed to get all users", err)
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "id", user.ID)
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).Unscoped().Delete(&User{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete user", err, "id", id)
	}

	r.InvalidateStatistics(ctx, id)

	return nil
}

// GetStatistics reads the user's row from the user_statistics view, serving
// from cache when a fresh copy exists.
func (r *userRepository) GetStatistics(ctx context.Context, userID int) (*UserStatistics, error) {
	log := r.log.Function("GetStatistics")

	cacheKey := USER_STATS_CACHE_PREFIX + strconv.Itoa(userID)

	var stats UserStatistics
	found, err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithContext(ctx).
		Get(&stats)
	if err != nil {
		log.Warn("failed to read statistics cache", "userID", userID, "error", err)
	}
	if found {
		return &stats, nil
	}

	err = r.db.SQLWithContext(ctx).First(&stats, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get user statistics", err, "userID", userID)
	}

	if err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithContext(ctx).
		WithStruct(&stats).
		WithTTL(USER_STATS_CACHE_EXPIRY).
		Set(); err != nil {
		log.Warn("failed to cache user statistics", "userID", userID, "error", err)
	}

	return &stats, nil
}

// InvalidateStatistics drops the cached view row after a list mutation so the
// next read recomputes it. Cache errors are logged, never surfaced.
func (r *userRepository) InvalidateStatistics(ctx context.Context, userID int) {
	log := r.log.Function("InvalidateStatistics")

	cacheKey := USER_STATS_CACHE_PREFIX + strconv.Itoa(userID)
	if err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithContext(ctx).
		Delete(); err != nil {
		log.Warn("failed to invalidate statistics cache", "userID", userID, "error", err)
	}
}
