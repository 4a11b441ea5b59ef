package userController

import (
	"context"
	"errors"
	"watchlist/internal/events"
	"watchlist/internal/logger"
	"watchlist/internal/models"
	"watchlist/internal/repositories"
	"watchlist/internal/services"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrActivityNotFound = errors.New("activity entry not found")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrNotWatching      = errors.New("show is not being watched")
)

// UserController serves profiles, statistics, lists, follows and the
// activity feed.
type UserController struct {
	repos    repositories.Repository
	services services.Service
	eventBus *events.EventBus
	log      logger.Logger
}

type UserControllerInterface interface {
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	GetStatistics(ctx context.Context, username string) (*models.UserStatistics, error)
	GetShowList(ctx context.Context, username string, listType *models.ListType) ([]*repositories.UserShowEntry, error)
	GetActivityFeed(ctx context.Context, userID, limit int) ([]*models.ActivityEntry, error)
	DeleteActivity(ctx context.Context, activityID int64, userID int) error
	Follow(ctx context.Context, userID int, username string) error
	Unfollow(ctx context.Context, userID int, username string) error
	IsFollowing(ctx context.Context, userID int, username string) (bool, error)
	ListFriends(ctx context.Context, userID int) ([]*models.Profile, error)
	IncrementShow(ctx context.Context, userID, showID int, isMovie bool) (*models.UserShow, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
) UserControllerInterface {
	return &UserController{
		repos:    repos,
		services: services,
		eventBus: eventBus,
		log:      logger.New("userController"),
	}
}

func (c *UserController) getByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := c.repos.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (c *UserController) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	user, err := c.getByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile := user.ToProfile()
	return &profile, nil
}

// GetStatistics reads the aggregated watch statistics view. A user with no
// list entries yet gets a zeroed row rather than an error.
func (c *UserController) GetStatistics(
	ctx context.Context,
	username string,
) (*models.UserStatistics, error) {
	user, err := c.getByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	stats, err := c.repos.User.GetStatistics(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserStatistics{UserID: user.ID, Username: user.Username}, nil
		}
		return nil, err
	}
	return stats, nil
}

func (c *UserController) GetShowList(
	ctx context.Context,
	username string,
	listType *models.ListType,
) ([]*repositories.UserShowEntry, error) {
	user, err := c.getByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return c.repos.UserShow.ListForUser(ctx, user.ID, listType)
}

// GetActivityFeed returns the newest entries of the caller and everyone they
// follow.
func (c *UserController) GetActivityFeed(
	ctx context.Context,
	userID, limit int,
) ([]*models.ActivityEntry, error) {
	followingIDs, err := c.repos.UserFollow.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return c.repos.UserActivity.ListForUsers(ctx, append(followingIDs, userID), limit)
}

func (c *UserController) DeleteActivity(ctx context.Context, activityID int64, userID int) error {
	deleted, err := c.repos.UserActivity.DeleteEntry(ctx, activityID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrActivityNotFound
	}
	return nil
}

func (c *UserController) Follow(ctx context.Context, userID int, username string) error {
	target, err := c.getByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target.ID == userID {
		return ErrSelfFollow
	}

	return c.repos.UserFollow.Create(ctx, userID, target.ID)
}

func (c *UserController) Unfollow(ctx context.Context, userID int, username string) error {
	target, err := c.getByUsername(ctx, username)
	if err != nil {
		return err
	}

	return c.repos.UserFollow.Delete(ctx, userID, target.ID)
}

// IsFollowing reports whether the caller already follows the named user.
func (c *UserController) IsFollowing(
	ctx context.Context,
	userID int,
	username string,
) (bool, error) {
	target, err := c.getByUsername(ctx, username)
	if err != nil {
		return false, err
	}

	return c.repos.UserFollow.Exists(ctx, userID, target.ID)
}

func (c *UserController) ListFriends(ctx context.Context, userID int) ([]*models.Profile, error) {
	return c.repos.UserFollow.ListFriends(ctx, userID)
}

// IncrementShow advances progress by one step: the next episode for a series
// (rolling into the next season when the current one runs out), or straight
// to Completed for a movie.
func (c *UserController) IncrementShow(
	ctx context.Context,
	userID, showID int,
	isMovie bool,
) (*models.UserShow, error) {
	log := c.log.Function("IncrementShow")

	entry, err := c.repos.UserShow.Get(ctx, userID, showID, isMovie)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotWatching
		}
		return nil, err
	}

	if isMovie {
		completed := models.ListCompleted
		entry.ListType = &completed
	} else {
		if err := c.advanceEpisode(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err := c.repos.UserShow.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	c.repos.User.InvalidateStatistics(ctx, userID)

	if err := c.eventBus.PublishActivity(userID, entry); err != nil {
		log.Warn("failed to publish activity event", "userID", userID, "error", err)
	}

	return entry, nil
}

func (c *UserController) advanceEpisode(ctx context.Context, entry *models.UserShow) error {
	season := 1
	episode := 0
	if entry.SeasonNumber != nil {
		season = *entry.SeasonNumber
	}
	if entry.EpisodeNumber != nil {
		episode = *entry.EpisodeNumber
	}

	episodes, err := c.repos.Episode.ListForSeason(ctx, entry.ShowID, entry.IsMovie, season)
	if err != nil {
		return err
	}

	if episode+1 <= len(episodes) {
		episode++
	} else {
		// Season exhausted, move to the first episode of the next one if it
		// exists.
		next, err := c.repos.Episode.ListForSeason(ctx, entry.ShowID, entry.IsMovie, season+1)
		if err != nil {
			return err
		}
		if len(next) == 0 {
			completed := models.ListCompleted
			entry.ListType = &completed
			return nil
		}
		season++
		episode = 1
	}

	watching := models.ListWatching
	entry.ListType = &watching
	entry.SeasonNumber = &season
	entry.EpisodeNumber = &episode
	return nil
}
