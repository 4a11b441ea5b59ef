package userController

import (
	"context"
	"testing"
	"watchlist/internal/models"
	"watchlist/internal/repositories"
	"watchlist/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByMail(ctx context.Context, mail string) (*models.User, error) {
	args := m.Called(ctx, mail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) GetStatistics(ctx context.Context, userID int) (*models.UserStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStatistics), args.Error(1)
}

func (m *MockUserRepository) InvalidateStatistics(ctx context.Context, userID int) {
	m.Called(ctx, userID)
}

type MockUserFollowRepository struct {
	mock.Mock
}

func (m *MockUserFollowRepository) Create(ctx context.Context, userID, followID int) error {
	args := m.Called(ctx, userID, followID)
	return args.Error(0)
}

func (m *MockUserFollowRepository) Delete(ctx context.Context, userID, followID int) error {
	args := m.Called(ctx, userID, followID)
	return args.Error(0)
}

func (m *MockUserFollowRepository) Exists(ctx context.Context, userID, followID int) (bool, error) {
	args := m.Called(ctx, userID, followID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserFollowRepository) GetFollowingIDs(ctx context.Context, userID int) ([]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockUserFollowRepository) GetFollowerIDs(ctx context.Context, userID int) ([]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockUserFollowRepository) ListFriends(ctx context.Context, userID int) ([]*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

type MockUserActivityRepository struct {
	mock.Mock
}

func (m *MockUserActivityRepository) ListForUsers(ctx context.Context, userIDs []int, limit int) ([]*models.ActivityEntry, error) {
	args := m.Called(ctx, userIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ActivityEntry), args.Error(1)
}

func (m *MockUserActivityRepository) GetEntry(ctx context.Context, activityID int64) (*models.ActivityEntry, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActivityEntry), args.Error(1)
}

func (m *MockUserActivityRepository) DeleteEntry(ctx context.Context, activityID int64, userID int) (bool, error) {
	args := m.Called(ctx, activityID, userID)
	return args.Bool(0), args.Error(1)
}

func newTestController(repos repositories.Repository) UserControllerInterface {
	return New(repos, services.Service{}, nil)
}

func TestUserController_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("known user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", ctx, "alice").Return(&models.User{
			BaseModel: models.BaseModel{ID: 3},
			Username:  "alice",
			Mail:      "alice@example.com",
		}, nil)

		controller := newTestController(repositories.Repository{User: userRepo})
		profile, err := controller.GetProfile(ctx, "alice")

		require.NoError(t, err)
		assert.Equal(t, 3, profile.ID)
		assert.Equal(t, "alice", profile.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		controller := newTestController(repositories.Repository{User: userRepo})
		_, err := controller.GetProfile(ctx, "ghost")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserController_GetStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("user with no list entries gets a zeroed row", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", ctx, "alice").Return(&models.User{
			BaseModel: models.BaseModel{ID: 3},
			Username:  "alice",
		}, nil)
		userRepo.On("GetStatistics", ctx, 3).Return(nil, gorm.ErrRecordNotFound)

		controller := newTestController(repositories.Repository{User: userRepo})
		stats, err := controller.GetStatistics(ctx, "alice")

		require.NoError(t, err)
		assert.Equal(t, 3, stats.UserID)
		assert.Equal(t, "alice", stats.Username)
		assert.Zero(t, stats.TotalEntries)
	})

	t.Run("existing statistics pass through", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", ctx, "alice").Return(&models.User{
			BaseModel: models.BaseModel{ID: 3},
			Username:  "alice",
		}, nil)
		userRepo.On("GetStatistics", ctx, 3).Return(&models.UserStatistics{
			UserID:       3,
			Username:     "alice",
			TotalEntries: 12,
		}, nil)

		controller := newTestController(repositories.Repository{User: userRepo})
		stats, err := controller.GetStatistics(ctx, "alice")

		require.NoError(t, err)
		assert.Equal(t, 12, stats.TotalEntries)
	})
}

func TestUserController_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("cannot follow yourself", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		followRepo := new(MockUserFollowRepository)
		userRepo.On("GetByUsername", ctx, "alice").Return(&models.User{
			BaseModel: models.BaseModel{ID: 3},
			Username:  "alice",
		}, nil)

		controller := newTestController(repositories.Repository{User: userRepo, UserFollow: followRepo})
		err := controller.Follow(ctx, 3, "alice")

		assert.ErrorIs(t, err, ErrSelfFollow)
		followRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("follows another user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		followRepo := new(MockUserFollowRepository)
		userRepo.On("GetByUsername", ctx, "bob").Return(&models.User{
			BaseModel: models.BaseModel{ID: 5},
			Username:  "bob",
		}, nil)
		followRepo.On("Create", ctx, 3, 5).Return(nil)

		controller := newTestController(repositories.Repository{User: userRepo, UserFollow: followRepo})
		err := controller.Follow(ctx, 3, "bob")

		assert.NoError(t, err)
		followRepo.AssertExpectations(t)
	})
}

func TestUserController_IsFollowing(t *testing.T) {
	ctx := context.Background()

	t.Run("reports an existing follow", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		followRepo := new(MockUserFollowRepository)
		userRepo.On("GetByUsername", ctx, "bob").Return(&models.User{
			BaseModel: models.BaseModel{ID: 5},
			Username:  "bob",
		}, nil)
		followRepo.On("Exists", ctx, 3, 5).Return(true, nil)

		controller := newTestController(repositories.Repository{User: userRepo, UserFollow: followRepo})
		follows, err := controller.IsFollowing(ctx, 3, "bob")

		require.NoError(t, err)
		assert.True(t, follows)
	})

	t.Run("reports a missing follow", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		followRepo := new(MockUserFollowRepository)
		userRepo.On("GetByUsername", ctx, "bob").Return(&models.User{
			BaseModel: models.BaseModel{ID: 5},
			Username:  "bob",
		}, nil)
		followRepo.On("Exists", ctx, 3, 5).Return(false, nil)

		controller := newTestController(repositories.Repository{User: userRepo, UserFollow: followRepo})
		follows, err := controller.IsFollowing(ctx, 3, "bob")

		require.NoError(t, err)
		assert.False(t, follows)
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		controller := newTestController(repositories.Repository{User: userRepo})
		_, err := controller.IsFollowing(ctx, 3, "ghost")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserController_GetActivityFeed(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	followRepo := new(MockUserFollowRepository)
	activityRepo := new(MockUserActivityRepository)

	followRepo.On("GetFollowingIDs", ctx, 3).Return([]int{5, 7}, nil)
	activityRepo.On("ListForUsers", ctx, []int{5, 7, 3}, 50).
		Return([]*models.ActivityEntry{{ActivityID: 1}}, nil)

	controller := newTestController(repositories.Repository{
		User:         userRepo,
		UserFollow:   followRepo,
		UserActivity: activityRepo,
	})
	feed, err := controller.GetActivityFeed(ctx, 3, 50)

	require.NoError(t, err)
	require.Len(t, feed, 1)
	activityRepo.AssertExpectations(t)
}

func TestUserController_DeleteActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting someone else's entry reports not found", func(t *testing.T) {
		activityRepo := new(MockUserActivityRepository)
		activityRepo.On("DeleteEntry", ctx, int64(9), 3).Return(false, nil)

		controller := newTestController(repositories.Repository{UserActivity: activityRepo})
		err := controller.DeleteActivity(ctx, 9, 3)

		assert.ErrorIs(t, err, ErrActivityNotFound)
	})

	t.Run("own entry deletes", func(t *testing.T) {
		activityRepo := new(MockUserActivityRepository)
		activityRepo.On("DeleteEntry", ctx, int64(9), 3).Return(true, nil)

		controller := newTestController(repositories.Repository{UserActivity: activityRepo})
		err := controller.DeleteActivity(ctx, 9, 3)

		assert.NoError(t, err)
	})
}
