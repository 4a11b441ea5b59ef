package adminController

import (
	"context"
	"testing"
	"watchlist/internal/models"
	"watchlist/internal/repositories"
	"watchlist/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

func TestAdminController_ListUsers(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("GetAll", ctx).Return([]*models.User{
		{BaseModel: models.BaseModel{ID: 1}, Username: "admin", Role: models.RoleAdmin},
		{BaseModel: models.BaseModel{ID: 2}, Username: "alice", Role: models.RoleUser},
	}, nil)

	controller := New(repositories.Repository{User: userRepo}, services.Service{})
	profiles, err := controller.ListUsers(ctx)

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "admin", profiles[0].Username)
	assert.Equal(t, models.RoleUser, profiles[1].Role)
}

func TestAdminController_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name string
			req  CreateUserRequest
		}{
			{"bad username", CreateUserRequest{Username: "a b", Mail: "a@b.com", Password: "password1"}},
			{"bad mail", CreateUserRequest{Username: "newuser", Mail: "nope", Password: "password1"}},
			{"short password", CreateUserRequest{Username: "newuser", Mail: "a@b.com", Password: "short"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				controller := New(repositories.Repository{}, services.Service{})

				_, err := controller.CreateUser(ctx, tt.req)

				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})

	t.Run("defaults to the user role", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("Create", ctx, mock.MatchedBy(func(user *models.User) bool {
			return user.Role == models.RoleUser &&
				bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password1")) == nil
		})).Return(&models.User{
			BaseModel: models.BaseModel{ID: 4},
			Username:  "newuser",
			Role:      models.RoleUser,
		}, nil)

		controller := New(repositories.Repository{User: userRepo}, services.Service{})
		profile, err := controller.CreateUser(ctx, CreateUserRequest{
			Username: "newuser", Mail: "new@example.com", Password: "password1",
		})

		require.NoError(t, err)
		assert.Equal(t, 4, profile.ID)
		userRepo.AssertExpectations(t)
	})
}

func TestAdminController_UpdateUser(t *testing.T) {
	ctx := context.Background()

	storedUser := func() *models.User {
		return &models.User{
			BaseModel: models.BaseModel{ID: 4},
			Username:  "alice",
			Mail:      "alice@example.com",
			Role:      models.RoleUser,
		}
	}

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", ctx, 99).Return(nil, gorm.ErrRecordNotFound)

		controller := New(repositories.Repository{User: userRepo}, services.Service{})
		_, err := controller.UpdateUser(ctx, 99, UpdateUserRequest{})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("invalid mail is rejected before writing", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", ctx, 4).Return(storedUser(), nil)
		badMail := "nope"

		controller := New(repositories.Repository{User: userRepo}, services.Service{})
		_, err := controller.UpdateUser(ctx, 4, UpdateUserRequest{Mail: &badMail})

		assert.ErrorIs(t, err, ErrInvalidInput)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", ctx, 4).Return(storedUser(), nil)
		badRole := models.UserRole("owner")

		controller := New(repositories.Repository{User: userRepo}, services.Service{})
		_, err := controller.UpdateUser(ctx, 4, UpdateUserRequest{Role: &badRole})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("promotes to admin", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", ctx, 4).Return(storedUser(), nil)
		userRepo.On("Update", ctx, mock.MatchedBy(func(user *models.User) bool {
			return user.Role == models.RoleAdmin
		})).Return(nil)
		adminRole := models.RoleAdmin

		controller := New(repositories.Repository{User: userRepo}, services.Service{})
		profile, err := controller.UpdateUser(ctx, 4, UpdateUserRequest{Role: &adminRole})

		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, profile.Role)
		userRepo.AssertExpectations(t)
	})
}

func TestAdminController_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", ctx, 99).Return(nil, gorm.ErrRecordNotFound)

		controller := New(repositories.Repository{User: userRepo}, services.Service{})
		err := controller.DeleteUser(ctx, 99)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("existing user deletes", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", ctx, 4).Return(&models.User{BaseModel: models.BaseModel{ID: 4}}, nil)
		userRepo.On("Delete", ctx, 4).Return(nil)

		controller := New(repositories.Repository{User: userRepo}, services.Service{})
		err := controller.DeleteUser(ctx, 4)

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}
