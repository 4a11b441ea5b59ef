package authController

import (
	"context"
	"testing"
	"watchlist/config"
	"watchlist/internal/models"

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

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

func TestAuthController_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects bad input before touching the database", func(t *testing.T) {
		tests := []struct {
			name string
			req  RegisterRequest
		}{
			{"short username", RegisterRequest{Username: "ab", Mail: "a@b.com", Password: "password1"}},
			{"bad mail", RegisterRequest{Username: "validuser", Mail: "not-a-mail", Password: "password1"}},
			{"short password", RegisterRequest{Username: "validuser", Mail: "a@b.com", Password: "short"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				userRepo := new(MockUserRepository)
				controller := New(userRepo, testConfig())

				_, err := controller.Register(ctx, tt.req)

				assert.ErrorIs(t, err, ErrInvalidInput)
				userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("rejects taken username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", ctx, "taken").
			Return(&models.User{BaseModel: models.BaseModel{ID: 1}, Username: "taken"}, nil)

		controller := New(userRepo, testConfig())
		_, err := controller.Register(ctx, RegisterRequest{
			Username: "taken", Mail: "new@example.com", Password: "password1",
		})

		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("registers and returns a usable token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", ctx, "newuser").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("GetByMail", ctx, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", ctx, mock.MatchedBy(func(user *models.User) bool {
			return user.Username == "newuser" && user.Role == models.RoleUser &&
				bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password1")) == nil
		})).Return(&models.User{
			BaseModel: models.BaseModel{ID: 7},
			Username:  "newuser",
			Mail:      "new@example.com",
			Role:      models.RoleUser,
		}, nil)

		controller := New(userRepo, testConfig())
		result, err := controller.Register(ctx, RegisterRequest{
			Username: "newuser", Mail: "new@example.com", Password: "password1",
		})

		require.NoError(t, err)
		assert.Equal(t, "newuser", result.Profile.Username)

		claims, err := controller.ParseToken(result.Token)
		require.NoError(t, err)
		userID, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, 7, userID)
		assert.Equal(t, string(models.RoleUser), claims.Role)
	})
}

func TestAuthController_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		BaseModel: models.BaseModel{ID: 7},
		Username:  "newuser",
		Mail:      "new@example.com",
		Password:  string(hash),
		Role:      models.RoleUser,
	}

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", ctx, "newuser").Return(storedUser, nil)

		controller := New(userRepo, testConfig())
		result, err := controller.Login(ctx, LoginRequest{Username: "newuser", Password: "password1"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, 7, result.Profile.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", ctx, "newuser").Return(storedUser, nil)

		controller := New(userRepo, testConfig())
		_, err := controller.Login(ctx, LoginRequest{Username: "newuser", Password: "wrong"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username does not leak existence", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		controller := New(userRepo, testConfig())
		_, err := controller.Login(ctx, LoginRequest{Username: "ghost", Password: "password1"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthController_ParseToken(t *testing.T) {
	controller := New(new(MockUserRepository), testConfig())

	t.Run("garbage token", func(t *testing.T) {
		_, err := controller.ParseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := New(new(MockUserRepository), config.Config{JWTSecret: "other-secret"})
		otherImpl := other.(*AuthController)
		result, err := otherImpl.buildAuthResult(&models.User{
			BaseModel: models.BaseModel{ID: 1},
			Username:  "intruder",
			Role:      models.RoleUser,
		})
		require.NoError(t, err)

		_, err = controller.ParseToken(result.Token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
