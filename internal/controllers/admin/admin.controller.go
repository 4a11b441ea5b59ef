package adminController

import (
	"context"
	"errors"
	"watchlist/internal/logger"
	"watchlist/internal/models"
	"watchlist/internal/repositories"
	"watchlist/internal/services"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const preloadPages = 3

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid user input")
)

// AdminController covers user administration and catalog maintenance.
type AdminController struct {
	repos    repositories.Repository
	services services.Service
	log      logger.Logger
}

type AdminControllerInterface interface {
	ListUsers(ctx context.Context) ([]models.Profile, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.Profile, error)
	UpdateUser(ctx context.Context, userID int, req UpdateUserRequest) (*models.Profile, error)
	DeleteUser(ctx context.Context, userID int) error
	PreloadShows(ctx context.Context) (*PreloadResult, error)
	PurgeShows(ctx context.Context) error
}

type CreateUserRequest struct {
	Username string          `json:"username"`
	Mail     string          `json:"mail"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

type UpdateUserRequest struct {
	Mail     *string          `json:"mail"`
	Password *string          `json:"password"`
	Role     *models.UserRole `json:"role"`
}

type PreloadResult struct {
	Requested int `json:"requested"`
	Ingested  int `json:"ingested"`
	Failed    int `json:"failed"`
}

func New(repos repositories.Repository, services services.Service) AdminControllerInterface {
	return &AdminController{
		repos:    repos,
		services: services,
		log:      logger.New("adminController"),
	}
}

func (c *AdminController) ListUsers(ctx context.Context) ([]models.Profile, error) {
	users, err := c.repos.User.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, len(users))
	for i, user := range users {
		profiles[i] = user.ToProfile()
	}
	return profiles, nil
}

func (c *AdminController) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*models.Profile, error) {
	log := c.log.Function("CreateUser")

	if !models.ValidUsername(req.Username) || !models.ValidMail(req.Mail) ||
		len(req.Password) < 8 {
		return nil, ErrInvalidInput
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	user, err := c.repos.User.Create(ctx, &models.User{
		Username: req.Username,
		Mail:     req.Mail,
		Password: string(hash),
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	log.Info("user created by admin", "userID", user.ID, "username", user.Username)
	profile := user.ToProfile()
	return &profile, nil
}

func (c *AdminController) UpdateUser(
	ctx context.Context,
	userID int,
	req UpdateUserRequest,
) (*models.Profile, error) {
	log := c.log.Function("UpdateUser")

	user, err := c.repos.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Mail != nil {
		if !models.ValidMail(*req.Mail) {
			return nil, ErrInvalidInput
		}
		user.Mail = *req.Mail
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, log.Err("failed to hash password", err)
		}
		user.Password = string(hash)
	}
	if req.Role != nil {
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			return nil, ErrInvalidInput
		}
		user.Role = *req.Role
	}

	if err := c.repos.User.Update(ctx, user); err != nil {
		return nil, err
	}

	profile := user.ToProfile()
	return &profile, nil
}

func (c *AdminController) DeleteUser(ctx context.Context, userID int) error {
	if _, err := c.repos.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return c.repos.User.Delete(ctx, userID)
}

// PreloadShows seeds the catalog with the currently popular movies and
// series. Individual failures are counted, not fatal.
func (c *AdminController) PreloadShows(ctx context.Context) (*PreloadResult, error) {
	log := c.log.Function("PreloadShows")

	result := &PreloadResult{}
	for _, isMovie := range []bool{false, true} {
		for page := 1; page <= preloadPages; page++ {
			discovered, err := c.services.TMDB.Discover(ctx, isMovie, page)
			if err != nil {
				return nil, log.Err("failed to discover shows", err,
					"isMovie", isMovie, "page", page)
			}

			for _, item := range discovered.Results {
				result.Requested++
				if err := c.services.Ingest.IngestShow(ctx, item.ID, isMovie); err != nil {
					result.Failed++
					log.Warn("failed to preload show",
						"showID", item.ID, "isMovie", isMovie, "error", err)
					continue
				}
				result.Ingested++
			}
		}
	}

	log.Info("catalog preload finished",
		"requested", result.Requested, "ingested", result.Ingested, "failed", result.Failed)
	return result, nil
}

// PurgeShows deletes the whole catalog. Seasons, episodes, genre links, list
// entries and activity rows cascade away with it.
func (c *AdminController) PurgeShows(ctx context.Context) error {
	log := c.log.Function("PurgeShows")

	err := c.services.Transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.repos.Show.DeleteAll(ctx, tx)
	})
	if err != nil {
		return err
	}

	log.Info("catalog purged")
	return nil
}
