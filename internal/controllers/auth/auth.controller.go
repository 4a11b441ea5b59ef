package authController

import (
	"context"
	"errors"
	"strconv"
	"time"
	"watchlist/config"
	"watchlist/internal/logger"
	"watchlist/internal/models"
	"watchlist/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const TokenExpiry = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid registration input")
	ErrUserExists         = errors.New("username or mail already taken")
)

// AuthController handles registration, login, and session tokens
type AuthController struct {
	userRepo repositories.UserRepository
	config   config.Config
	log      logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	GetCurrentUser(ctx context.Context, userID int) (*models.User, error)
	ParseToken(token string) (*SessionClaims, error)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the token subject back into a user id.
func (c *SessionClaims) UserID() (int, error) {
	return strconv.Atoi(c.Subject)
}

func New(userRepo repositories.UserRepository, config config.Config) AuthControllerInterface {
	return &AuthController{
		userRepo: userRepo,
		config:   config,
		log:      logger.New("authController"),
	}
}

func (c *AuthController) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	log := c.log.Function("Register")

	if !models.ValidUsername(req.Username) || !models.ValidMail(req.Mail) ||
		len(req.Password) < 8 {
		return nil, ErrInvalidInput
	}

	if _, err := c.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUserExists
	}
	if _, err := c.userRepo.GetByMail(ctx, req.Mail); err == nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	user, err := c.userRepo.Create(ctx, &models.User{
		Username: req.Username,
		Mail:     req.Mail,
		Password: string(hash),
		Role:     models.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	log.Info("user registered", "userID", user.ID, "username", user.Username)
	return c.buildAuthResult(user)
}

func (c *AuthController) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	log := c.log.Function("Login")

	user, err := c.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	log.Info("user logged in", "userID", user.ID)
	return c.buildAuthResult(user)
}

func (c *AuthController) GetCurrentUser(ctx context.Context, userID int) (*models.User, error) {
	return c.userRepo.GetByID(ctx, userID)
}

func (c *AuthController) buildAuthResult(user *models.User) (*AuthResult, error) {
	log := c.log.Function("buildAuthResult")

	now := time.Now()
	claims := SessionClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(c.config.JWTSecret))
	if err != nil {
		return nil, log.Err("failed to sign session token", err, "userID", user.ID)
	}

	return &AuthResult{
		Token:   token,
		Profile: user.ToProfile(),
	}, nil
}

// ParseToken validates a session token and returns its claims.
func (c *AuthController) ParseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(c.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
