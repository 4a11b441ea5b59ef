package seed

import (
	"watchlist/config"
	"watchlist/internal/logger"
	. "watchlist/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []User{
		{
			Username: "testuser",
			Mail:     "test@example.com",
			Password: "password",
			Role:     RoleUser,
		},
		{
			Username: "ada",
			Mail:     "ada.lovelace@example.com",
			Password: "password",
			Role:     RoleUser,
		},
		{
			Username: "grace",
			Mail:     "grace.hopper@example.com",
			Password: "password",
			Role:     RoleUser,
		},
	}

	created := make(map[string]int, len(users))
	for _, user := range users {
		var existingUser User
		if err := db.First(&existingUser, "username = ?", user.Username).Error; err == nil {
			log.Debug("User already exists", "username", user.Username)
			created[user.Username] = existingUser.ID
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return log.Err("failed to hash seed password", err, "username", user.Username)
		}
		user.Password = string(hash)

		log.Info("Seeding user", "username", user.Username)
		if err := db.Create(&user).Error; err != nil {
			return log.Err("failed to create user", err, "username", user.Username)
		}
		created[user.Username] = user.ID
	}

	follows := []UserFollow{
		{UserID: created["testuser"], FollowID: created["ada"]},
		{UserID: created["ada"], FollowID: created["testuser"]},
		{UserID: created["grace"], FollowID: created["ada"]},
	}
	for _, follow := range follows {
		if err := db.Where(
			"user_id = ? AND follow_id = ?", follow.UserID, follow.FollowID,
		).FirstOrCreate(&follow).Error; err != nil {
			return log.Err("failed to seed follow", err, "userID", follow.UserID, "followID", follow.FollowID)
		}
	}

	return nil
}
