package initialize

import (
	"watchlist/config"
	"watchlist/internal/logger"
	. "watchlist/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeAdminUser(db, config, log); err != nil {
		return log.Err("failed to initialize admin user", err)
	}

	log.Info("Table initialization complete")
	return nil
}

func initializeAdminUser(db *gorm.DB, config config.Config, log logger.Logger) error {
	if config.AdminMail == "" || config.AdminPassword == "" {
		log.Info("Admin credentials not configured, skipping admin user")
		return nil
	}

	var existingUser User
	if err := db.First(&existingUser, "mail = ?", config.AdminMail).Error; err == nil {
		log.Debug("Admin user already exists", "mail", config.AdminMail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash admin password", err)
	}

	admin := User{
		Username: "admin",
		Mail:     config.AdminMail,
		Password: string(hash),
		Role:     RoleAdmin,
	}

	log.Info("Creating admin user", "mail", config.AdminMail)
	if err := db.Create(&admin).Error; err != nil {
		return log.Err("failed to create admin user", err, "mail", config.AdminMail)
	}

	return nil
}
