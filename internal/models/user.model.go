package models

import (
	"regexp"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	mailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type User struct {
	BaseModel
	Username string   `gorm:"type:text;not null;uniqueIndex:idx_users_username" json:"username"`
	Mail     string   `gorm:"type:text;not null;uniqueIndex:idx_users_mail"     json:"mail"`
	Password string   `gorm:"type:text;not null"                                json:"-"`
	Role     UserRole `gorm:"type:text;not null;default:'user'"                 json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if !ValidUsername(u.Username) || !ValidMail(u.Mail) {
		return gorm.ErrInvalidValue
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile is the user shape safe to hand to clients.
type Profile struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Mail     string   `json:"mail"`
	Role     UserRole `json:"role"`
}

func (u *User) ToProfile() Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		Mail:     u.Mail,
		Role:     u.Role,
	}
}

func ValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

func ValidMail(mail string) bool {
	return mailRegex.MatchString(mail)
}
