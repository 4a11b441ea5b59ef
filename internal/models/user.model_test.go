package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"simple", "alice", true},
		{"with digits and underscore", "alice_42", true},
		{"minimum length", "abc", true},
		{"too short", "ab", false},
		{"too long", "a123456789012345678901234567890", false},
		{"spaces", "alice smith", false},
		{"special characters", "alice!", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidUsername(tt.username))
		})
	}
}

func TestValidMail(t *testing.T) {
	tests := []struct {
		name string
		mail string
		want bool
	}{
		{"simple", "alice@example.com", true},
		{"subdomain", "alice@mail.example.co.uk", true},
		{"plus tag", "alice+tag@example.com", true},
		{"missing at", "alice.example.com", false},
		{"missing tld", "alice@example", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidMail(tt.mail))
		})
	}
}

func TestUserToProfile(t *testing.T) {
	user := User{
		BaseModel: BaseModel{ID: 3},
		Username:  "alice",
		Mail:      "alice@example.com",
		Password:  "hash",
		Role:      RoleAdmin,
	}

	profile := user.ToProfile()

	assert.Equal(t, 3, profile.ID)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, RoleAdmin, profile.Role)
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}
