package models

import (
	"time"

	"gorm.io/gorm"
)

const MaxCommentLength = 1000

type ShowComment struct {
	CommentID int       `gorm:"primaryKey;autoIncrement;column:comment_id"    json:"commentId"`
	ShowID    int       `gorm:"not null;index:idx_show_comments_show,priority:1;column:show_id" json:"showId"`
	IsMovie   bool      `gorm:"index:idx_show_comments_show,priority:2;column:is_movie"         json:"isMovie"`
	UserID    int       `gorm:"not null;column:user_id"                       json:"userId"`
	Comment   string    `gorm:"type:text;not null"                            json:"comment"`
	Date      time.Time `gorm:"autoCreateTime"                                json:"date"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"                                   json:"-"`
	Show Show `gorm:"foreignKey:ShowID,IsMovie;references:ShowID,IsMovie;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShowComment) TableName() string {
	return "show_comments"
}

func (c *ShowComment) BeforeCreate(tx *gorm.DB) error {
	if c.Comment == "" || len(c.Comment) > MaxCommentLength {
		return gorm.ErrInvalidValue
	}
	return nil
}

// CommentEntry is a comment joined with its author's username.
type CommentEntry struct {
	CommentID int       `json:"commentId"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
	Username  string    `json:"username"`
}
