package models

import (
	"time"
)

type UserFollow struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false;column:user_id"   json:"userId"`
	FollowID  int       `gorm:"primaryKey;autoIncrement:false;column:follow_id" json:"followId"`
	CreatedAt time.Time `gorm:"autoCreateTime"                                  json:"createdAt"`

	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"   json:"-"`
	Follow User `gorm:"foreignKey:FollowID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}
