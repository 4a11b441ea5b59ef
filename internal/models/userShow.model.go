package models

import (
	"time"

	"gorm.io/gorm"
)

type ListType string

const (
	ListPlanToWatch ListType = "Plan To Watch"
	ListWatching    ListType = "Watching"
	ListCompleted   ListType = "Completed"
	ListDropped     ListType = "Dropped"
	ListOnHold      ListType = "On Hold"
)

func ValidListType(listType ListType) bool {
	switch listType {
	case ListPlanToWatch, ListWatching, ListCompleted, ListDropped, ListOnHold:
		return true
	}
	return false
}

// UserShow is one user's tracking record for one show: list membership,
// season/episode progress and score. One row per (user, show, is_movie).
// The log_activity trigger turns material changes into user_activity rows.
type UserShow struct {
	UserID        int       `gorm:"primaryKey;autoIncrement:false;column:user_id" json:"userId"`
	ShowID        int       `gorm:"primaryKey;autoIncrement:false;column:show_id" json:"showId"`
	IsMovie       bool      `gorm:"primaryKey;column:is_movie"                    json:"isMovie"`
	ListType      *ListType `gorm:"type:text"                                     json:"listType,omitempty"`
	SeasonNumber  *int      `gorm:"type:int"                                      json:"seasonNumber,omitempty"`
	EpisodeNumber *int      `gorm:"type:int"                                      json:"episodeNumber,omitempty"`
	Score         *int      `gorm:"type:int"                                      json:"score,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime"                                json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"                                json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"                                   json:"-"`
	Show Show `gorm:"foreignKey:ShowID,IsMovie;references:ShowID,IsMovie;constraint:OnDelete:CASCADE" json:"-"`
}

func (us *UserShow) BeforeSave(tx *gorm.DB) error {
	if us.ListType != nil && !ValidListType(*us.ListType) {
		return gorm.ErrInvalidValue
	}
	if us.Score != nil && (*us.Score < 0 || *us.Score > 10) {
		return gorm.ErrInvalidValue
	}
	return nil
}
