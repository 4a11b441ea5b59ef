package models

import (
	"time"
)

// UserActivity is an append-only log row. Rows are written by the
// log_activity database trigger (see cmd/migration/migrations), never by
// application inserts; the application only reads and deletes them.
type UserActivity struct {
	ActivityID int64     `gorm:"primaryKey;autoIncrement;column:activity_id" json:"activityId"`
	UserID     int       `gorm:"not null;uniqueIndex:idx_user_activity_entry,priority:1" json:"userId"`
	ShowID     int       `gorm:"not null;uniqueIndex:idx_user_activity_entry,priority:2;column:show_id" json:"showId"`
	IsMovie    bool      `gorm:"uniqueIndex:idx_user_activity_entry,priority:3;column:is_movie" json:"isMovie"`
	Date       time.Time `gorm:"not null;uniqueIndex:idx_user_activity_entry,priority:4" json:"date"`
	ListType   *ListType `gorm:"type:text" json:"listType,omitempty"`
	Season     *int      `gorm:"type:int"  json:"season,omitempty"`
	Episode    *int      `gorm:"type:int"  json:"episode,omitempty"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Show Show `gorm:"foreignKey:ShowID,IsMovie;references:ShowID,IsMovie;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserActivity) TableName() string {
	return "user_activity"
}

// ActivityEntry is the joined shape served to clients: the raw activity row
// plus display fields resolved from shows, seasons and episodes.
type ActivityEntry struct {
	ActivityID    int64     `json:"activityId"`
	Username      string    `json:"username"`
	ShowID        int       `json:"showId"`
	Type          string    `json:"type"`
	Date          time.Time `json:"date"`
	ListType      *ListType `json:"listType,omitempty"`
	SeasonNumber  *int      `json:"seasonNumber,omitempty"`
	EpisodeNumber *int      `json:"episodeNumber,omitempty"`
	ImagePath     *string   `json:"imagePath,omitempty"`
	SeasonName    *string   `json:"seasonName,omitempty"`
	EpisodeName   *string   `json:"episodeName,omitempty"`
	ShowName      *string   `json:"showName,omitempty"`
}
