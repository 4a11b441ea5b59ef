package models

import (
	"github.com/shopspring/decimal"
)

// UserStatistics is one row of the user_statistics view. The view is created
// by a raw SQL migration; gorm never migrates or writes it.
type UserStatistics struct {
	UserID               int                 `gorm:"column:user_id"               json:"userId"`
	Username             string              `gorm:"column:username"              json:"username"`
	WatchingCount        int                 `gorm:"column:watching_count"        json:"watchingCount"`
	CompletedCount       int                 `gorm:"column:completed_count"       json:"completedCount"`
	OnHoldCount          int                 `gorm:"column:on_hold_count"         json:"onHoldCount"`
	DroppedCount         int                 `gorm:"column:dropped_count"         json:"droppedCount"`
	PlanToWatchCount     int                 `gorm:"column:plan_to_watch_count"   json:"planToWatchCount"`
	TotalEntries         int                 `gorm:"column:total_entries"         json:"totalEntries"`
	TotalEpisodesWatched int64               `gorm:"column:total_episodes_watched" json:"totalEpisodesWatched"`
	DaysWatched          decimal.NullDecimal `gorm:"column:days_watched"          json:"daysWatched"`
	MeanScore            decimal.NullDecimal `gorm:"column:mean_score"            json:"meanScore"`
}

func (UserStatistics) TableName() string {
	return "user_statistics"
}
