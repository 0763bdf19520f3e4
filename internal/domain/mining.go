package domain

import "time"

type MiningSite struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Difficulty    string    `db:"difficulty" json:"difficulty"`
	ImageURL      string    `db:"image_url" json:"imageUrl"`
	YieldRate     int64     `db:"yield_rate" json:"yieldRate"` // Flame Coins per hour
	MinPower      int64     `db:"min_power" json:"minPower"`
	ActiveMiners  int       `db:"active_miners" json:"activeMiners"`
	IsPremium     bool      `db:"is_premium" json:"isPremium"`
	SeasonalEvent bool      `db:"seasonal_event" json:"seasonalEvent"`
	IsEventActive bool      `db:"is_event_active" json:"isEventActive"`
	RemainingTime string    `db:"remaining_time" json:"remainingTime,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// MiningSession tracks one user's stint at a site. At most one session
// per user is active at a time.
type MiningSession struct {
	ID                int64     `db:"id" json:"id"`
	UserID            int64     `db:"user_id" json:"userId"`
	SiteID            int64     `db:"site_id" json:"siteId"`
	StartedAt         time.Time `db:"started_at" json:"startedAt"`
	LastCollectedAt   time.Time `db:"last_collected_at" json:"lastCollectedAt"`
	AccumulatedReward int64     `db:"accumulated_reward" json:"accumulatedReward"`
	IsActive          bool      `db:"is_active" json:"isActive"`
}
