// Package mining computes time-based yield accrual and equipment
// durability decay. All time flows through an injected clock and all
// randomness through an injected source so results are reproducible in
// tests.
package mining

import (
	"math"
	"math/rand"
	"time"

	"mining_webapp/internal/clock"
	"mining_webapp/internal/domain"
)

// ProgressCycle is the display sawtooth period for mining progress.
const ProgressCycle = time.Hour

type Engine struct {
	clock clock.Clock
	intn  func(n int) int
}

func NewEngine(c clock.Clock) *Engine {
	return &Engine{clock: c, intn: rand.Intn}
}

// NewEngineWithRand lets tests pin the durability rolls.
func NewEngineWithRand(c clock.Clock, intn func(n int) int) *Engine {
	return &Engine{clock: c, intn: intn}
}

// Status is the display-oriented view of an active session.
type Status struct {
	IsActive          bool  `json:"isActive"`
	Progress          int   `json:"progress"`
	LastHourReward    int64 `json:"lastHourReward"`
	AccumulatedReward int64 `json:"accumulatedReward,omitempty"`
}

// InactiveStatus is what a user without a running session sees.
func InactiveStatus() Status {
	return Status{}
}

// SessionStatus reports progress and the capped last-hour reward.
// Progress is a sawtooth over ProgressCycle and is not tied to the
// actual accrual; LastHourReward caps at one hour of yield even when
// more time has elapsed.
func (e *Engine) SessionStatus(session *domain.MiningSession, site *domain.MiningSite) Status {
	now := e.clock.Now()

	elapsed := now.Sub(session.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	cycle := elapsed % ProgressCycle
	progress := int(math.Floor(float64(cycle) / float64(ProgressCycle) * 100))
	if progress > 100 {
		progress = 100
	}

	hours := hoursSince(session.LastCollectedAt, now)
	lastHour := int64(math.Floor(float64(site.YieldRate) * math.Min(1, hours)))

	return Status{
		IsActive:          session.IsActive,
		Progress:          progress,
		LastHourReward:    lastHour,
		AccumulatedReward: session.AccumulatedReward,
	}
}

// Reward computes the collectable yield since the last collection:
// floor(yieldRate * hours), then the premium multiplier with a second
// floor. Hours are uncapped; waiting longer earns proportionally more.
func (e *Engine) Reward(site *domain.MiningSite, lastCollectedAt time.Time, tier domain.PremiumTier) int64 {
	hours := hoursSince(lastCollectedAt, e.clock.Now())
	base := int64(math.Floor(float64(site.YieldRate) * hours))
	return tier.Multiplier(base)
}

// DurabilityLoss rolls a uniform integer loss for one collection event.
// Higher rarities wear slower: Common 3-7, Rare 2-4, Legendary 1-2,
// Exclusive 0-1 (inclusive).
func (e *Engine) DurabilityLoss(r domain.Rarity) int {
	switch r {
	case domain.RarityCommon:
		return e.intn(5) + 3
	case domain.RarityRare:
		return e.intn(3) + 2
	case domain.RarityLegendary:
		return e.intn(2) + 1
	case domain.RarityExclusive:
		return e.intn(2)
	default:
		return 0
	}
}

func hoursSince(t, now time.Time) float64 {
	h := now.Sub(t).Hours()
	if h < 0 {
		return 0
	}
	return h
}
