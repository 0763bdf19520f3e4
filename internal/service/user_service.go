package service

import (
	"context"
	"math"
	"strings"
	"time"

	"mining_webapp/internal/clock"
	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"
)

// UserService reads and creates users.
type UserService struct {
	store *repository.Store
	clk   clock.Clock
	locks *userLocks
}

// Get returns the user with premiumDaysLeft recomputed from the expiry
// date. The recomputed value is persisted so the store never drifts
// more than one read behind the calendar.
func (s *UserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.PremiumExpiresAt == nil {
		return user, nil
	}

	daysLeft := remainingDays(s.clk.Now(), *user.PremiumExpiresAt)
	if daysLeft == user.PremiumDaysLeft {
		return user, nil
	}
	return s.store.Users.Update(ctx, user.ID, repository.UserUpdate{
		PremiumDaysLeft: &daysLeft,
	})
}

// CreateParams carries the optional overrides for a new user.
type CreateParams struct {
	Username   string
	TonAddress string
}

// Create registers a new user with starter balances.
func (s *UserService) Create(ctx context.Context, p CreateParams) (*domain.User, error) {
	username := strings.TrimSpace(p.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	user := &domain.User{
		Username:     username,
		TonAddress:   p.TonAddress,
		FlameBalance: 100,
		MiningPower:  10,
		DailyYield:   20,
		EquipmentMax: 8,
		PremiumTier:  domain.TierNone,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// remainingDays is the ceiling of whole days until expiry, floored at
// zero once the date has passed.
func remainingDays(now, expiry time.Time) int {
	days := int(math.Ceil(expiry.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
