package service

import (
	"context"
	"time"

	"mining_webapp/internal/clock"
	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"
	"mining_webapp/internal/ton"
)

// PremiumService sells subscription tiers. TON payments are part of the
// wallet simulation and are accepted without on-chain verification;
// Flame Coin payments debit the balance.
type PremiumService struct {
	store *repository.Store
	clk   clock.Clock
	locks *userLocks
}

// Subscription is the confirmation returned after a purchase.
type Subscription struct {
	Tier      domain.PremiumTier `json:"tier"`
	ExpiresAt time.Time          `json:"expiryDate"`
	DaysLeft  int                `json:"daysLeft"`
}

// Subscribe activates a tier: standard runs 30 days for 2.5 TON or
// 1000 FC, vip runs 365 days for 25 TON or 10000 FC.
func (s *PremiumService) Subscribe(ctx context.Context, userID int64, tier domain.PremiumTier, paymentType string) (*Subscription, error) {
	if !tier.Valid() {
		return nil, ErrInvalidTier
	}
	if paymentType != "ton" && paymentType != "flame" {
		return nil, ErrInvalidPayment
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if paymentType == "ton" && user.TonAddress == "" {
		return nil, ErrWalletNotConnected
	}

	durationDays := 30
	tonPrice, flamePrice := 2.5, int64(1000)
	if tier == domain.TierVIP {
		durationDays = 365
		tonPrice, flamePrice = 25, 10000
	}

	upd := repository.UserUpdate{
		PremiumTier:     &tier,
		PremiumDaysLeft: &durationDays,
	}
	expiry := s.clk.Now().Add(time.Duration(durationDays) * 24 * time.Hour)
	upd.PremiumExpiresAt = &expiry

	var txAmount int64
	if paymentType == "flame" {
		if user.FlameBalance < flamePrice {
			return nil, ErrInsufficientFunds
		}
		balance := user.FlameBalance - flamePrice
		upd.FlameBalance = &balance
		txAmount = flamePrice
	} else {
		txAmount = ton.TONToNano(tonPrice)
	}

	if _, err := s.store.Users.Update(ctx, userID, upd); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxSend,
		Amount:      txAmount,
		IsTon:       paymentType == "ton",
		Description: "Premium subscription - " + string(tier),
	}
	if err := s.store.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	premiumSubscriptions.WithLabelValues(string(tier)).Inc()
	return &Subscription{Tier: tier, ExpiresAt: expiry, DaysLeft: durationDays}, nil
}

// SweepExpired refreshes premiumDaysLeft for every paying user and
// downgrades lapsed subscriptions to the free tier. Returns how many
// users were downgraded.
func (s *PremiumService) SweepExpired(ctx context.Context) (int, error) {
	users, err := s.store.Users.ListWithPremium(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clk.Now()
	downgraded := 0
	for _, u := range users {
		if u.PremiumExpiresAt == nil {
			continue
		}

		unlock := s.locks.Lock(u.ID)
		if now.Before(*u.PremiumExpiresAt) {
			days := remainingDays(now, *u.PremiumExpiresAt)
			if days != u.PremiumDaysLeft {
				_, err = s.store.Users.Update(ctx, u.ID, repository.UserUpdate{PremiumDaysLeft: &days})
			}
		} else {
			none := domain.TierNone
			zero := 0
			_, err = s.store.Users.Update(ctx, u.ID, repository.UserUpdate{
				PremiumTier:        &none,
				ClearPremiumExpiry: true,
				PremiumDaysLeft:    &zero,
			})
			if err == nil {
				downgraded++
			}
		}
		unlock()
		if err != nil {
			return downgraded, err
		}
	}
	return downgraded, nil
}
