package service

import (
	"context"
	"fmt"

	"mining_webapp/internal/clock"
	"mining_webapp/internal/domain"
	"mining_webapp/internal/mining"
	"mining_webapp/internal/repository"
)

// MiningService runs the session lifecycle around the accrual engine.
type MiningService struct {
	store  *repository.Store
	engine *mining.Engine
	clk    clock.Clock
	locks  *userLocks
}

// Sites lists every mining site.
func (s *MiningService) Sites(ctx context.Context) ([]*domain.MiningSite, error) {
	return s.store.Sites.List(ctx)
}

// Status reports the user's current session view. Users without an
// active session get the inactive zero status.
func (s *MiningService) Status(ctx context.Context, userID int64) (mining.Status, error) {
	session, err := s.store.Sessions.GetActiveByUser(ctx, userID)
	if err != nil {
		return mining.Status{}, err
	}
	if session == nil {
		return mining.InactiveStatus(), nil
	}

	site, err := s.store.Sites.GetByID(ctx, session.SiteID)
	if err != nil {
		return mining.Status{}, err
	}
	return s.engine.SessionStatus(session, site), nil
}

// Start opens a session at the site, superseding any session already
// running. Premium sites require an active tier; every site requires
// enough mining power. Active-miner counts move with the session.
func (s *MiningService) Start(ctx context.Context, userID, siteID int64) (*domain.MiningSession, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	site, err := s.store.Sites.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if site.IsPremium && !user.PremiumTier.Active() {
		return nil, ErrPremiumRequired
	}
	if user.MiningPower < site.MinPower {
		return nil, fmt.Errorf("%w: need at least %d MP", ErrInsufficientPower, site.MinPower)
	}

	existing, err := s.store.Sessions.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.deactivate(ctx, existing); err != nil {
			return nil, err
		}
	}

	now := s.clk.Now()
	session := &domain.MiningSession{
		UserID:          userID,
		SiteID:          site.ID,
		StartedAt:       now,
		LastCollectedAt: now,
		IsActive:        true,
	}
	if err := s.store.Sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	if _, err := s.store.Sites.Update(ctx, site.ID, repository.SiteUpdate{ActiveMinersDelta: 1}); err != nil {
		return nil, err
	}
	return session, nil
}

// Collect credits the accrued reward, resets the accrual window and
// wears down every equipped item.
func (s *MiningService) Collect(ctx context.Context, userID int64) (int64, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	session, err := s.store.Sessions.GetActiveByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if session == nil {
		return 0, ErrNoActiveSession
	}

	site, err := s.store.Sites.GetByID(ctx, session.SiteID)
	if err != nil {
		return 0, err
	}
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	reward := s.engine.Reward(site, session.LastCollectedAt, user.PremiumTier)

	balance := user.FlameBalance + reward
	if _, err := s.store.Users.Update(ctx, userID, repository.UserUpdate{FlameBalance: &balance}); err != nil {
		return 0, err
	}

	now := s.clk.Now()
	if _, err := s.store.Sessions.Update(ctx, session.ID, repository.SessionUpdate{
		LastCollectedAt:        &now,
		AccumulatedRewardDelta: reward,
	}); err != nil {
		return 0, err
	}

	tx := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxReceive,
		Amount:      reward,
		Description: "Mining rewards from " + site.Name,
	}
	if err := s.store.Transactions.Create(ctx, tx); err != nil {
		return 0, err
	}

	active, err := s.store.Equipment.ListEquippedByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, eq := range active {
		durability := eq.Durability - s.engine.DurabilityLoss(eq.Rarity)
		if durability < 0 {
			durability = 0
		}
		if _, err := s.store.Equipment.Update(ctx, eq.ID, repository.EquipmentUpdate{
			Durability: &durability,
		}); err != nil {
			return 0, err
		}
	}

	miningCollects.Inc()
	miningRewards.Add(float64(reward))
	return reward, nil
}

// Stop deactivates the user's running session.
func (s *MiningService) Stop(ctx context.Context, userID int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	session, err := s.store.Sessions.GetActiveByUser(ctx, userID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNoActiveSession
	}
	return s.deactivate(ctx, session)
}

// TickSeasonalCountdown shaves one hour off every running seasonal
// event and closes events whose countdown has run out.
func (s *MiningService) TickSeasonalCountdown(ctx context.Context) error {
	sites, err := s.store.Sites.List(ctx)
	if err != nil {
		return err
	}

	for _, site := range sites {
		if !site.SeasonalEvent || !site.IsEventActive {
			continue
		}
		hours, ok := parseCountdown(site.RemainingTime)
		if !ok {
			continue
		}

		hours--
		upd := repository.SiteUpdate{}
		if hours <= 0 {
			inactive := false
			ended := "Ended"
			upd.IsEventActive = &inactive
			upd.RemainingTime = &ended
		} else {
			left := formatCountdown(hours)
			upd.RemainingTime = &left
		}
		if _, err := s.store.Sites.Update(ctx, site.ID, upd); err != nil {
			return err
		}
	}
	return nil
}

// parseCountdown reads the display countdown ("2d 14h", "5h").
func parseCountdown(s string) (int, bool) {
	var days, hours int
	if n, err := fmt.Sscanf(s, "%dd %dh", &days, &hours); err == nil && n == 2 {
		return days*24 + hours, true
	}
	if n, err := fmt.Sscanf(s, "%dh", &hours); err == nil && n == 1 {
		return hours, true
	}
	return 0, false
}

func formatCountdown(hours int) string {
	if hours >= 24 {
		return fmt.Sprintf("%dd %dh", hours/24, hours%24)
	}
	return fmt.Sprintf("%dh", hours)
}

func (s *MiningService) deactivate(ctx context.Context, session *domain.MiningSession) error {
	inactive := false
	if _, err := s.store.Sessions.Update(ctx, session.ID, repository.SessionUpdate{
		IsActive: &inactive,
	}); err != nil {
		return err
	}
	_, err := s.store.Sites.Update(ctx, session.SiteID, repository.SiteUpdate{ActiveMinersDelta: -1})
	return err
}
