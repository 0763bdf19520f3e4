package memory

import (
	"context"
	"time"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/ton"
)

// Seed loads the demo dataset: one user, three market items, three
// mining sites, three equipment records (two equipped), an active
// session, sample transactions and a trading offer.
func (s *Store) Seed(ctx context.Context) error {
	repos := s.Bundle()
	now := s.clock.Now()

	expiry := now.Add(29 * 24 * time.Hour)
	demo := &domain.User{
		Username:       "FlameUser",
		TonAddress:     "UQBFXZrsMvcKgHJkXPPOLfv-9O4jJrZbTJR51zEaLQQKXVC3",
		TonBalanceNano: ton.TONToNano(3.45),
		FlameBalance:   1250,
		// base 10 plus the two equipped items below (Rare 25, Legendary 45)
		MiningPower:      80,
		DailyYield:       120,
		EquipmentCount:   3,
		EquipmentMax:     8,
		PremiumTier:      domain.TierVIP,
		PremiumExpiresAt: &expiry,
		PremiumDaysLeft:  29,
	}
	if err := repos.Users.Create(ctx, demo); err != nil {
		return err
	}

	items := []*domain.MarketItem{
		{
			Name: "Molten Core Helmet", Rarity: domain.RarityLegendary, Icon: "hard-hat",
			TonPrice: "2.5", FlamePrice: 1200, Available: true,
			Stats: []domain.Stat{
				{Icon: "bolt", Value: "+45 Mining Power"},
				{Icon: "shield-alt", Value: "+30% Heat Resistance"},
			},
		},
		{
			Name: "Precision Drill", Rarity: domain.RarityRare, Icon: "hammer",
			TonPrice: "0.85", FlamePrice: 420, Available: true,
			Stats: []domain.Stat{
				{Icon: "bolt", Value: "+22 Mining Power"},
				{Icon: "fire-alt", Value: "+10% Critical Mining"},
			},
		},
		{
			Name: "Basic Pickaxe", Rarity: domain.RarityCommon, Icon: "pickaxe",
			TonPrice: "0.25", FlamePrice: 100, Available: true,
			Stats: []domain.Stat{
				{Icon: "bolt", Value: "+10 Mining Power"},
			},
		},
	}
	for _, m := range items {
		if err := repos.MarketItems.Create(ctx, m); err != nil {
			return err
		}
	}

	gear := []*domain.Equipment{
		{
			UserID: demo.ID, MarketID: 1, Name: "Mining Drill", Rarity: domain.RarityRare,
			Icon: "drill", Durability: 72, RepairCost: 45, IsEquipped: true,
			Stats: []domain.Stat{{Icon: "bolt", Value: "+18 Mining Power"}},
		},
		{
			UserID: demo.ID, MarketID: 1, Name: "Phoenix Suit", Rarity: domain.RarityLegendary,
			Icon: "vest", Durability: 89, RepairCost: 65, IsEquipped: true,
			Stats: []domain.Stat{{Icon: "shield-alt", Value: "+25% Mining Efficiency"}},
		},
		{
			UserID: demo.ID, MarketID: 2, Name: "Energy Enhancer", Rarity: domain.RarityRare,
			Icon: "battery-full", Durability: 95, RepairCost: 40, IsEquipped: false,
			Stats: []domain.Stat{
				{Icon: "bolt", Value: "+15% Energy Efficiency"},
				{Icon: "clock", Value: "+10% Mining Speed"},
			},
		},
	}
	for _, e := range gear {
		if err := repos.Equipment.Create(ctx, e); err != nil {
			return err
		}
	}

	sites := []*domain.MiningSite{
		{
			Name: "Flame Valley", Difficulty: "Medium",
			ImageURL:  "https://images.unsplash.com/photo-1581775524098-513a606be377?ixlib=rb-1.2.1&auto=format&fit=crop&w=200&q=80",
			YieldRate: 12, MinPower: 25, ActiveMiners: 43, IsEventActive: true,
		},
		{
			Name: "Volcanic Depths", Difficulty: "Hard",
			ImageURL:  "https://images.unsplash.com/photo-1605478105648-23b211fbf1a9?ixlib=rb-1.2.1&auto=format&fit=crop&w=200&q=80",
			YieldRate: 28, MinPower: 65, ActiveMiners: 13, IsPremium: true, IsEventActive: true,
		},
		{
			Name: "Crystal Caves", Difficulty: "Extreme",
			ImageURL:  "https://images.unsplash.com/photo-1576400883215-7083980b6193?ixlib=rb-1.2.1&auto=format&fit=crop&w=200&q=80",
			YieldRate: 35, MinPower: 120, ActiveMiners: 8, SeasonalEvent: true,
			IsEventActive: true, RemainingTime: "2d 14h",
		},
	}
	for _, site := range sites {
		if err := repos.Sites.Create(ctx, site); err != nil {
			return err
		}
	}

	// Flame Valley's active miner count above already includes this session.
	session := &domain.MiningSession{
		UserID: demo.ID, SiteID: sites[0].ID,
		StartedAt: now, LastCollectedAt: now,
		AccumulatedReward: 35, IsActive: true,
	}
	if err := repos.Sessions.Create(ctx, session); err != nil {
		return err
	}

	txs := []*domain.Transaction{
		{UserID: demo.ID, Type: domain.TxReceive, Amount: 120, Description: "Mining rewards collected"},
		{UserID: demo.ID, Type: domain.TxSend, Amount: ton.TONToNano(0.5), IsTon: true, Description: "Purchased equipment"},
	}
	for _, tx := range txs {
		if err := repos.Transactions.Create(ctx, tx); err != nil {
			return err
		}
	}

	offer := &domain.TradingOffer{
		SellerID: demo.ID, SellerName: demo.Username,
		EquipmentID: gear[2].ID, TonPrice: "0.7", FlamePrice: 350, IsActive: true,
	}
	return repos.Offers.Create(ctx, offer)
}
