// Package service implements the game rules on top of the repository
// layer: mining session lifecycle, equipment management, marketplace,
// premium subscriptions and the simulated TON wallet. All mutating
// operations are serialized per user.
package service

import (
	"mining_webapp/internal/clock"
	"mining_webapp/internal/mining"
	"mining_webapp/internal/repository"
)

// Services bundles every game service behind one injection point.
type Services struct {
	Users        *UserService
	Wallet       *WalletService
	Equipment    *EquipmentService
	Market       *MarketService
	Mining       *MiningService
	Premium      *PremiumService
	Trading      *TradingService
	Transactions *TransactionService
}

func New(store *repository.Store, engine *mining.Engine, clk clock.Clock) *Services {
	locks := newUserLocks()
	return &Services{
		Users:        &UserService{store: store, clk: clk, locks: locks},
		Wallet:       &WalletService{store: store, locks: locks},
		Equipment:    &EquipmentService{store: store, locks: locks},
		Market:       &MarketService{store: store, locks: locks},
		Mining:       &MiningService{store: store, engine: engine, clk: clk, locks: locks},
		Premium:      &PremiumService{store: store, clk: clk, locks: locks},
		Trading:      &TradingService{store: store},
		Transactions: &TransactionService{store: store},
	}
}
