package service

import (
	"context"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"
)

// MarketService sells equipment templates for Flame Coins.
type MarketService struct {
	store *repository.Store
	locks *userLocks
}

// Items returns everything currently purchasable.
func (s *MarketService) Items(ctx context.Context) ([]*domain.MarketItem, error) {
	return s.store.MarketItems.ListAvailable(ctx)
}

// Buy debits the item's Flame Coin price and mints a fresh equipment
// record at full durability. Repair cost is fixed at 5% of the price.
// Requires a connected wallet even for Flame Coin payments.
func (s *MarketService) Buy(ctx context.Context, userID, itemID int64) (*domain.Equipment, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	item, err := s.store.MarketItems.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TonAddress == "" {
		return nil, ErrWalletNotConnected
	}
	if user.FlameBalance < item.FlamePrice {
		return nil, ErrInsufficientFunds
	}

	balance := user.FlameBalance - item.FlamePrice
	count := user.EquipmentCount + 1
	if _, err := s.store.Users.Update(ctx, userID, repository.UserUpdate{
		FlameBalance:   &balance,
		EquipmentCount: &count,
	}); err != nil {
		return nil, err
	}

	eq := &domain.Equipment{
		UserID:     userID,
		MarketID:   item.ID,
		Name:       item.Name,
		Rarity:     item.Rarity,
		Icon:       item.Icon,
		Durability: 100,
		RepairCost: item.FlamePrice * 5 / 100,
		Stats:      item.Stats,
	}
	if err := s.store.Equipment.Create(ctx, eq); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxBuy,
		Amount:      item.FlamePrice,
		Description: "Purchased " + item.Name,
	}
	if err := s.store.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	marketPurchases.Inc()
	return eq, nil
}
