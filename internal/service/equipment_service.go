package service

import (
	"context"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"
)

// EquipmentService manages the inventory. Equip and unequip adjust the
// owner's mining power by the item's rarity contribution in the same
// locked section as the equipment flag flip, so power never drifts.
type EquipmentService struct {
	store *repository.Store
	locks *userLocks
}

// Inventory returns everything the user owns.
func (s *EquipmentService) Inventory(ctx context.Context, userID int64) ([]*domain.Equipment, error) {
	return s.store.Equipment.ListByUser(ctx, userID)
}

// Active returns the currently equipped items.
func (s *EquipmentService) Active(ctx context.Context, userID int64) ([]*domain.Equipment, error) {
	return s.store.Equipment.ListEquippedByUser(ctx, userID)
}

// Equip marks an owned item as equipped and credits its power. Already
// equipped items are a no-op. Fails when all slots are in use.
func (s *EquipmentService) Equip(ctx context.Context, userID, equipmentID int64) (*domain.Equipment, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	eq, err := s.ownedEquipment(ctx, userID, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq.IsEquipped {
		return eq, nil
	}

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, err := s.store.Equipment.ListEquippedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(active) >= user.EquipmentMax {
		return nil, ErrEquipmentLimit
	}

	equipped := true
	updated, err := s.store.Equipment.Update(ctx, equipmentID, repository.EquipmentUpdate{
		IsEquipped: &equipped,
	})
	if err != nil {
		return nil, err
	}

	power := user.MiningPower + eq.Rarity.Power()
	if _, err := s.store.Users.Update(ctx, userID, repository.UserUpdate{MiningPower: &power}); err != nil {
		return nil, err
	}
	return updated, nil
}

// Unequip clears the equipped flag and debits the item's power. Items
// that are not equipped are a no-op.
func (s *EquipmentService) Unequip(ctx context.Context, userID, equipmentID int64) (*domain.Equipment, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	eq, err := s.ownedEquipment(ctx, userID, equipmentID)
	if err != nil {
		return nil, err
	}
	if !eq.IsEquipped {
		return eq, nil
	}

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	equipped := false
	updated, err := s.store.Equipment.Update(ctx, equipmentID, repository.EquipmentUpdate{
		IsEquipped: &equipped,
	})
	if err != nil {
		return nil, err
	}

	power := user.MiningPower - eq.Rarity.Power()
	if _, err := s.store.Users.Update(ctx, userID, repository.UserUpdate{MiningPower: &power}); err != nil {
		return nil, err
	}
	return updated, nil
}

// Repair restores durability to 100 for the item's repair cost.
func (s *EquipmentService) Repair(ctx context.Context, userID, equipmentID int64) (*domain.Equipment, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	eq, err := s.ownedEquipment(ctx, userID, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq.Durability >= 100 {
		return nil, ErrAlreadyRepaired
	}

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.FlameBalance < eq.RepairCost {
		return nil, ErrInsufficientFunds
	}

	full := 100
	updated, err := s.store.Equipment.Update(ctx, equipmentID, repository.EquipmentUpdate{
		Durability: &full,
	})
	if err != nil {
		return nil, err
	}

	balance := user.FlameBalance - eq.RepairCost
	if _, err := s.store.Users.Update(ctx, userID, repository.UserUpdate{FlameBalance: &balance}); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxRepair,
		Amount:      eq.RepairCost,
		Description: "Repaired " + eq.Name,
	}
	if err := s.store.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *EquipmentService) ownedEquipment(ctx context.Context, userID, equipmentID int64) (*domain.Equipment, error) {
	eq, err := s.store.Equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq.UserID != userID {
		return nil, ErrNotOwner
	}
	return eq, nil
}
