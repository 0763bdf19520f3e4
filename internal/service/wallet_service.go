package service

import (
	"context"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"
	"mining_webapp/internal/ton"
)

// WalletService simulates TON wallet connectivity. Addresses are only
// format-checked; no on-chain state is consulted.
type WalletService struct {
	store *repository.Store
	locks *userLocks
}

// Connect links a TON address to an account. If the address is already
// attached to a user, that user is returned; otherwise the address is
// attached to the requesting user.
func (s *WalletService) Connect(ctx context.Context, userID int64, address string) (*domain.User, error) {
	if !ton.ValidateAddress(address) {
		return nil, ErrInvalidAddress
	}

	existing, err := s.store.Users.GetByTonAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	return s.store.Users.Update(ctx, userID, repository.UserUpdate{
		TonAddress: &address,
	})
}
