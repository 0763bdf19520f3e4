package service

import (
	"context"
	"fmt"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"
	"mining_webapp/internal/ton"
)

// TransactionService lists the audit trail and records simulated TON
// transfers.
type TransactionService struct {
	store *repository.Store
}

// List returns the user's transactions newest first.
func (s *TransactionService) List(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	return s.store.Transactions.ListByUser(ctx, userID, limit)
}

// RecordTransfer writes a SEND record for a simulated TON transfer from
// the wallet matching the sender address. Balances are untouched; the
// chain is pretend.
func (s *TransactionService) RecordTransfer(ctx context.Context, from, to string, amountTON float64) (*domain.Transaction, error) {
	if amountTON <= 0 {
		return nil, ErrInvalidAmount
	}

	sender, err := s.store.Users.GetByTonAddress(ctx, from)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, repository.ErrNotFound
	}

	// render the recipient in raw form so the audit trail reads the
	// same whichever encoding the client sent
	short := to
	if raw, err := ton.NormalizeAddress(to); err == nil {
		short = raw
	}
	if len(short) > 8 {
		short = short[:8]
	}

	nano := ton.TONToNano(amountTON)
	tx := &domain.Transaction{
		UserID:      sender.ID,
		Type:        domain.TxSend,
		Amount:      nano,
		IsTon:       true,
		Description: fmt.Sprintf("Sent %s TON to %s...", ton.FormatTON(nano), short),
	}
	if err := s.store.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
