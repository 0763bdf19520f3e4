package service

import (
	"context"
	"errors"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"
)

// TradingService exposes the player-to-player listings.
type TradingService struct {
	store *repository.Store
}

// Offers returns active listings with the referenced equipment
// materialized. Offers whose equipment has vanished are skipped.
func (s *TradingService) Offers(ctx context.Context) ([]*domain.TradingOffer, error) {
	offers, err := s.store.Offers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.TradingOffer, 0, len(offers))
	for _, offer := range offers {
		eq, err := s.store.Equipment.GetByID(ctx, offer.EquipmentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		offer.Equipment = eq
		out = append(out, offer)
	}
	return out, nil
}
