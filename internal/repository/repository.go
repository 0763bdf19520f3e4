package repository

import (
	"context"
	"errors"
	"time"

	"mining_webapp/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already taken")
)

// Update commands enumerate exactly the mutable fields of each entity.
// A nil pointer leaves the field untouched. Invariant-protected fields
// (mining power, equipment count) are only ever written by the service
// layer that derives them.

type UserUpdate struct {
	TonAddress         *string
	TonBalanceNano     *int64
	FlameBalance       *int64
	MiningPower        *int64
	EquipmentCount     *int
	PremiumTier        *domain.PremiumTier
	PremiumExpiresAt   *time.Time
	ClearPremiumExpiry bool
	PremiumDaysLeft    *int
}

type EquipmentUpdate struct {
	Durability *int
	IsEquipped *bool
}

type SiteUpdate struct {
	// ActiveMinersDelta is applied atomically by the store and floored
	// at zero.
	ActiveMinersDelta int
	RemainingTime     *string
	IsEventActive     *bool
}

type SessionUpdate struct {
	LastCollectedAt        *time.Time
	AccumulatedRewardDelta int64
	IsActive               *bool
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByTonAddress(ctx context.Context, address string) (*domain.User, error)
	// ListWithPremium returns users holding any paid tier, expired or not.
	ListWithPremium(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
}

type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Equipment, error)
	ListEquippedByUser(ctx context.Context, userID int64) ([]*domain.Equipment, error)
	Create(ctx context.Context, e *domain.Equipment) error
	Update(ctx context.Context, id int64, upd EquipmentUpdate) (*domain.Equipment, error)
	Delete(ctx context.Context, id int64) error
}

type MarketItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MarketItem, error)
	ListAvailable(ctx context.Context) ([]*domain.MarketItem, error)
	Create(ctx context.Context, m *domain.MarketItem) error
}

type MiningSiteRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MiningSite, error)
	List(ctx context.Context) ([]*domain.MiningSite, error)
	Create(ctx context.Context, s *domain.MiningSite) error
	Update(ctx context.Context, id int64, upd SiteUpdate) (*domain.MiningSite, error)
}

type MiningSessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MiningSession, error)
	GetActiveByUser(ctx context.Context, userID int64) (*domain.MiningSession, error)
	Create(ctx context.Context, s *domain.MiningSession) error
	Update(ctx context.Context, id int64, upd SessionUpdate) (*domain.MiningSession, error)
}

type TradingOfferRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TradingOffer, error)
	ListActive(ctx context.Context) ([]*domain.TradingOffer, error)
	Create(ctx context.Context, o *domain.TradingOffer) error
	Delete(ctx context.Context, id int64) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	// ListByUser returns transactions newest first.
	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error)
}

// Store bundles the per-entity repositories behind one injection point
// so handlers never care which backend serves them.
type Store struct {
	Users        UserRepository
	Equipment    EquipmentRepository
	MarketItems  MarketItemRepository
	Sites        MiningSiteRepository
	Sessions     MiningSessionRepository
	Offers       TradingOfferRepository
	Transactions TransactionRepository
}
