// Package memory is the reference entity store: maps keyed by
// auto-incremented int64 ids behind a single RWMutex. It is the
// default backend and is seeded with the demo dataset.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"mining_webapp/internal/clock"
	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"
)

type Store struct {
	mu    sync.RWMutex
	clock clock.Clock

	users        map[int64]*domain.User
	equipment    map[int64]*domain.Equipment
	marketItems  map[int64]*domain.MarketItem
	sites        map[int64]*domain.MiningSite
	sessions     map[int64]*domain.MiningSession
	offers       map[int64]*domain.TradingOffer
	transactions map[int64]*domain.Transaction

	userSeq        int64
	equipmentSeq   int64
	marketItemSeq  int64
	siteSeq        int64
	sessionSeq     int64
	offerSeq       int64
	transactionSeq int64
}

// New creates an empty store. Call Seed for the demo dataset.
func New(c clock.Clock) *Store {
	return &Store{
		clock:        c,
		users:        make(map[int64]*domain.User),
		equipment:    make(map[int64]*domain.Equipment),
		marketItems:  make(map[int64]*domain.MarketItem),
		sites:        make(map[int64]*domain.MiningSite),
		sessions:     make(map[int64]*domain.MiningSession),
		offers:       make(map[int64]*domain.TradingOffer),
		transactions: make(map[int64]*domain.Transaction),
	}
}

// Bundle exposes the store through the repository interfaces.
func (s *Store) Bundle() *repository.Store {
	return &repository.Store{
		Users:        &userRepo{s},
		Equipment:    &equipmentRepo{s},
		MarketItems:  &marketItemRepo{s},
		Sites:        &siteRepo{s},
		Sessions:     &sessionRepo{s},
		Offers:       &offerRepo{s},
		Transactions: &transactionRepo{s},
	}
}

// Returned entities are copies; callers never observe later mutations.

func copyUser(u *domain.User) *domain.User {
	cp := *u
	if u.PremiumExpiresAt != nil {
		t := *u.PremiumExpiresAt
		cp.PremiumExpiresAt = &t
	}
	return &cp
}

func copyEquipment(e *domain.Equipment) *domain.Equipment {
	cp := *e
	cp.Stats = append([]domain.Stat(nil), e.Stats...)
	return &cp
}

// ---- users ----

type userRepo struct{ s *Store }

func (r *userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByTonAddress(_ context.Context, address string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.TonAddress != "" && u.TonAddress == address {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) ListWithPremium(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.User
	for _, u := range r.s.users {
		if u.PremiumTier != domain.TierNone {
			out = append(out, copyUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *userRepo) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return repository.ErrDuplicateUsername
		}
	}
	r.s.userSeq++
	u.ID = r.s.userSeq
	u.CreatedAt = r.s.clock.Now()
	r.s.users[u.ID] = copyUser(u)
	return nil
}

func (r *userRepo) Update(_ context.Context, id int64, upd repository.UserUpdate) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.TonAddress != nil {
		u.TonAddress = *upd.TonAddress
	}
	if upd.TonBalanceNano != nil {
		u.TonBalanceNano = *upd.TonBalanceNano
	}
	if upd.FlameBalance != nil {
		u.FlameBalance = *upd.FlameBalance
	}
	if upd.MiningPower != nil {
		u.MiningPower = *upd.MiningPower
	}
	if upd.EquipmentCount != nil {
		u.EquipmentCount = *upd.EquipmentCount
	}
	if upd.PremiumTier != nil {
		u.PremiumTier = *upd.PremiumTier
	}
	if upd.PremiumExpiresAt != nil {
		t := *upd.PremiumExpiresAt
		u.PremiumExpiresAt = &t
	}
	if upd.ClearPremiumExpiry {
		u.PremiumExpiresAt = nil
	}
	if upd.PremiumDaysLeft != nil {
		u.PremiumDaysLeft = *upd.PremiumDaysLeft
	}
	return copyUser(u), nil
}

// ---- equipment ----

type equipmentRepo struct{ s *Store }

func (r *equipmentRepo) GetByID(_ context.Context, id int64) (*domain.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.equipment[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyEquipment(e), nil
}

func (r *equipmentRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.listLocked(userID, false), nil
}

func (r *equipmentRepo) ListEquippedByUser(_ context.Context, userID int64) ([]*domain.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.listLocked(userID, true), nil
}

func (r *equipmentRepo) listLocked(userID int64, equippedOnly bool) []*domain.Equipment {
	var out []*domain.Equipment
	for _, e := range r.s.equipment {
		if e.UserID != userID {
			continue
		}
		if equippedOnly && !e.IsEquipped {
			continue
		}
		out = append(out, copyEquipment(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *equipmentRepo) Create(_ context.Context, e *domain.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.equipmentSeq++
	e.ID = r.s.equipmentSeq
	e.CreatedAt = r.s.clock.Now()
	r.s.equipment[e.ID] = copyEquipment(e)
	return nil
}

func (r *equipmentRepo) Update(_ context.Context, id int64, upd repository.EquipmentUpdate) (*domain.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.equipment[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Durability != nil {
		e.Durability = *upd.Durability
	}
	if upd.IsEquipped != nil {
		e.IsEquipped = *upd.IsEquipped
	}
	return copyEquipment(e), nil
}

func (r *equipmentRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.equipment, id)
	return nil
}

// ---- market items ----

type marketItemRepo struct{ s *Store }

func (r *marketItemRepo) GetByID(_ context.Context, id int64) (*domain.MarketItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.marketItems[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	cp.Stats = append([]domain.Stat(nil), m.Stats...)
	return &cp, nil
}

func (r *marketItemRepo) ListAvailable(_ context.Context) ([]*domain.MarketItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.MarketItem
	for _, m := range r.s.marketItems {
		if !m.Available {
			continue
		}
		cp := *m
		cp.Stats = append([]domain.Stat(nil), m.Stats...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *marketItemRepo) Create(_ context.Context, m *domain.MarketItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.marketItemSeq++
	m.ID = r.s.marketItemSeq
	m.CreatedAt = r.s.clock.Now()
	cp := *m
	cp.Stats = append([]domain.Stat(nil), m.Stats...)
	r.s.marketItems[m.ID] = &cp
	return nil
}

// ---- mining sites ----

type siteRepo struct{ s *Store }

func (r *siteRepo) GetByID(_ context.Context, id int64) (*domain.MiningSite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	site, ok := r.s.sites[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *site
	return &cp, nil
}

func (r *siteRepo) List(_ context.Context) ([]*domain.MiningSite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.MiningSite, 0, len(r.s.sites))
	for _, site := range r.s.sites {
		cp := *site
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *siteRepo) Create(_ context.Context, site *domain.MiningSite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.siteSeq++
	site.ID = r.s.siteSeq
	site.CreatedAt = r.s.clock.Now()
	cp := *site
	r.s.sites[site.ID] = &cp
	return nil
}

func (r *siteRepo) Update(_ context.Context, id int64, upd repository.SiteUpdate) (*domain.MiningSite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	site, ok := r.s.sites[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.ActiveMinersDelta != 0 {
		site.ActiveMiners += upd.ActiveMinersDelta
		if site.ActiveMiners < 0 {
			site.ActiveMiners = 0
		}
	}
	if upd.RemainingTime != nil {
		site.RemainingTime = *upd.RemainingTime
	}
	if upd.IsEventActive != nil {
		site.IsEventActive = *upd.IsEventActive
	}
	cp := *site
	return &cp, nil
}

// ---- mining sessions ----

type sessionRepo struct{ s *Store }

func (r *sessionRepo) GetByID(_ context.Context, id int64) (*domain.MiningSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (r *sessionRepo) GetActiveByUser(_ context.Context, userID int64) (*domain.MiningSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sess := range r.s.sessions {
		if sess.UserID == userID && sess.IsActive {
			cp := *sess
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *sessionRepo) Create(_ context.Context, sess *domain.MiningSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessionSeq++
	sess.ID = r.s.sessionSeq
	cp := *sess
	r.s.sessions[sess.ID] = &cp
	return nil
}

func (r *sessionRepo) Update(_ context.Context, id int64, upd repository.SessionUpdate) (*domain.MiningSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.LastCollectedAt != nil {
		sess.LastCollectedAt = *upd.LastCollectedAt
	}
	sess.AccumulatedReward += upd.AccumulatedRewardDelta
	if upd.IsActive != nil {
		sess.IsActive = *upd.IsActive
	}
	cp := *sess
	return &cp, nil
}

// ---- trading offers ----

type offerRepo struct{ s *Store }

func (r *offerRepo) GetByID(_ context.Context, id int64) (*domain.TradingOffer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.offers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *offerRepo) ListActive(_ context.Context) ([]*domain.TradingOffer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.TradingOffer
	for _, o := range r.s.offers {
		if !o.IsActive {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *offerRepo) Create(_ context.Context, o *domain.TradingOffer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.offerSeq++
	o.ID = r.s.offerSeq
	o.CreatedAt = r.s.clock.Now()
	cp := *o
	cp.Equipment = nil
	r.s.offers[o.ID] = &cp
	return nil
}

func (r *offerRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.offers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.offers, id)
	return nil
}

// ---- transactions ----

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactionSeq++
	tx.ID = r.s.transactionSeq
	tx.Timestamp = r.s.clock.Now()
	cp := *tx
	r.s.transactions[tx.ID] = &cp
	return nil
}

func (r *transactionRepo) ListByUser(_ context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if limit <= 0 {
		limit = 100
	}
	var out []*domain.Transaction
	for _, tx := range r.s.transactions {
		if tx.UserID != userID {
			continue
		}
		cp := *tx
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

