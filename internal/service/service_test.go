package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mining_webapp/internal/clock"
	"mining_webapp/internal/domain"
	"mining_webapp/internal/mining"
	"mining_webapp/internal/repository"
	"mining_webapp/internal/repository/memory"
)

func newTestEnv(t *testing.T) (*Services, *repository.Store, *clock.Fixed) {
	t.Helper()
	clk := &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := memory.New(clk).Bundle()
	engine := mining.NewEngineWithRand(clk, func(n int) int { return 0 })
	return New(store, engine, clk), store, clk
}

func mustCreateUser(t *testing.T, store *repository.Store, u *domain.User) *domain.User {
	t.Helper()
	if u.EquipmentMax == 0 {
		u.EquipmentMax = 8
	}
	if u.PremiumTier == "" {
		u.PremiumTier = domain.TierNone
	}
	if err := store.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mustCreateSite(t *testing.T, store *repository.Store, s *domain.MiningSite) *domain.MiningSite {
	t.Helper()
	if err := store.Sites.Create(context.Background(), s); err != nil {
		t.Fatalf("create site: %v", err)
	}
	return s
}

func TestEquipUnequipPowerRoundTrip(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner", MiningPower: 10})
	eq := &domain.Equipment{UserID: user.ID, Name: "Drill", Rarity: domain.RarityLegendary, Durability: 100}
	if err := store.Equipment.Create(ctx, eq); err != nil {
		t.Fatalf("create equipment: %v", err)
	}

	if _, err := svcs.Equipment.Equip(ctx, user.ID, eq.ID); err != nil {
		t.Fatalf("equip: %v", err)
	}
	u, _ := store.Users.GetByID(ctx, user.ID)
	if u.MiningPower != 55 {
		t.Fatalf("power after equip = %d, want 55", u.MiningPower)
	}

	if _, err := svcs.Equipment.Unequip(ctx, user.ID, eq.ID); err != nil {
		t.Fatalf("unequip: %v", err)
	}
	u, _ = store.Users.GetByID(ctx, user.ID)
	if u.MiningPower != 10 {
		t.Fatalf("power after unequip = %d, want 10", u.MiningPower)
	}
}

func TestEquipIdempotentAndLimit(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner", MiningPower: 10, EquipmentMax: 1})
	first := &domain.Equipment{UserID: user.ID, Name: "Drill", Rarity: domain.RarityCommon, Durability: 100}
	second := &domain.Equipment{UserID: user.ID, Name: "Helmet", Rarity: domain.RarityCommon, Durability: 100}
	for _, eq := range []*domain.Equipment{first, second} {
		if err := store.Equipment.Create(ctx, eq); err != nil {
			t.Fatalf("create equipment: %v", err)
		}
	}

	if _, err := svcs.Equipment.Equip(ctx, user.ID, first.ID); err != nil {
		t.Fatalf("equip: %v", err)
	}
	// equipping again is a no-op, not a second power credit
	if _, err := svcs.Equipment.Equip(ctx, user.ID, first.ID); err != nil {
		t.Fatalf("re-equip: %v", err)
	}
	u, _ := store.Users.GetByID(ctx, user.ID)
	if u.MiningPower != 20 {
		t.Fatalf("power = %d, want 20", u.MiningPower)
	}

	if _, err := svcs.Equipment.Equip(ctx, user.ID, second.ID); !errors.Is(err, ErrEquipmentLimit) {
		t.Fatalf("equip over limit: err = %v, want ErrEquipmentLimit", err)
	}
}

func TestEquipRejectsForeignEquipment(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	owner := mustCreateUser(t, store, &domain.User{Username: "owner"})
	thief := mustCreateUser(t, store, &domain.User{Username: "thief"})
	eq := &domain.Equipment{UserID: owner.ID, Name: "Drill", Rarity: domain.RarityRare, Durability: 100}
	if err := store.Equipment.Create(ctx, eq); err != nil {
		t.Fatalf("create equipment: %v", err)
	}

	if _, err := svcs.Equipment.Equip(ctx, thief.ID, eq.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestRepair(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner", FlameBalance: 100})
	worn := &domain.Equipment{UserID: user.ID, Name: "Drill", Rarity: domain.RarityRare, Durability: 40, RepairCost: 45}
	fresh := &domain.Equipment{UserID: user.ID, Name: "Helmet", Rarity: domain.RarityRare, Durability: 100, RepairCost: 45}
	pricey := &domain.Equipment{UserID: user.ID, Name: "Suit", Rarity: domain.RarityRare, Durability: 10, RepairCost: 999}
	for _, eq := range []*domain.Equipment{worn, fresh, pricey} {
		if err := store.Equipment.Create(ctx, eq); err != nil {
			t.Fatalf("create equipment: %v", err)
		}
	}

	if _, err := svcs.Equipment.Repair(ctx, user.ID, fresh.ID); !errors.Is(err, ErrAlreadyRepaired) {
		t.Fatalf("repair at 100: err = %v, want ErrAlreadyRepaired", err)
	}
	if _, err := svcs.Equipment.Repair(ctx, user.ID, pricey.ID); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("repair too pricey: err = %v, want ErrInsufficientFunds", err)
	}

	repaired, err := svcs.Equipment.Repair(ctx, user.ID, worn.ID)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if repaired.Durability != 100 {
		t.Fatalf("durability = %d, want 100", repaired.Durability)
	}
	u, _ := store.Users.GetByID(ctx, user.ID)
	if u.FlameBalance != 55 {
		t.Fatalf("balance = %d, want 55", u.FlameBalance)
	}

	txs, _ := store.Transactions.ListByUser(ctx, user.ID, 10)
	if len(txs) != 1 || txs[0].Type != domain.TxRepair || txs[0].Amount != 45 {
		t.Fatalf("unexpected repair transactions: %+v", txs)
	}
}

func TestBuyItem(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{
		Username: "miner", TonAddress: "0:" + hex64(), FlameBalance: 1250, EquipmentCount: 3,
	})
	item := &domain.MarketItem{Name: "Molten Core Helmet", Rarity: domain.RarityLegendary, FlamePrice: 1200, Available: true}
	if err := store.MarketItems.Create(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}

	eq, err := svcs.Market.Buy(ctx, user.ID, item.ID)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if eq.Durability != 100 || eq.IsEquipped {
		t.Fatalf("new equipment not pristine: %+v", eq)
	}
	if eq.RepairCost != 60 { // 5% of 1200
		t.Fatalf("repairCost = %d, want 60", eq.RepairCost)
	}

	u, _ := store.Users.GetByID(ctx, user.ID)
	if u.FlameBalance != 50 {
		t.Fatalf("balance = %d, want 50", u.FlameBalance)
	}
	if u.EquipmentCount != 4 {
		t.Fatalf("equipmentCount = %d, want 4", u.EquipmentCount)
	}
	if u.MiningPower != 0 {
		t.Fatalf("buying must not change mining power, got %d", u.MiningPower)
	}

	txs, _ := store.Transactions.ListByUser(ctx, user.ID, 10)
	if len(txs) != 1 || txs[0].Type != domain.TxBuy || txs[0].Amount != 1200 {
		t.Fatalf("unexpected buy transactions: %+v", txs)
	}
}

func TestBuyRequiresWalletAndFunds(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	noWallet := mustCreateUser(t, store, &domain.User{Username: "broke", FlameBalance: 5000})
	poor := mustCreateUser(t, store, &domain.User{Username: "poor", TonAddress: "0:" + hex64(), FlameBalance: 10})
	item := &domain.MarketItem{Name: "Drill", Rarity: domain.RarityRare, FlamePrice: 420, Available: true}
	if err := store.MarketItems.Create(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}

	if _, err := svcs.Market.Buy(ctx, noWallet.ID, item.ID); !errors.Is(err, ErrWalletNotConnected) {
		t.Fatalf("err = %v, want ErrWalletNotConnected", err)
	}
	if _, err := svcs.Market.Buy(ctx, poor.ID, item.ID); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestStartPremiumGateLeavesMinersUntouched(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner", MiningPower: 500})
	site := mustCreateSite(t, store, &domain.MiningSite{Name: "Volcanic Depths", YieldRate: 28, MinPower: 65, ActiveMiners: 13, IsPremium: true})

	if _, err := svcs.Mining.Start(ctx, user.ID, site.ID); !errors.Is(err, ErrPremiumRequired) {
		t.Fatalf("err = %v, want ErrPremiumRequired", err)
	}
	got, _ := store.Sites.GetByID(ctx, site.ID)
	if got.ActiveMiners != 13 {
		t.Fatalf("activeMiners = %d, want 13", got.ActiveMiners)
	}
}

func TestStartInsufficientPower(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner", MiningPower: 10})
	site := mustCreateSite(t, store, &domain.MiningSite{Name: "Crystal Caves", YieldRate: 35, MinPower: 120})

	_, err := svcs.Mining.Start(ctx, user.ID, site.ID)
	if !errors.Is(err, ErrInsufficientPower) {
		t.Fatalf("err = %v, want ErrInsufficientPower", err)
	}
}

func TestStartSupersedesActiveSession(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner", MiningPower: 100})
	siteA := mustCreateSite(t, store, &domain.MiningSite{Name: "Flame Valley", YieldRate: 12, MinPower: 25, ActiveMiners: 5})
	siteB := mustCreateSite(t, store, &domain.MiningSite{Name: "Volcanic Depths", YieldRate: 28, MinPower: 65, ActiveMiners: 2})

	first, err := svcs.Mining.Start(ctx, user.ID, siteA.ID)
	if err != nil {
		t.Fatalf("start A: %v", err)
	}
	if _, err := svcs.Mining.Start(ctx, user.ID, siteB.ID); err != nil {
		t.Fatalf("start B: %v", err)
	}

	old, _ := store.Sessions.GetByID(ctx, first.ID)
	if old.IsActive {
		t.Fatal("first session still active after supersession")
	}
	a, _ := store.Sites.GetByID(ctx, siteA.ID)
	b, _ := store.Sites.GetByID(ctx, siteB.ID)
	if a.ActiveMiners != 5 { // +1 on start, -1 on supersession
		t.Fatalf("site A miners = %d, want 5", a.ActiveMiners)
	}
	if b.ActiveMiners != 3 {
		t.Fatalf("site B miners = %d, want 3", b.ActiveMiners)
	}

	active, _ := store.Sessions.GetActiveByUser(ctx, user.ID)
	if active == nil || active.SiteID != siteB.ID {
		t.Fatalf("active session = %+v, want one at site B", active)
	}
}

func TestCollectCreditsAndDecays(t *testing.T) {
	svcs, store, clk := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner", MiningPower: 100, FlameBalance: 10})
	site := mustCreateSite(t, store, &domain.MiningSite{Name: "Flame Valley", YieldRate: 12, MinPower: 25})
	eq := &domain.Equipment{UserID: user.ID, Name: "Drill", Rarity: domain.RarityCommon, Durability: 50}
	if err := store.Equipment.Create(ctx, eq); err != nil {
		t.Fatalf("create equipment: %v", err)
	}
	if _, err := svcs.Equipment.Equip(ctx, user.ID, eq.ID); err != nil {
		t.Fatalf("equip: %v", err)
	}

	if _, err := svcs.Mining.Start(ctx, user.ID, site.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(2 * time.Hour)

	reward, err := svcs.Mining.Collect(ctx, user.ID)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if reward != 24 {
		t.Fatalf("reward = %d, want 24", reward)
	}

	u, _ := store.Users.GetByID(ctx, user.ID)
	if u.FlameBalance != 34 {
		t.Fatalf("balance = %d, want 34", u.FlameBalance)
	}

	sess, _ := store.Sessions.GetActiveByUser(ctx, user.ID)
	if sess.AccumulatedReward != 24 {
		t.Fatalf("accumulatedReward = %d, want 24", sess.AccumulatedReward)
	}
	if !sess.LastCollectedAt.Equal(clk.Now()) {
		t.Fatalf("lastCollectedAt = %v, want %v", sess.LastCollectedAt, clk.Now())
	}

	// rand pinned to the low roll: Common loses 3
	worn, _ := store.Equipment.GetByID(ctx, eq.ID)
	if worn.Durability != 47 {
		t.Fatalf("durability = %d, want 47", worn.Durability)
	}

	txs, _ := store.Transactions.ListByUser(ctx, user.ID, 10)
	if len(txs) != 1 || txs[0].Type != domain.TxReceive || txs[0].Amount != 24 {
		t.Fatalf("unexpected transactions: %+v", txs)
	}

	// a second collect right away yields zero but still resets cleanly
	again, err := svcs.Mining.Collect(ctx, user.ID)
	if err != nil {
		t.Fatalf("second collect: %v", err)
	}
	if again != 0 {
		t.Fatalf("immediate re-collect reward = %d, want 0", again)
	}
}

func TestCollectWithoutSession(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	user := mustCreateUser(t, store, &domain.User{Username: "idle"})

	if _, err := svcs.Mining.Collect(context.Background(), user.ID); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("err = %v, want ErrNoActiveSession", err)
	}
}

func TestStop(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner", MiningPower: 100})
	site := mustCreateSite(t, store, &domain.MiningSite{Name: "Flame Valley", YieldRate: 12, MinPower: 25, ActiveMiners: 1})

	if _, err := svcs.Mining.Start(ctx, user.ID, site.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svcs.Mining.Stop(ctx, user.ID); err != nil {
		t.Fatalf("stop: %v", err)
	}

	if sess, _ := store.Sessions.GetActiveByUser(ctx, user.ID); sess != nil {
		t.Fatalf("session still active: %+v", sess)
	}
	got, _ := store.Sites.GetByID(ctx, site.ID)
	if got.ActiveMiners != 1 {
		t.Fatalf("activeMiners = %d, want 1", got.ActiveMiners)
	}

	if err := svcs.Mining.Stop(ctx, user.ID); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("second stop: err = %v, want ErrNoActiveSession", err)
	}
}

func TestStatusInactive(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	user := mustCreateUser(t, store, &domain.User{Username: "idle"})

	st, err := svcs.Mining.Status(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.IsActive || st.Progress != 0 || st.LastHourReward != 0 {
		t.Fatalf("status = %+v, want inactive zero status", st)
	}
}

func TestPremiumSubscribe(t *testing.T) {
	svcs, store, clk := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner", TonAddress: "0:" + hex64(), FlameBalance: 1500})

	sub, err := svcs.Premium.Subscribe(ctx, user.ID, domain.TierStandard, "flame")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if sub.DaysLeft != 30 {
		t.Fatalf("daysLeft = %d, want 30", sub.DaysLeft)
	}
	if want := clk.Now().Add(30 * 24 * time.Hour); !sub.ExpiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v, want %v", sub.ExpiresAt, want)
	}

	u, _ := store.Users.GetByID(ctx, user.ID)
	if u.PremiumTier != domain.TierStandard || u.FlameBalance != 500 {
		t.Fatalf("user after subscribe = %+v", u)
	}

	txs, _ := store.Transactions.ListByUser(ctx, user.ID, 10)
	if len(txs) != 1 || txs[0].Type != domain.TxSend || txs[0].Amount != 1000 || txs[0].IsTon {
		t.Fatalf("unexpected transactions: %+v", txs)
	}
}

func TestPremiumSubscribeRejections(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner", FlameBalance: 100})

	if _, err := svcs.Premium.Subscribe(ctx, user.ID, "gold", "flame"); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("err = %v, want ErrInvalidTier", err)
	}
	if _, err := svcs.Premium.Subscribe(ctx, user.ID, domain.TierVIP, "cash"); !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("err = %v, want ErrInvalidPayment", err)
	}
	if _, err := svcs.Premium.Subscribe(ctx, user.ID, domain.TierVIP, "ton"); !errors.Is(err, ErrWalletNotConnected) {
		t.Fatalf("err = %v, want ErrWalletNotConnected", err)
	}
	if _, err := svcs.Premium.Subscribe(ctx, user.ID, domain.TierVIP, "flame"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestWalletConnect(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "miner"})
	addr := "0:" + hex64()

	if _, err := svcs.Wallet.Connect(ctx, user.ID, "nonsense"); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("err = %v, want ErrInvalidAddress", err)
	}

	connected, err := svcs.Wallet.Connect(ctx, user.ID, addr)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if connected.TonAddress != addr {
		t.Fatalf("tonAddress = %q, want %q", connected.TonAddress, addr)
	}

	// the address now resolves to its owner, even for another caller
	other := mustCreateUser(t, store, &domain.User{Username: "other"})
	resolved, err := svcs.Wallet.Connect(ctx, other.ID, addr)
	if err != nil {
		t.Fatalf("re-connect: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("resolved user = %d, want %d", resolved.ID, user.ID)
	}
}

func TestUserGetRecomputesPremiumDays(t *testing.T) {
	svcs, store, clk := newTestEnv(t)
	ctx := context.Background()

	expiry := clk.Now().Add(29*24*time.Hour + time.Hour)
	user := mustCreateUser(t, store, &domain.User{
		Username: "miner", PremiumTier: domain.TierVIP,
		PremiumExpiresAt: &expiry, PremiumDaysLeft: 30,
	})

	got, err := svcs.Users.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PremiumDaysLeft != 30 { // ceil(29d1h / 24h) = 30
		t.Fatalf("daysLeft = %d, want 30", got.PremiumDaysLeft)
	}

	clk.Advance(40 * 24 * time.Hour)
	got, err = svcs.Users.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if got.PremiumDaysLeft != 0 {
		t.Fatalf("daysLeft = %d, want 0", got.PremiumDaysLeft)
	}
}

func TestRecordTransfer(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	addr := "0:" + hex64()
	user := mustCreateUser(t, store, &domain.User{Username: "miner", TonAddress: addr})

	tx, err := svcs.Transactions.RecordTransfer(ctx, addr, "0:"+hex64(), 0.5)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if tx.UserID != user.ID || tx.Type != domain.TxSend || !tx.IsTon {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if tx.Amount != 500_000_000 {
		t.Fatalf("amount = %d, want 500000000 nanoTON", tx.Amount)
	}
	if tx.Description != "Sent 0.50 TON to 0:83dfd5..." {
		t.Fatalf("description = %q", tx.Description)
	}

	// friendly-form recipients are normalized to raw form for display
	friendly := "UQBFXZrsMvcKgHJkXPPOLfv-9O4jJrZbTJR51zEaLQQKXVC3"
	tx, err = svcs.Transactions.RecordTransfer(ctx, addr, friendly, 2)
	if err != nil {
		t.Fatalf("transfer to friendly address: %v", err)
	}
	if !strings.HasPrefix(tx.Description, "Sent 2.00 TON to 0:") {
		t.Fatalf("description = %q, want raw-form recipient", tx.Description)
	}

	if _, err := svcs.Transactions.RecordTransfer(ctx, "0:deadbeef", addr, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("unknown sender: err = %v, want ErrNotFound", err)
	}
	if _, err := svcs.Transactions.RecordTransfer(ctx, addr, addr, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: err = %v, want ErrInvalidAmount", err)
	}
}

func TestTradingOffersMaterializeEquipment(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, &domain.User{Username: "seller"})
	eq := &domain.Equipment{UserID: user.ID, Name: "Enhancer", Rarity: domain.RarityRare, Durability: 95}
	if err := store.Equipment.Create(ctx, eq); err != nil {
		t.Fatalf("create equipment: %v", err)
	}
	offer := &domain.TradingOffer{
		SellerID: user.ID, SellerName: user.Username,
		EquipmentID: eq.ID, TonPrice: "0.7", FlamePrice: 350, IsActive: true,
	}
	if err := store.Offers.Create(ctx, offer); err != nil {
		t.Fatalf("create offer: %v", err)
	}

	offers, err := svcs.Trading.Offers(ctx)
	if err != nil {
		t.Fatalf("offers: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("len(offers) = %d, want 1", len(offers))
	}
	if offers[0].Equipment == nil || offers[0].Equipment.ID != eq.ID {
		t.Fatalf("equipment not materialized: %+v", offers[0])
	}
}

func TestSweepExpiredDowngradesLapsedTiers(t *testing.T) {
	svcs, store, clk := newTestEnv(t)
	ctx := context.Background()

	lapsedAt := clk.Now().Add(-time.Hour)
	activeUntil := clk.Now().Add(10*24*time.Hour + time.Hour)
	lapsed := mustCreateUser(t, store, &domain.User{
		Username: "lapsed", PremiumTier: domain.TierVIP,
		PremiumExpiresAt: &lapsedAt, PremiumDaysLeft: 1,
	})
	current := mustCreateUser(t, store, &domain.User{
		Username: "current", PremiumTier: domain.TierStandard,
		PremiumExpiresAt: &activeUntil, PremiumDaysLeft: 30,
	})
	free := mustCreateUser(t, store, &domain.User{Username: "free"})

	downgraded, err := svcs.Premium.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if downgraded != 1 {
		t.Fatalf("downgraded = %d, want 1", downgraded)
	}

	u, _ := store.Users.GetByID(ctx, lapsed.ID)
	if u.PremiumTier != domain.TierNone || u.PremiumExpiresAt != nil || u.PremiumDaysLeft != 0 {
		t.Fatalf("lapsed user not cleared: %+v", u)
	}

	u, _ = store.Users.GetByID(ctx, current.ID)
	if u.PremiumTier != domain.TierStandard {
		t.Fatalf("active tier lost: %+v", u)
	}
	if u.PremiumDaysLeft != 11 { // ceil(10d 1h / 24h)
		t.Fatalf("daysLeft = %d, want 11", u.PremiumDaysLeft)
	}

	u, _ = store.Users.GetByID(ctx, free.ID)
	if u.PremiumTier != domain.TierNone || u.PremiumExpiresAt != nil {
		t.Fatalf("free user touched by sweep: %+v", u)
	}
}

func TestSeasonalCountdownTicks(t *testing.T) {
	svcs, store, _ := newTestEnv(t)
	ctx := context.Background()

	long := mustCreateSite(t, store, &domain.MiningSite{
		Name: "Crystal Caves", SeasonalEvent: true, IsEventActive: true, RemainingTime: "2d 14h",
	})
	lastDay := mustCreateSite(t, store, &domain.MiningSite{
		Name: "Ember Ridge", SeasonalEvent: true, IsEventActive: true, RemainingTime: "1d 0h",
	})
	closing := mustCreateSite(t, store, &domain.MiningSite{
		Name: "Ash Hollow", SeasonalEvent: true, IsEventActive: true, RemainingTime: "1h",
	})
	plain := mustCreateSite(t, store, &domain.MiningSite{
		Name: "Flame Valley", IsEventActive: true,
	})

	if err := svcs.Mining.TickSeasonalCountdown(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}

	got, _ := store.Sites.GetByID(ctx, long.ID)
	if got.RemainingTime != "2d 13h" || !got.IsEventActive {
		t.Fatalf("long countdown = %q active=%v, want 2d 13h active", got.RemainingTime, got.IsEventActive)
	}
	got, _ = store.Sites.GetByID(ctx, lastDay.ID)
	if got.RemainingTime != "23h" || !got.IsEventActive {
		t.Fatalf("day boundary countdown = %q active=%v, want 23h active", got.RemainingTime, got.IsEventActive)
	}
	got, _ = store.Sites.GetByID(ctx, closing.ID)
	if got.RemainingTime != "Ended" || got.IsEventActive {
		t.Fatalf("closing event = %q active=%v, want Ended inactive", got.RemainingTime, got.IsEventActive)
	}
	got, _ = store.Sites.GetByID(ctx, plain.ID)
	if got.RemainingTime != "" || !got.IsEventActive {
		t.Fatalf("non-seasonal site touched: %+v", got)
	}
}

func TestCountdownLabels(t *testing.T) {
	cases := []struct {
		label string
		hours int
	}{
		{"2d 14h", 62},
		{"1d 0h", 24},
		{"5h", 5},
	}
	for _, tc := range cases {
		got, ok := parseCountdown(tc.label)
		if !ok || got != tc.hours {
			t.Errorf("parseCountdown(%q) = %d, %v, want %d", tc.label, got, ok, tc.hours)
		}
		if back := formatCountdown(tc.hours); back != tc.label {
			t.Errorf("formatCountdown(%d) = %q, want %q", tc.hours, back, tc.label)
		}
	}

	if _, ok := parseCountdown("Ended"); ok {
		t.Error("parseCountdown accepted a terminal label")
	}
	if _, ok := parseCountdown(""); ok {
		t.Error("parseCountdown accepted an empty label")
	}
}

// hex64 is a fixed 64-char hex body for raw-form addresses used in tests.
func hex64() string {
	return "83dfd552e63729b0cd9dd4217a1b6e4b0e0d2f6b6f7c1a2b3c4d5e6f70819203"
}
