package http

import (
	"time"

	"mining_webapp/internal/config"
	"mining_webapp/internal/http/handlers"
	"mining_webapp/internal/http/middleware"
	"mining_webapp/internal/repository"
	"mining_webapp/internal/service"
	"mining_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything the routes need. DB is nil when the memory
// store backend is active; health checks adapt.
type Deps struct {
	Services *service.Services
	Store    *repository.Store
	DB       *pgxpool.Pool
	Hub      *ws.Hub
	Config   *config.Config
	Version  string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	h := handlers.NewHandler(d.Services)
	health := handlers.NewHealthHandler(d.DB, d.Version)

	// probes and metrics, no rate limiting
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiWindow := time.Duration(d.Config.APIRateWindow) * time.Second
	rateLimit := middleware.RateLimit(d.Config.APIRateLimit, apiWindow)
	identity := middleware.Identity(d.Store.Users, d.Config.DemoUsername)
	actionRL := middleware.ActionRateLimit(d.Config.APIRateLimit, apiWindow)

	api := r.Group("/api")
	api.Use(rateLimit)

	// endpoints that do not act as the demo user
	api.POST("/user/create", h.CreateUser)
	api.POST("/transactions", h.CreateTransaction)

	// everything else runs as the resolved user
	user := api.Group("")
	user.Use(identity)
	{
		user.GET("/user", h.GetUser)
		user.POST("/wallet/connect", h.ConnectWallet)

		user.GET("/equipment/active", h.ActiveEquipment)
		user.GET("/inventory", h.Inventory)
		user.POST("/equipment/equip", h.Equip)
		user.POST("/equipment/unequip", h.Unequip)
		user.POST("/equipment/repair", h.RepairEquipment)

		user.GET("/market/items", h.MarketItems)
		user.POST("/market/buy", actionRL, h.BuyItem)
		user.POST("/market/list", h.ListEquipment)

		user.GET("/mining/sites", h.MiningSites)
		user.GET("/mining/status", h.MiningStatus)
		user.POST("/mining/start", actionRL, h.StartMining)
		user.POST("/mining/collect", actionRL, h.CollectRewards)
		user.POST("/mining/stop", h.StopMining)

		user.GET("/trading/offers", h.TradingOffers)
		user.POST("/premium/subscribe", h.Subscribe)
		user.GET("/transactions", h.Transactions)
	}

	// live mining feed
	r.GET("/ws", identity, h.WS(d.Hub))
}
