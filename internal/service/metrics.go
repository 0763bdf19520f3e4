package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	miningCollects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mining_collects_total",
			Help: "Total reward collections",
		},
	)
	miningRewards = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mining_rewards_flame_total",
			Help: "Total Flame Coins paid out by collections",
		},
	)
	marketPurchases = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "market_purchases_total",
			Help: "Total marketplace purchases",
		},
	)
	premiumSubscriptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "premium_subscriptions_total",
			Help: "Total premium subscriptions by tier",
		},
		[]string{"tier"},
	)
)

func init() {
	prometheus.MustRegister(miningCollects)
	prometheus.MustRegister(miningRewards)
	prometheus.MustRegister(marketPurchases)
	prometheus.MustRegister(premiumSubscriptions)
}
