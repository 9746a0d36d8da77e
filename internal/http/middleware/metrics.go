package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)

	RoomsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rooms_created_total",
			Help: "Total rooms created, by room type",
		},
		[]string{"room_type"},
	)
	RoomsJoined = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rooms_joined_total",
			Help: "Total successful room joins, by room type",
		},
		[]string{"room_type"},
	)
	GoldPurchased = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gold_purchased_total",
			Help: "Total gold credits purchased",
		},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(RoomsCreated)
	prometheus.MustRegister(RoomsJoined)
	prometheus.MustRegister(GoldPurchased)
}
