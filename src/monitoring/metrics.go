package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total orders created",
		},
		[]string{"status"},
	)

	TicketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Total individual tickets issued",
		},
	)

	OrderNumberRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_number_collision_retries_total",
			Help: "Order number candidates regenerated after a collision",
		},
	)

	OrdersSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stale_orders_swept_total",
			Help: "Pending orders cancelled by the sweeper job",
		},
	)
)
