// Package metrics defines all custom Prometheus metrics for the storefront
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at
// import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// OrdersCreatedTotal counts successfully placed orders.
// Label:
//   - payment: "paystack" when a payment reference accompanied the order,
//     "none" otherwise
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by payment kind.",
	},
	[]string{"payment"},
)

// StockConflictsTotal counts order attempts rolled back because a product
// had insufficient stock for the requested quantity.
var StockConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_conflicts_total",
		Help:      "Total number of orders rejected by the conditional stock decrement.",
	},
)

// StatusUpdatesTotal counts order status changes.
// Label:
//   - status: the new status applied (e.g. "shipped")
var StatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_updates_total",
		Help:      "Total number of order status updates, by new status.",
	},
	[]string{"status"},
)

// PaymentVerificationsTotal counts gateway verification calls.
// Label:
//   - result: the gateway-reported transaction status (e.g. "success"),
//     or "error" when the call failed
var PaymentVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_verifications_total",
		Help:      "Total number of payment verification calls, by gateway result.",
	},
	[]string{"result"},
)
