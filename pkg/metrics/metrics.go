package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business counters exposed on /metrics.
var (
	OTPIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodloan_otp_issued_total",
		Help: "Number of login passcodes issued over SMS",
	})

	CartLoanRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodloan_cart_loan_rejections_total",
		Help: "Cart mutations rejected for exceeding the loan unit ceiling",
	})

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodloan_orders_created_total",
		Help: "Orders created through checkout",
	})

	TrackingUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodloan_tracking_updates_total",
		Help: "Tracking trail entries appended, labelled by status",
	}, []string{"status"})

	LowStockAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodloan_low_stock_alerts_total",
		Help: "Variants flagged below the stock threshold by the daily scan",
	})
)
