package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parkease_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parkease_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parkease_bookings_total",
			Help: "Total number of bookings by status transition",
		},
		[]string{"status"},
	)

	EarningsCreditedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "parkease_earnings_credited_total",
			Help: "Total number of owner earnings credits",
		},
	)

	CommissionAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "parkease_commission_amount",
			Help:    "Commission charged per completed booking, in currency units",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)

	RefundDeductionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "parkease_refund_deductions_total",
			Help: "Total number of wallet refund deductions",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parkease_notifications_total",
			Help: "Total number of notifications by delivery status",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parkease_notification_queue_length",
			Help: "Current length of the notification delivery queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

func RecordEarningsCredit(commission float64) {
	EarningsCreditedTotal.Inc()
	CommissionAmount.Observe(commission)
}

func RecordRefundDeduction() {
	RefundDeductionsTotal.Inc()
}

func RecordNotification(notifType, status string) {
	NotificationsTotal.WithLabelValues(notifType, status).Inc()
}
