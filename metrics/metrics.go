// Package metrics exposes Prometheus collectors for the peripheral.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findme_alerts_total",
			Help: "Alert level writes received, by decoded message.",
		},
		[]string{"message"},
	)
	NotificationsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "findme_notifications_sent_total",
			Help: "Alert notifications pushed to a subscribed central.",
		},
	)
	NotificationsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "findme_notifications_dropped_total",
			Help: "Alert notifications dropped because no central was subscribed.",
		},
	)
)

func init() {
	prometheus.MustRegister(AlertsTotal)
	prometheus.MustRegister(NotificationsSent)
	prometheus.MustRegister(NotificationsDropped)
}
