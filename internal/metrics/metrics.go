package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	messagesHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "poezdka",
			Name:      "messages_handled_total",
			Help:      "Count of handled messages by routing outcome.",
		},
		[]string{"route"},
	)

	scenarioApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "poezdka",
			Name:      "scenario_applied_total",
			Help:      "Count of scenario applications by scenario name.",
		},
		[]string{"scenario"},
	)

	promoApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "poezdka",
			Name:      "promo_applied_total",
			Help:      "Count of promotions added to carts.",
		},
	)

	orderConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "poezdka",
			Name:      "order_confirmed_total",
			Help:      "Count of orders persisted successfully.",
		},
	)

	orderCommitFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "poezdka",
			Name:      "order_commit_failed_total",
			Help:      "Count of order persistence failures.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(messagesHandled, scenarioApplied, promoApplied, orderConfirmed, orderCommitFailed)
	})
}

func IncMessageHandled(route string) {
	messagesHandled.WithLabelValues(route).Inc()
}

func IncScenarioApplied(name string) {
	scenarioApplied.WithLabelValues(name).Inc()
}

func IncPromoApplied() {
	promoApplied.Inc()
}

func IncOrderConfirmed() {
	orderConfirmed.Inc()
}

func IncOrderCommitFailed() {
	orderCommitFailed.Inc()
}
