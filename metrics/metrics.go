// Package metrics collects and exposes Prometheus metrics for the bot.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records the counters the webhook and dispatch paths care about.
type Collector struct {
	commandsHandled   *prometheus.CounterVec
	remindersCreated  *prometheus.CounterVec
	remindersDeleted  prometheus.Counter
	dispatchDelivered prometheus.Counter
	dispatchFailures  prometheus.Counter
	chatCompletions   *prometheus.CounterVec
	scanDuration      prometheus.Histogram
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		commandsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linebell_commands_handled_total",
			Help: "Reminder commands handled, by subcommand.",
		}, []string{"subcommand"}),
		remindersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linebell_reminders_created_total",
			Help: "Reminders created, by kind (once, daily, weekly).",
		}, []string{"kind"}),
		remindersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linebell_reminders_deleted_total",
			Help: "Reminders deleted by their owner.",
		}),
		dispatchDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linebell_dispatch_delivered_total",
			Help: "Reminder messages delivered by the dispatch scan.",
		}),
		dispatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linebell_dispatch_failures_total",
			Help: "Reminder deliveries that failed and will be retried.",
		}),
		chatCompletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linebell_chat_completions_total",
			Help: "Chat completion calls, by outcome.",
		}, []string{"outcome"}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "linebell_scan_duration_seconds",
			Help:    "Duration of a dispatch scan.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.commandsHandled,
		c.remindersCreated,
		c.remindersDeleted,
		c.dispatchDelivered,
		c.dispatchFailures,
		c.chatCompletions,
		c.scanDuration,
	)

	return c
}

func (c *Collector) RecordCommand(subcommand string) {
	c.commandsHandled.WithLabelValues(subcommand).Inc()
}

func (c *Collector) RecordReminderCreated(kind string) {
	c.remindersCreated.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordReminderDeleted() {
	c.remindersDeleted.Inc()
}

func (c *Collector) RecordDispatchDelivered() {
	c.dispatchDelivered.Inc()
}

func (c *Collector) RecordDispatchFailure() {
	c.dispatchFailures.Inc()
}

func (c *Collector) RecordChatCompletion(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	c.chatCompletions.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordScanDuration(d time.Duration) {
	c.scanDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
