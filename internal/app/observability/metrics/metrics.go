package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	TransitionsTotal    metric.Int64Counter
	TransitionDuration  metric.Float64Histogram
	StaleDiscardsTotal  metric.Int64Counter
	SearchRequestsTotal metric.Int64Counter
	GatewayErrorsTotal  metric.Int64Counter
	ActiveSessionsGauge metric.Int64UpDownCounter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("worldlens")
		var err error
		m := &AppMetrics{}

		m.TransitionsTotal, err = meter.Int64Counter(
			"location_transitions_total",
			metric.WithDescription("Total number of location transitions (fresh and traversal)"),
			metric.WithUnit("{transition}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create location_transitions_total: %v", err)
		}

		m.TransitionDuration, err = meter.Float64Histogram(
			"location_transition_duration_seconds",
			metric.WithDescription("Duration of location transitions including the summary fetch"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create location_transition_duration_seconds: %v", err)
		}

		m.StaleDiscardsTotal, err = meter.Int64Counter(
			"stale_refresh_discards_total",
			metric.WithDescription("Gallery/question refresh results discarded because a newer session token superseded them"),
			metric.WithUnit("{discard}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create stale_refresh_discards_total: %v", err)
		}

		m.SearchRequestsTotal, err = meter.Int64Counter(
			"search_requests_total",
			metric.WithDescription("Total number of free-text place searches"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_requests_total: %v", err)
		}

		m.GatewayErrorsTotal, err = meter.Int64Counter(
			"ai_gateway_errors_total",
			metric.WithDescription("AI gateway calls that failed after retries"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create ai_gateway_errors_total: %v", err)
		}

		m.ActiveSessionsGauge, err = meter.Int64UpDownCounter(
			"active_sessions_current",
			metric.WithDescription("Current number of live exploration sessions"),
			metric.WithUnit("{session}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create active_sessions_current: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
