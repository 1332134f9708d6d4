package ratelimit

import "time"

// NoopMetrics is a MetricsRecorder that discards all events. It is used in
// tests and when metrics are disabled.
type NoopMetrics struct{}

// NewNoopMetrics returns a metrics recorder that does nothing.
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

// RecordAllowed does nothing.
func (m *NoopMetrics) RecordAllowed(string) {}

// RecordDenied does nothing.
func (m *NoopMetrics) RecordDenied(string) {}

// RecordCheckDuration does nothing.
func (m *NoopMetrics) RecordCheckDuration(time.Duration) {}

// SetActiveKeys does nothing.
func (m *NoopMetrics) SetActiveKeys(int) {}
