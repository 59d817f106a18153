package api

import (
	"sync/atomic"
	"time"
)

// Metrics collects in-memory server metrics using atomic counters.
type Metrics struct {
	startTime    time.Time
	requests     atomic.Int64
	serverErrors atomic.Int64
	clientErrors atomic.Int64
	commands     atomic.Int64
	logins       atomic.Int64
}

// MetricsSnapshot is a point-in-time view of server metrics.
type MetricsSnapshot struct {
	UptimeSeconds     float64 `json:"uptime_seconds"`
	Requests          int64   `json:"requests"`
	ServerErrors      int64   `json:"server_errors"`
	ClientErrors      int64   `json:"client_errors"`
	CommandsGenerated int64   `json:"commands_generated"`
	Logins            int64   `json:"logins"`
}

// NewMetrics creates a new Metrics instance with the current time as start.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordRequest increments the total request counter.
func (m *Metrics) RecordRequest() {
	m.requests.Add(1)
}

// RecordError increments the server error (5xx) counter.
func (m *Metrics) RecordError() {
	m.serverErrors.Add(1)
}

// RecordClientError increments the client error (4xx) counter.
func (m *Metrics) RecordClientError() {
	m.clientErrors.Add(1)
}

// RecordCommand increments the generated command counter.
func (m *Metrics) RecordCommand() {
	m.commands.Add(1)
}

// RecordLogin increments the successful mock login counter.
func (m *Metrics) RecordLogin() {
	m.logins.Add(1)
}

// Snapshot returns a point-in-time copy of the metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		UptimeSeconds:     time.Since(m.startTime).Seconds(),
		Requests:          m.requests.Load(),
		ServerErrors:      m.serverErrors.Load(),
		ClientErrors:      m.clientErrors.Load(),
		CommandsGenerated: m.commands.Load(),
		Logins:            m.logins.Load(),
	}
}
