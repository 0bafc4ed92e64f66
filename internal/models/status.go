package models

import "time"

// Status labels stored in the internet_status table. The dashboard groups on
// these exact strings, so changing them is effectively a schema change.
const (
	StatusFullyUp     = "Fully Up"
	StatusPartiallyUp = "Partially Up"
	StatusDown        = "Down"
)

// StatusRecord is one monitoring run as persisted. Records are append-only;
// latency fields are nil when the run had no successful probes.
type StatusRecord struct {
	ID                int64     `json:"id"`
	Timestamp         time.Time `json:"timestamp"`
	Status            string    `json:"status"`
	SuccessPercentage int       `json:"success_percentage"`
	AvgLatencyMS      *float64  `json:"avg_latency_ms"`
	MaxLatencyMS      *float64  `json:"max_latency_ms"`
	MinLatencyMS      *float64  `json:"min_latency_ms"`
	PacketLoss        int       `json:"packet_loss"`
}

// ProbeSample is the raw outcome of probing a single target: how many echo
// requests went out, how many came back, and the round-trip time of each
// successful one.
type ProbeSample struct {
	Target   string
	Sent     int
	Received int
	RTTs     []time.Duration
}

// StatusCounts holds per-label record counts over a time range.
type StatusCounts struct {
	FullyUp     int `json:"fully_up"`
	PartiallyUp int `json:"partially_up"`
	Down        int `json:"down"`
}
