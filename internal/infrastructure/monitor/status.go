package monitor

import "time"

// Status is the result of the latest store probe.
type Status struct {
	Store     string    `json:"store"`
	Online    bool      `json:"online"`
	Error     string    `json:"error,omitempty"`
	Latency   string    `json:"latency"`
	LastCheck time.Time `json:"last_check"`
}
