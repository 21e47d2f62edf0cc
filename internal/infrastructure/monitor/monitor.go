package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pinger is the backend probe the monitor schedules.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor periodically pings the store and caches the outcome for /health.
type Monitor struct {
	name     string
	target   Pinger
	interval time.Duration
	logger   *zap.Logger
	cron     *cron.Cron

	mu     sync.RWMutex
	status Status
}

// New builds a monitor probing target every interval.
func New(name string, target Pinger, interval time.Duration, logger *zap.Logger) (*Monitor, error) {
	if interval < time.Second {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Monitor{
		name:     name,
		target:   target,
		interval: interval,
		logger:   logger,
		cron:     cron.New(cron.WithSeconds()),
		status:   Status{Store: name},
	}

	if err := m.schedule(fmt.Sprintf("@every %ds", int(interval.Seconds()))); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Monitor) schedule(spec string) error {
	if _, err := m.cron.AddFunc(spec, m.Refresh); err != nil {
		m.logger.Error("schedule store probe", zap.String("schedule", spec), zap.Error(err))
		return fmt.Errorf("schedule store probe %q: %w", spec, err)
	}
	return nil
}

// Start runs one probe synchronously, then hands further probes to the scheduler.
func (m *Monitor) Start() {
	m.Refresh()
	m.cron.Start()
}

// Stop halts the scheduler and waits for a running probe, bounded by ctx.
func (m *Monitor) Stop(ctx context.Context) {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

// Status returns the latest probe result.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh probes the store now.
func (m *Monitor) Refresh() {
	timeout := m.interval / 2
	if timeout > 3*time.Second {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	err := m.target.Ping(ctx)
	status := Status{
		Store:     m.name,
		Online:    err == nil,
		Latency:   time.Since(start).String(),
		LastCheck: time.Now().UTC(),
	}
	if err != nil {
		status.Error = err.Error()
	}

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	if prev.Online != status.Online || prev.LastCheck.IsZero() {
		if status.Online {
			m.logger.Info("store online", zap.String("store", m.name))
		} else {
			m.logger.Warn("store offline", zap.String("store", m.name), zap.Error(err))
		}
	}
}
