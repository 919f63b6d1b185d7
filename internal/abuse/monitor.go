package abuse

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Verdict is the monitor's decision for one observed request.
type Verdict int

const (
	// Allowed lets the request continue down the middleware chain.
	Allowed Verdict = iota
	// BlockedRate means the source exceeded the request-rate threshold.
	BlockedRate
	// BlockedScan means the source hit too many distinct endpoints.
	BlockedScan
)

// Blocked reports whether the verdict rejects the request.
func (v Verdict) Blocked() bool { return v != Allowed }

// Reason is a short label for metrics and logs.
func (v Verdict) Reason() string {
	switch v {
	case BlockedRate:
		return "rate"
	case BlockedScan:
		return "scan"
	default:
		return "none"
	}
}

// Config holds the monitor's thresholds and windows. Both windows are
// anchored to the first request seen from a source.
type Config struct {
	RateThreshold int // requests allowed inside RateWindow
	RateWindow    time.Duration
	ScanThreshold int // distinct paths allowed inside ScanWindow
	ScanWindow    time.Duration
	Retention     time.Duration // evict records idle longer than this
	SweepPeriod   time.Duration // how often the background sweep runs
	Exempt        []string      // addresses never tracked (loopback, trusted)
}

func (c Config) withDefaults() Config {
	if c.RateThreshold <= 0 {
		c.RateThreshold = 50
	}
	if c.RateWindow <= 0 {
		c.RateWindow = 10 * time.Second
	}
	if c.ScanThreshold <= 0 {
		c.ScanThreshold = 20
	}
	if c.ScanWindow <= 0 {
		c.ScanWindow = 30 * time.Second
	}
	if c.Retention <= 0 {
		c.Retention = time.Hour
	}
	if c.SweepPeriod <= 0 {
		c.SweepPeriod = 10 * time.Minute
	}
	if c.Exempt == nil {
		c.Exempt = []string{"127.0.0.1", "::1"}
	}
	return c
}

// record tracks one source address. Counters are monotonic within the
// record's lifetime; a record only resets by being swept after Retention.
type record struct {
	count     int
	firstSeen time.Time
	lastSeen  time.Time
	endpoints map[string]struct{}
}

// Monitor watches per-source request activity and promotes abusive
// sources to the blocklist. All state is behind one mutex; updates are
// cheap map operations, so a single lock is enough at this layer's
// request rates.
type Monitor struct {
	mu      sync.Mutex
	cfg     Config
	records map[string]*record
	exempt  map[string]struct{}
	blocks  Blocklist
	log     zerolog.Logger
	now     func() time.Time
}

// NewMonitor builds a monitor feeding the given blocklist.
func NewMonitor(cfg Config, blocks Blocklist, log zerolog.Logger) *Monitor {
	cfg = cfg.withDefaults()
	exempt := make(map[string]struct{}, len(cfg.Exempt))
	for _, addr := range cfg.Exempt {
		exempt[addr] = struct{}{}
	}
	return &Monitor{
		cfg:     cfg,
		records: make(map[string]*record),
		exempt:  exempt,
		blocks:  blocks,
		log:     log,
		now:     time.Now,
	}
}

// Observe records one request from addr to path and decides whether the
// source just crossed an abuse threshold. The triggering request itself
// is rejected: the caller must honour a blocked verdict immediately.
func (m *Monitor) Observe(ctx context.Context, addr, path string) Verdict {
	if _, ok := m.exempt[addr]; ok {
		return Allowed
	}

	m.mu.Lock()
	now := m.now()

	rec, ok := m.records[addr]
	if !ok {
		m.records[addr] = &record{
			count:     1,
			firstSeen: now,
			lastSeen:  now,
			endpoints: map[string]struct{}{path: {}},
		}
		m.mu.Unlock()
		return Allowed
	}

	rec.count++
	rec.lastSeen = now
	rec.endpoints[path] = struct{}{}

	verdict := Allowed
	elapsed := now.Sub(rec.firstSeen)
	switch {
	case rec.count > m.cfg.RateThreshold && elapsed < m.cfg.RateWindow:
		verdict = BlockedRate
	case len(rec.endpoints) > m.cfg.ScanThreshold && elapsed < m.cfg.ScanWindow:
		verdict = BlockedScan
	}
	m.mu.Unlock()

	if verdict.Blocked() {
		m.log.Warn().
			Str("addr", addr).
			Str("reason", verdict.Reason()).
			Msg("suspicious activity detected, blocking source")
		if err := m.blocks.Add(ctx, addr); err != nil {
			m.log.Error().Err(err).Str("addr", addr).Msg("blocklist add failed")
		}
	}
	return verdict
}

// Run sweeps idle records on a timer until ctx is cancelled. The sweep
// only bounds memory growth; blocking decisions never depend on it.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.SweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := m.sweep()
			if evicted > 0 {
				m.log.Debug().Int("evicted", evicted).Msg("abuse records swept")
			}
		}
	}
}

func (m *Monitor) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.cfg.Retention)
	evicted := 0
	for addr, rec := range m.records {
		if rec.lastSeen.Before(cutoff) {
			delete(m.records, addr)
			evicted++
		}
	}
	return evicted
}

// Tracked returns the number of live source records.
func (m *Monitor) Tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
