package stats

import (
	"sync"
	"time"

	"aquasight-server-go/internal/domain/eventbus"
	"aquasight-server-go/internal/domain/water"
	"aquasight-server-go/internal/platform/errors"
	"aquasight-server-go/internal/utils"
)

// Collector aggregates analysis outcomes published on the event bus. It
// backs the health endpoint's runtime counters.
type Collector struct {
	mu             sync.RWMutex
	completed      uint64
	failed         uint64
	byQuality      map[water.QualityLevel]uint64
	totalDuration  time.Duration
	lastAnalyzedAt time.Time
}

// Snapshot is a point-in-time copy of the collector counters.
type Snapshot struct {
	Completed      uint64                        `json:"completed"`
	Failed         uint64                        `json:"failed"`
	ByQuality      map[water.QualityLevel]uint64 `json:"byQuality"`
	AvgDurationMs  float64                       `json:"avgDurationMs"`
	LastAnalyzedAt time.Time                     `json:"lastAnalyzedAt"`
}

func NewCollector() *Collector {
	return &Collector{
		byQuality: make(map[water.QualityLevel]uint64),
	}
}

// Subscribe attaches the collector to an event bus. Subscriber errors from
// the underlying bus are wrapped so callers can tell registration failures
// apart from runtime ones.
func (c *Collector) Subscribe(bus *eventbus.AsyncEventBus, logger *utils.Logger) error {
	if err := bus.SubscribeAsync(eventbus.TopicAnalysisCompleted, c.onCompleted); err != nil {
		return errors.Wrap(errors.KindPlatform, "stats.subscribe", "subscribe completed topic", err)
	}
	if err := bus.SubscribeAsync(eventbus.TopicAnalysisFailed, c.onFailed); err != nil {
		return errors.Wrap(errors.KindPlatform, "stats.subscribe", "subscribe failed topic", err)
	}
	logger.InfoTag("EVENTS", "stats collector subscribed to analysis events")
	return nil
}

func (c *Collector) onCompleted(event water.CompletedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed++
	c.byQuality[event.Quality]++
	c.totalDuration += event.Duration
	c.lastAnalyzedAt = time.Now().UTC()
}

func (c *Collector) onFailed(water.FailedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed++
}

// Snapshot returns a copy of the current counters.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byQuality := make(map[water.QualityLevel]uint64, len(c.byQuality))
	for k, v := range c.byQuality {
		byQuality[k] = v
	}

	var avgMs float64
	if c.completed > 0 {
		avgMs = float64(c.totalDuration.Milliseconds()) / float64(c.completed)
	}

	return Snapshot{
		Completed:      c.completed,
		Failed:         c.failed,
		ByQuality:      byQuality,
		AvgDurationMs:  avgMs,
		LastAnalyzedAt: c.lastAnalyzedAt,
	}
}
