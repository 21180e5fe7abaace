package vectorize

import (
	"fmt"
	"sync"
	"time"
)

// Stats is a point-in-time snapshot of the service's performance
// counters.
type Stats struct {
	TotalRequests int64   `json:"total_requests"`
	CacheHits     int64   `json:"cache_hits"`
	CacheHitRate  string  `json:"cache_hit_rate"`
	AvgTime       float64 `json:"avg_time"`
	Dimension     int     `json:"dimension"`
	CacheSize     int     `json:"cache_size"`
}

// counters holds the process-wide performance counters. Monotonically
// non-decreasing except on explicit reset; guarded by a single mutex
// that is never held across provider I/O.
type counters struct {
	mu            sync.Mutex
	totalRequests int64
	cacheHits     int64
	totalTime     time.Duration
}

func (c *counters) record(requests, hits int, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalRequests += int64(requests)
	c.cacheHits += int64(hits)
	c.totalTime += elapsed
}

func (c *counters) snapshot() (requests, hits int64, total time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalRequests, c.cacheHits, c.totalTime
}

func (c *counters) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalRequests = 0
	c.cacheHits = 0
	c.totalTime = 0
}

// hitRate formats hits/requests as a percentage string.
func hitRate(requests, hits int64) string {
	if requests == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(hits)/float64(requests))
}
