package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	clientErrors    uint64
	serverErrors    uint64
	rateLimited     uint64
	totalDurationMs uint64

	mu     sync.Mutex
	routes map[string]uint64
}

func New() *Collector {
	return &Collector{routes: map[string]uint64{}}
}

// Record counts one finished request. route is the matched chi pattern.
func (c *Collector) Record(route string, status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status == 429:
		atomic.AddUint64(&c.rateLimited, 1)
		atomic.AddUint64(&c.clientErrors, 1)
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))

	if route == "" {
		route = "unmatched"
	}
	c.mu.Lock()
	c.routes[route]++
	c.mu.Unlock()
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	keys := make([]string, 0, len(c.routes))
	for k := range c.routes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	routes := make(map[string]uint64, len(keys))
	for _, k := range keys {
		routes[k] = c.routes[k]
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":     total,
		"clientErrorsTotal": atomic.LoadUint64(&c.clientErrors),
		"serverErrorsTotal": atomic.LoadUint64(&c.serverErrors),
		"rateLimitedTotal":  atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":     avg,
		"routes":            routes,
	}
}
