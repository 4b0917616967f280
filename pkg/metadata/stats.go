package metadata

import (
	"sync"
	"time"
)

// Stats is a point-in-time snapshot of the resolver's counters.
type Stats struct {
	Lookups      map[Kind]int64 `json:"lookups"`
	CacheHits    map[Kind]int64 `json:"cacheHits"`
	TotalLookups int64          `json:"totalLookups"`
	TotalHits    int64          `json:"totalHits"`
	// AvgLookupTime is the mean duration of resolutions that reached the
	// external service.
	AvgLookupTime time.Duration `json:"avgLookupTime"`
	// AvgCacheTime is the mean duration of resolutions served from cache.
	AvgCacheTime time.Duration `json:"avgCacheTime"`
	// CacheHitRate is hits / (hits + lookups), between 0 and 1.
	CacheHitRate float64 `json:"cacheHitRate"`
}

// tracker accumulates per-kind lookup and hit counters plus timing samples.
type tracker struct {
	mu sync.Mutex

	lookups map[Kind]int64
	hits    map[Kind]int64

	apiTotal   time.Duration
	apiCount   int64
	cacheTotal time.Duration
	cacheCount int64
}

func newTracker() *tracker {
	return &tracker{
		lookups: make(map[Kind]int64),
		hits:    make(map[Kind]int64),
	}
}

// hit records a resolution served from cache.
func (t *tracker) hit(kind Kind, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hits[kind]++
	t.cacheTotal += d
	t.cacheCount++
}

// miss records a resolution that went to the external service, successful or not.
func (t *tracker) miss(kind Kind, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lookups[kind]++
	t.apiTotal += d
	t.apiCount++
}

func (t *tracker) snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Stats{
		Lookups:   make(map[Kind]int64, len(t.lookups)),
		CacheHits: make(map[Kind]int64, len(t.hits)),
	}
	for k, v := range t.lookups {
		s.Lookups[k] = v
		s.TotalLookups += v
	}
	for k, v := range t.hits {
		s.CacheHits[k] = v
		s.TotalHits += v
	}

	if t.apiCount > 0 {
		s.AvgLookupTime = t.apiTotal / time.Duration(t.apiCount)
	}
	if t.cacheCount > 0 {
		s.AvgCacheTime = t.cacheTotal / time.Duration(t.cacheCount)
	}
	if total := s.TotalHits + s.TotalLookups; total > 0 {
		s.CacheHitRate = float64(s.TotalHits) / float64(total)
	}

	return s
}
