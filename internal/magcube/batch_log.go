package magcube

import (
	"sort"
	"sync"
	"time"
)

type BatchLog struct {
	Request  string
	Chunk    int
	Points   int
	Grad     bool
	Duration time.Duration
}

type BatchLogCache struct {
	mu      sync.Mutex
	batches map[string][]BatchLog // request id -> chunks
}

var cache = &BatchLogCache{
	batches: make(map[string][]BatchLog),
}

func logBatch(request string, chunk, points int, grad bool, d time.Duration) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.batches[request] = append(cache.batches[request], BatchLog{
		Request:  request,
		Chunk:    chunk,
		Points:   points,
		Grad:     grad,
		Duration: d,
	})
}

func batchLogs(request string) []BatchLog {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return append([]BatchLog(nil), cache.batches[request]...)
}

func batchStats() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	ids := make([]string, 0, len(cache.batches))
	for k := range cache.batches {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	for _, id := range ids {
		v := cache.batches[id]
		points := 0
		var total time.Duration
		for _, b := range v {
			points += b.Points
			total += b.Duration
		}
		Log.Infow("batch stats", "request", id, "chunks", len(v), "points", points, "time", total)
	}
}
