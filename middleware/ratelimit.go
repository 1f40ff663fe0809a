package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SenderLimiter rate-limits inbound webhook events per sender. Stale entries
// are dropped by a background cleanup loop.
type SenderLimiter struct {
	ratePerMin int
	burst      int

	mu       sync.Mutex
	limiters map[string]*senderEntry

	stopCh chan struct{}
}

type senderEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func NewSenderLimiter(ratePerMin, burst int) *SenderLimiter {
	sl := &SenderLimiter{
		ratePerMin: ratePerMin,
		burst:      burst,
		limiters:   make(map[string]*senderEntry),
		stopCh:     make(chan struct{}),
	}

	go sl.cleanupLoop()

	return sl
}

// Allow reports whether an event from senderID may be processed now.
func (sl *SenderLimiter) Allow(senderID string) bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	entry, ok := sl.limiters[senderID]
	if !ok {
		entry = &senderEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(sl.ratePerMin)/60.0), sl.burst),
		}
		sl.limiters[senderID] = entry
	}
	entry.lastAccess = time.Now()

	return entry.limiter.Allow()
}

func (sl *SenderLimiter) Stop() {
	close(sl.stopCh)
}

func (sl *SenderLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sl.cleanup(10 * time.Minute)
		case <-sl.stopCh:
			return
		}
	}
}

func (sl *SenderLimiter) cleanup(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)

	sl.mu.Lock()
	defer sl.mu.Unlock()

	for id, entry := range sl.limiters {
		if entry.lastAccess.Before(cutoff) {
			delete(sl.limiters, id)
		}
	}
}
