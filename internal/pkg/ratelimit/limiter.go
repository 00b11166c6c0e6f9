package ratelimit

import (
	"sync"
	"time"

	"github.com/RussellLuo/slidingwindow"
)

// ActorLimiter caps how often a given actor may invoke an action class,
// using one sliding window per actor key. Counters are the only shared
// cross-request state in the service; the map is mutex-guarded and each
// window handles its own atomicity. A race at the window boundary lets
// at most one extra action through, which is acceptable here.
type ActorLimiter struct {
	mu     sync.Mutex
	window time.Duration
	limit  int64
	actors map[string]*slidingwindow.Limiter
	stops  []slidingwindow.StopFunc
}

// NewActorLimiter creates a per-actor sliding-window limiter
func NewActorLimiter(limit int, window time.Duration) *ActorLimiter {
	return &ActorLimiter{
		window: window,
		limit:  int64(limit),
		actors: make(map[string]*slidingwindow.Limiter),
	}
}

// Allow reports whether the actor may perform one more action now
func (l *ActorLimiter) Allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.actors[key]
	if !ok {
		var stop slidingwindow.StopFunc
		lim, stop = slidingwindow.NewLimiter(l.window, l.limit, func() (slidingwindow.Window, slidingwindow.StopFunc) {
			return slidingwindow.NewLocalWindow()
		})
		l.actors[key] = lim
		l.stops = append(l.stops, stop)
	}
	l.mu.Unlock()

	return lim.Allow()
}

// Stop releases the window sync goroutines
func (l *ActorLimiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, stop := range l.stops {
		stop()
	}
	l.stops = nil
}
