package tokenstore

import (
	"context"
	"sync"
	"time"
)

// SweepHook is called after every sweep pass.
type SweepHook func(removed, remaining int)

// Sweeper periodically evicts expired tokens until stopped.
type Sweeper struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartSweeper starts evicting expired tokens every interval. A non-positive
// interval falls back to DefaultSweepInterval. hook may be nil.
func (m *MemoryStore) StartSweeper(interval time.Duration, hook SweepHook) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Sweeper{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := m.Sweep()
				remaining := m.Len()
				if removed > 0 {
					m.logger.Info().
						Int("removed", removed).
						Int("remaining", remaining).
						Msg("expired tokens swept")
				}
				if hook != nil {
					hook(removed, remaining)
				}
			}
		}
	}()

	return s
}

// Stop halts the sweeper and waits for its goroutine to exit. It is safe to
// call more than once.
func (s *Sweeper) Stop() {
	s.once.Do(s.cancel)
	<-s.done
}
