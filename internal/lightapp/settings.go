package lightapp

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/edward-ap/daylight/internal/config"
)

const saveDelay = 400 * time.Millisecond

// saver persists config snapshots after a quiet period so dragging a slider
// writes the file once.
type saver struct {
	logger *zap.SugaredLogger
	delay  time.Duration
	save   func(*config.Config) error

	mu      sync.Mutex
	timer   *time.Timer
	pending *config.Config
}

func newSaver(logger *zap.SugaredLogger, delay time.Duration, save func(*config.Config) error) *saver {
	return &saver{logger: logger, delay: delay, save: save}
}

// schedule remembers a copy of cfg and restarts the quiet period.
func (s *saver) schedule(cfg config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &cfg
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { _ = s.flush() })
}

// flush writes the pending snapshot now, if any.
func (s *saver) flush() error {
	s.mu.Lock()
	cfg := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if cfg == nil || s.save == nil {
		return nil
	}
	if err := s.save(cfg); err != nil {
		s.logger.Warnw("Failed to save config", "error", err)
		return err
	}
	return nil
}
