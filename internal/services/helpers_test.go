package services

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/gamedata"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/random"
	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/storage"
)

// scriptedSource replays fixed draws and fails the test on any unexpected draw.
type scriptedSource struct {
	t     *testing.T
	draws []int
	next  int
}

func script(t *testing.T, draws ...int) *scriptedSource {
	t.Helper()
	return &scriptedSource{t: t, draws: draws}
}

func (s *scriptedSource) Between(min, max int) int {
	s.t.Helper()
	if s.next >= len(s.draws) {
		s.t.Fatalf("unexpected draw %d in [%d, %d]", s.next+1, min, max)
	}
	v := s.draws[s.next]
	s.next++
	if v < min || v > max {
		s.t.Fatalf("scripted draw %d outside [%d, %d]", v, min, max)
	}
	return v
}

func (s *scriptedSource) remaining() int {
	return len(s.draws) - s.next
}

func newTestEngine(t *testing.T, src random.Source) *RuleEngine {
	t.Helper()
	return NewRuleEngine(src, gamedata.Default(), zaptest.NewLogger(t))
}

func setupTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "urb.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
