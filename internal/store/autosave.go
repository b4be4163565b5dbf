package store

import (
	"sync"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/google/uuid"
)

// SaveFunc hands a snapshot to the persistence gateway. The session identity
// lets the receiver discard the save if the store was reset while the save
// was pending. Failures are the receiver's to log; the store never blocks on
// them and the next mutation re-arms the trigger.
type SaveFunc func(session uuid.UUID, snapshot domain.Snapshot)

// autosaver debounces save scheduling. At most one timer is armed at a time;
// the snapshot is captured when the timer fires, so every mutation inside the
// debounce window rides along with the final save.
type autosaver struct {
	mu    sync.Mutex
	delay time.Duration
	save  SaveFunc
	timer *time.Timer
}

func newAutosaver(delay time.Duration, save SaveFunc) *autosaver {
	return &autosaver{delay: delay, save: save}
}

// schedule arms the debounce timer unless one is already pending. Called with
// the store lock held; the autosaver keeps its own lock so firing never
// deadlocks against a concurrent mutation.
func (a *autosaver) schedule(s *Store) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		return
	}
	a.timer = time.AfterFunc(a.delay, func() { a.fire(s) })
}

// fire captures the store's current state and hands it to the save function.
func (a *autosaver) fire(s *Store) {
	a.mu.Lock()
	a.timer = nil
	a.mu.Unlock()

	s.mu.Lock()
	if !s.loaded {
		// Reset happened after scheduling; nothing to persist.
		s.mu.Unlock()
		return
	}
	session := s.session
	snap := s.snap.Clone()
	s.mu.Unlock()

	a.save(session, snap)
}

// cancel disarms any pending timer without firing it.
func (a *autosaver) cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Flush persists the current state immediately, bypassing the debounce
// window. Used on sign-out so the final state lands before the store is
// evicted.
func (s *Store) Flush() {
	if s.saver == nil {
		return
	}
	s.saver.cancel()
	s.saver.fire(s)
}
