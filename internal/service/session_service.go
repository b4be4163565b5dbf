package service

import (
	"errors"
	"sync"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/Nisarga403/Family-FinanceFlow/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SessionService owns one state manager per signed-in user. Stores are
// created lazily on first request, loaded from the persistence gateway, and
// kept until the user signs out.
type SessionService struct {
	mu           sync.Mutex
	stores       map[int32]*store.Store
	snapshotRepo domain.SnapshotRepository
	saveDelay    time.Duration
}

// NewSessionService creates a new SessionService
func NewSessionService(snapshotRepo domain.SnapshotRepository, saveDelay time.Duration) *SessionService {
	return &SessionService{
		stores:       make(map[int32]*store.Store),
		snapshotRepo: snapshotRepo,
		saveDelay:    saveDelay,
	}
}

// Get returns the user's state manager, loading their snapshot on first use.
// A user with no stored snapshot starts from the default state.
func (s *SessionService) Get(userID int32) (*store.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.stores[userID]; ok {
		return st, nil
	}

	var st *store.Store
	st = store.New(store.WithAutosave(s.saveDelay, func(session uuid.UUID, snapshot domain.Snapshot) {
		s.save(userID, st, session, snapshot)
	}))

	raw, err := s.snapshotRepo.Load(userID)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load snapshot")
			return nil, err
		}
		log.Info().Int32("user_id", userID).Msg("No stored snapshot, starting from defaults")
	}
	st.LoadSnapshot(raw)

	s.stores[userID] = st
	return st, nil
}

// save persists a snapshot captured by the debounced trigger. A result tagged
// with an older session (the store was reset meanwhile) is discarded, and a
// stale-version rejection means a newer save already landed; neither is an
// error worth surfacing. Real failures are logged and otherwise ignored so a
// flaky gateway never blocks mutations.
func (s *SessionService) save(userID int32, st *store.Store, session uuid.UUID, snapshot domain.Snapshot) {
	if session != st.Session() {
		log.Debug().Int32("user_id", userID).Msg("Discarding save from stale session")
		return
	}
	if err := s.snapshotRepo.Save(userID, snapshot); err != nil {
		if errors.Is(err, domain.ErrStaleSnapshot) {
			log.Debug().Int32("user_id", userID).Msg("Skipped save, newer snapshot already stored")
			return
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to save snapshot")
		return
	}
	log.Debug().
		Int32("user_id", userID).
		Uint64("version", snapshot.Version).
		Msg("Snapshot saved")
}

// ReplaceSnapshot swaps the user's entire state for the provided raw payload
// and persists it immediately.
func (s *SessionService) ReplaceSnapshot(userID int32, raw domain.RawSnapshot) (domain.Snapshot, error) {
	st, err := s.Get(userID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	st.LoadSnapshot(raw)
	st.Flush()
	return st.Snapshot(), nil
}

// Evict flushes any pending save and drops the user's store, typically on
// sign-out.
func (s *SessionService) Evict(userID int32) {
	s.mu.Lock()
	st, ok := s.stores[userID]
	if ok {
		delete(s.stores, userID)
	}
	s.mu.Unlock()

	if ok {
		st.Flush()
		st.Close()
		log.Info().Int32("user_id", userID).Msg("Session evicted")
	}
}

// Close flushes and drops every store, for graceful shutdown.
func (s *SessionService) Close() {
	s.mu.Lock()
	stores := s.stores
	s.stores = make(map[int32]*store.Store)
	s.mu.Unlock()

	for userID, st := range stores {
		st.Flush()
		st.Close()
		log.Debug().Int32("user_id", userID).Msg("Session closed")
	}
}
