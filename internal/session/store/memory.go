package store

import (
	"context"
	"sync"
	"time"

	sessiondomain "github.com/kerbside/kerbside/internal/session/domain"
)

// MemoryStore is the default registry: a map keyed by session id plus the id
// counter, guarded by a single mutex since handlers run concurrently.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]sessiondomain.Session
	order    []int64
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]sessiondomain.Session),
		nextID:   1,
	}
}

func (s *MemoryStore) Create(ctx context.Context, vehicleID string, entryTime time.Time) (sessiondomain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	if vehicleID == "" {
		vehicleID = sessiondomain.PlaceholderVehicleID(id)
	}
	sess := sessiondomain.Session{
		SessionID: id,
		VehicleID: vehicleID,
		EntryTime: entryTime,
		Status:    sessiondomain.StatusActive,
	}
	s.sessions[id] = sess
	s.order = append(s.order, id)
	return sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (sessiondomain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return sessiondomain.Session{}, sessiondomain.ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) Complete(ctx context.Context, id int64, exitTime time.Time) (sessiondomain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return sessiondomain.Session{}, sessiondomain.ErrNotFound
	}
	if sess.Status == sessiondomain.StatusCompleted {
		return sess, nil
	}
	t := exitTime
	sess.ExitTime = &t
	sess.Status = sessiondomain.StatusCompleted
	s.sessions[id] = sess
	return sess, nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]sessiondomain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]sessiondomain.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id])
	}
	return out, nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[int64]sessiondomain.Session)
	s.order = nil
	s.nextID = 1
	return nil
}
