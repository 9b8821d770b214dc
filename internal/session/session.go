package session

import (
	"context"
	"sync"
	"time"
)

type session struct {
	rendered    []int
	pendingEdit int64
	hasPending  bool
	lastSeen    time.Time
}

type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int64]*session
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[int64]*session),
		now:      time.Now,
	}
}

func (s *Store) TrackMessage(userID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(userID)
	sess.rendered = append(sess.rendered, messageID)
}

func (s *Store) TakeRendered(userID int64) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(userID)
	rendered := sess.rendered
	sess.rendered = nil
	return rendered
}

func (s *Store) SetPendingEdit(userID, taskID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(userID)
	sess.pendingEdit = taskID
	sess.hasPending = true
}

func (s *Store) PendingEdit(userID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(userID)
	return sess.pendingEdit, sess.hasPending
}

func (s *Store) ClearPendingEdit(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(userID)
	sess.pendingEdit = 0
	sess.hasPending = false
}

func (s *Store) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for userID, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, userID)
			evicted++
		}
	}
	return evicted
}

func (s *Store) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Evict()
		}
	}
}

func (s *Store) touch(userID int64) *session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{}
		s.sessions[userID] = sess
	}
	sess.lastSeen = s.now()
	return sess
}
