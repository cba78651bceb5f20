package dialog

import (
	"sync"
	"time"
)

// Session accumulates the answers of one user's conversation. All fields are
// owned by whoever holds the session lock through Store.Acquire; the zero
// value of an answer field means the question was never reached.
type Session struct {
	mu   sync.Mutex
	gone bool

	UserID    int64
	FirstName string
	LastName  string
	Username  string

	State     State
	Branch    Branch
	StartedAt time.Time
	LastTurn  time.Time

	Province string

	// Confirm flow.
	Delivered     string
	QtyDeliveredA *int
	QtyDeliveredB *int
	PlaNeeded     string
	PlaDiameter   string
	CoilsReturned string
	CoilsQty      *int

	// Schedule flow.
	QtyPreparedA *int
	QtyPreparedB *int
	Municipality string
	Address      string
	TimeWindow   string
	Phone        string
}

// Store keeps at most one live session per user id. Turn handling for a user
// is serialized through the per-session lock, so overlapping updates for the
// same user are processed one at a time in arrival order.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Begin starts a fresh session for the user, replacing any session already in
// progress. A replaced session is marked gone so an in-flight turn on it is
// dropped instead of acting on stale state.
func (s *Store) Begin(userID int64, firstName, lastName, username string, now time.Time) *Session {
	sess := &Session{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		State:     StateProvince,
		StartedAt: now,
		LastTurn:  now,
	}

	s.mu.Lock()
	old := s.sessions[userID]
	s.sessions[userID] = sess
	s.mu.Unlock()

	if old != nil {
		old.mu.Lock()
		old.gone = true
		old.mu.Unlock()
	}
	return sess
}

// Acquire locks the user's session for one turn. The returned release func
// must be called when the turn is done. ok is false when no session is in
// progress, or when the session was discarded while waiting for the lock.
func (s *Store) Acquire(userID int64) (sess *Session, release func(), ok bool) {
	s.mu.RLock()
	sess = s.sessions[userID]
	s.mu.RUnlock()
	if sess == nil {
		return nil, nil, false
	}

	sess.mu.Lock()
	if sess.gone {
		sess.mu.Unlock()
		return nil, nil, false
	}
	return sess, sess.mu.Unlock, true
}

// Remove drops a session whose lock the caller already holds.
func (s *Store) Remove(sess *Session) {
	sess.gone = true
	s.mu.Lock()
	if s.sessions[sess.UserID] == sess {
		delete(s.sessions, sess.UserID)
	}
	s.mu.Unlock()
}

// Discard ends the user's session, if any, waiting for an in-flight turn to
// finish first. Reports whether a session was discarded.
func (s *Store) Discard(userID int64) bool {
	sess, release, ok := s.Acquire(userID)
	if !ok {
		return false
	}
	s.Remove(sess)
	release()
	return true
}

// InProgress reports whether the user has a live session.
func (s *Store) InProgress(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.sessions[userID]
	return sess != nil
}

// Active returns the number of live sessions.
func (s *Store) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes every session idle since before now-ttl and returns them.
// Each candidate is locked before the idle check, so a turn that is being
// processed concurrently either completes first (refreshing LastTurn) or
// finds the session gone.
func (s *Store) Sweep(now time.Time, ttl time.Duration) []*Session {
	s.mu.RLock()
	candidates := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		candidates = append(candidates, sess)
	}
	s.mu.RUnlock()

	var expired []*Session
	deadline := now.Add(-ttl)
	for _, sess := range candidates {
		sess.mu.Lock()
		if !sess.gone && sess.LastTurn.Before(deadline) {
			s.Remove(sess)
			expired = append(expired, sess)
		}
		sess.mu.Unlock()
	}
	return expired
}
