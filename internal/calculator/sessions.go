package calculator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for ids that were never created or were deleted.
var ErrSessionNotFound = errors.New("session not found")

// Snapshot is the externally visible view of a session.
type Snapshot struct {
	ID                string   `json:"id"`
	Display           string   `json:"display"`
	Operand1          float64  `json:"operand1"`
	Operator          Operator `json:"operator"`
	PendingNewOperand bool     `json:"pending_new_operand"`
}

type session struct {
	mu   sync.Mutex
	calc *Calculator
}

func (s *session) snapshot(id string) Snapshot {
	st := s.calc.State()
	return Snapshot{
		ID:                id,
		Display:           s.calc.CurrentDisplay(),
		Operand1:          st.Operand1,
		Operator:          st.Operator,
		PendingNewOperand: st.PendingNewOperand,
	}
}

// Sessions holds one Calculator per client. Presses on the same session are
// applied one at a time.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*session)}
}

// Create starts a fresh calculator and returns its snapshot.
func (s *Sessions) Create() Snapshot {
	id := uuid.New().String()
	sess := &session{calc: New()}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return sess.snapshot(id)
}

func (s *Sessions) lookup(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Get returns the current snapshot of a session.
func (s *Sessions) Get(id string) (Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(id), nil
}

// Press applies tok to the session's calculator.
func (s *Sessions) Press(id string, tok Token) (Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.calc.Press(tok)
	return sess.snapshot(id), nil
}

// Delete drops a session.
func (s *Sessions) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
