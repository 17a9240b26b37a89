package auth

import (
	"sync"

	"github.com/google/uuid"
)

type SessionState string

const (
	// StateUnknown holds until the first session resolution.
	StateUnknown SessionState = "unknown"
	StateAbsent  SessionState = "absent"
	StatePresent SessionState = "present"
)

// Session is the locally mirrored authentication state.
type Session struct {
	State  SessionState `json:"state"`
	UserID uuid.UUID    `json:"user_id,omitempty"`
}

// SessionTracker holds the current session and notifies subscribers of
// every change. It starts in StateUnknown.
type SessionTracker struct {
	mu          sync.Mutex
	current     Session
	subscribers map[chan Session]struct{}
}

func NewSessionTracker() *SessionTracker {
	return &SessionTracker{
		current:     Session{State: StateUnknown},
		subscribers: make(map[chan Session]struct{}),
	}
}

func (t *SessionTracker) Current() Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Subscribe registers a listener for session changes. The returned
// cancel func removes the subscription; callers must invoke it on
// teardown or the channel leaks.
func (t *SessionTracker) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 16)

	t.mu.Lock()
	t.subscribers[ch] = struct{}{}
	t.mu.Unlock()

	cancel := func() {
		t.mu.Lock()
		delete(t.subscribers, ch)
		t.mu.Unlock()
	}
	return ch, cancel
}

// SignedIn records an authenticated session and broadcasts it.
func (t *SessionTracker) SignedIn(userID uuid.UUID) {
	t.set(Session{State: StatePresent, UserID: userID})
}

// SignedOut records the absence of a session and broadcasts it.
func (t *SessionTracker) SignedOut() {
	t.set(Session{State: StateAbsent})
}

func (t *SessionTracker) set(s Session) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = s
	for ch := range t.subscribers {
		select {
		case ch <- s:
		default: // slow subscriber, drop rather than block
		}
	}
}
