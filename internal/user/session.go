package user

import "sync"

// Session holds the logged-in user for one client. The persisted pointer
// under "currentUser" survives restarts; the cached record does not.
type Session struct {
	mu      sync.Mutex
	current *User
}

// NewSession returns a logged-out session.
func NewSession() *Session {
	return &Session{}
}

func (s *Session) cached() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

func (s *Session) set(u *User) {
	s.mu.Lock()
	s.current = u.Clone()
	s.mu.Unlock()
}

// refresh replaces the cached record only if it belongs to the same user.
func (s *Session) refresh(u *User) {
	s.mu.Lock()
	if s.current != nil && s.current.Username == u.Username && s.current.UserType == u.UserType {
		s.current = u.Clone()
	}
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
