package auth

import "github.com/brainworksstudio2-dev/brain-works/models"

// State is the session's position in the authentication state machine.
type State int

const (
	Anonymous State = iota
	Authenticated
)

// Session is the request-scoped authentication state. It replaces any
// process-wide ambient auth context: handlers receive the session explicitly
// and read the resolved principal and role from it.
type Session struct {
	state   State
	profile *models.User
}

// NewSession starts in the Anonymous state.
func NewSession() *Session {
	return &Session{state: Anonymous}
}

// SignIn transitions to Authenticated with the resolved profile.
func (s *Session) SignIn(profile *models.User) {
	s.state = Authenticated
	s.profile = profile
}

// SignOut transitions back to Anonymous unconditionally.
func (s *Session) SignOut() {
	s.state = Anonymous
	s.profile = nil
}

func (s *Session) State() State { return s.state }

// Profile returns the authenticated profile, or nil when anonymous.
func (s *Session) Profile() *models.User {
	if s.state != Authenticated {
		return nil
	}
	return s.profile
}

// Role returns the resolved role. Anonymous sessions have no role and
// report the zero value.
func (s *Session) Role() models.Role {
	if s.state != Authenticated {
		return ""
	}
	return s.profile.Role
}

func (s *Session) IsAdmin() bool {
	return s.Role() == models.RoleAdmin
}

// Destination is where this session should land after authentication.
func (s *Session) Destination() string {
	return DestinationFor(s.Role())
}
