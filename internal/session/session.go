package session

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/mockmate/mockmate-cli/internal/model"
)

// Store is the session state machine: Anonymous or Authenticated. The initial
// state is computed once from the jar; afterwards only SetAuth and Logout
// change it, and both keep the jar and the in-memory state in lockstep.
//
// The mutex exists because pollers read the session while the owning view may
// log out.
type Store struct {
	mu            sync.Mutex
	jar           *Jar
	authenticated bool
	user          *model.User
}

// NewStore derives the initial state from the jar: Authenticated iff the
// access token cookie is present and the user cookie parses as JSON. A user
// cookie that fails to parse yields Anonymous, never an error.
func NewStore(jar *Jar) *Store {
	s := &Store{jar: jar}
	token := jar.Get(CookieAccessToken)
	raw := jar.Get(CookieUser)
	if token == "" || raw == "" {
		return s
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return s
	}
	s.authenticated = true
	s.user = &u
	return s
}

// IsAuthenticated reports whether the session is in the Authenticated state.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// User returns a copy of the cached user, or nil when Anonymous.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// AccessToken reads the bearer token through the jar, so expiry is honored
// on every request.
func (s *Store) AccessToken() string {
	return s.jar.Get(CookieAccessToken)
}

// SetAuth persists the three session cookies and transitions to
// Authenticated. Cookies are written before the state flips so a write
// failure leaves the session Anonymous rather than diverged.
func (s *Store) SetAuth(user model.User, tokens model.Tokens) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.jar.Set(CookieAccessToken, tokens.AccessToken, AccessTokenTTLDays); err != nil {
		return err
	}
	if err := s.jar.Set(CookieRefreshToken, tokens.RefreshToken, RefreshTokenTTLDays); err != nil {
		return err
	}
	if err := s.jar.Set(CookieUser, string(raw), UserTTLDays); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
	s.user = &user
	return nil
}

// Logout transitions to Anonymous and deletes all session cookies in the
// same call. The in-memory state is cleared even if a cookie delete fails,
// so a partial failure can only leave stale cookies, never a live session.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.authenticated = false
	s.user = nil
	s.mu.Unlock()

	return errors.Join(
		s.jar.Delete(CookieAccessToken),
		s.jar.Delete(CookieRefreshToken),
		s.jar.Delete(CookieUser),
	)
}
