package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// ErrLoginInFlight is returned when a login attempt starts while a previous
// one has not finished.
var ErrLoginInFlight = errors.New("login already in progress")

// Session drives the login flow on top of the API client. Each attempt ends
// in exactly one of three outcomes: the email is unknown, the password is
// wrong, or the user is logged in and the accessId cookie is set.
type Session struct {
	client *Client

	mu            sync.Mutex
	inFlight      bool
	user          *User
	emailNotExist bool
	passwordFail  bool
}

// NewSession creates a session around the given API client.
func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// CanSubmit reports whether the credentials are complete enough to submit.
func (s *Session) CanSubmit(email, password string) bool {
	return email != "" && password != ""
}

// Login submits credentials. Starting a new attempt clears the outcome flags
// of the previous one; only one attempt may run at a time.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrLoginInFlight
	}
	s.inFlight = true
	s.emailNotExist = false
	s.passwordFail = false
	s.mu.Unlock()

	user, err := s.client.Login(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusNotFound:
				s.emailNotExist = true
				return nil
			case http.StatusUnauthorized:
				s.passwordFail = true
				return nil
			}
		}
		return err
	}

	s.client.SetAccessCookie(user.ID)
	s.user = &user
	return nil
}

// Logout discards the logged-in user.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.emailNotExist = false
	s.passwordFail = false
}

// User returns the logged-in user, or nil when not logged in.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// EmailNotExist reports whether the last attempt failed on an unknown email.
func (s *Session) EmailNotExist() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emailNotExist
}

// PasswordFail reports whether the last attempt failed on a wrong password.
func (s *Session) PasswordFail() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passwordFail
}

// InFlight reports whether a login attempt is currently running.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}
