package screens

import (
	"context"
	"sync"

	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/session"
)

// LoginView is what the login screens render
type LoginView struct {
	UserID   string          `json:"userId"`
	Error    string          `json:"error,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
	Session  *models.Session `json:"session,omitempty"`
}

// Login is the combined "Registration" screen: users and admins share one form
type Login struct {
	mu    sync.Mutex
	deps  Deps
	sc    *session.Context
	state LoginView
}

func newLogin(deps Deps, sc *session.Context) *Login {
	return &Login{deps: deps, sc: sc}
}

// Submit tries to log in with creds
func (s *Login) Submit(ctx context.Context, creds models.Credentials) (LoginView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = LoginView{UserID: creds.UserID}

	result, err := s.deps.Auth.Login(ctx, s.sc, creds)
	if err != nil {
		msg, err := failureMessage(err, s.deps.Messages.Auth.LoginFailed)
		if err != nil {
			return LoginView{}, err
		}
		s.state.Error = msg
		return s.state, nil
	}

	s.state.Redirect = result.Redirect
	s.state.Session = &result.Session
	return s.state, nil
}

// Guest continues to the public listing without a session
func (s *Login) Guest() LoginView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = LoginView{Redirect: models.PathHome}
	return s.state
}

// AdminLogin is the dedicated moderator login screen
type AdminLogin struct {
	mu    sync.Mutex
	deps  Deps
	sc    *session.Context
	state LoginView
}

func newAdminLogin(deps Deps, sc *session.Context) *AdminLogin {
	return &AdminLogin{deps: deps, sc: sc}
}

// Submit logs in against the admin endpoint only
func (s *AdminLogin) Submit(ctx context.Context, creds models.Credentials) (LoginView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = LoginView{UserID: creds.UserID}

	result, err := s.deps.Auth.AdminLogin(ctx, s.sc, creds)
	if err != nil {
		msg, err := failureMessage(err, s.deps.Messages.Auth.AdminLoginFailed)
		if err != nil {
			return LoginView{}, err
		}
		s.state.Error = msg
		return s.state, nil
	}

	s.state.Redirect = result.Redirect
	s.state.Session = &result.Session
	return s.state, nil
}
