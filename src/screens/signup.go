package screens

import (
	"context"
	"errors"
	"sync"

	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/services"
	"github.com/khabaroff/missing-persons-portal/src/session"
)

// SignUpView is what the sign-up screen renders
type SignUpView struct {
	Error    string `json:"error,omitempty"`
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// SignUp is the account creation screen
type SignUp struct {
	mu    sync.Mutex
	deps  Deps
	sc    *session.Context
	state SignUpView
}

func newSignUp(deps Deps, sc *session.Context) *SignUp {
	return &SignUp{deps: deps, sc: sc}
}

// Submit validates the form and creates the account. Only the first failing
// rule is reported.
func (s *SignUp) Submit(ctx context.Context, form models.SignUpForm) (SignUpView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = SignUpView{}

	redirect, err := s.deps.Auth.SignUp(ctx, s.sc, form)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			s.state.Error = verr.Message
			s.state.Field = verr.Field
			return s.state, nil
		}
		msg, err := failureMessage(err, s.deps.Messages.Auth.SignUpFailed)
		if err != nil {
			return SignUpView{}, err
		}
		s.state.Error = msg
		return s.state, nil
	}

	s.state.Redirect = redirect
	return s.state, nil
}
