package screens

import (
	"context"
	"errors"
	"sync"

	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/services"
	"github.com/khabaroff/missing-persons-portal/src/session"
)

// SubmissionView is what the report form renders
type SubmissionView struct {
	Error           string `json:"error,omitempty"`
	Success         bool   `json:"success"`
	Message         string `json:"message,omitempty"`
	ReportID        int64  `json:"report_id,omitempty"`
	Redirect        string `json:"redirect,omitempty"`
	RedirectAfterMs int    `json:"redirect_after_ms,omitempty"`
}

// Submission is the "Registration details" screen where a logged-in user
// files a missing-person report
type Submission struct {
	mu    sync.Mutex
	deps  Deps
	sc    *session.Context
	state SubmissionView
}

func newSubmission(deps Deps, sc *session.Context) *Submission {
	return &Submission{deps: deps, sc: sc}
}

// Submit uploads the report. The form fields are only checked for presence.
func (s *Submission) Submit(ctx context.Context, sub models.ReportSubmission) (SubmissionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.deps.Messages
	s.state = SubmissionView{}

	user, err := services.RequireUser(ctx, s.sc)
	if errors.Is(err, services.ErrNotLoggedIn) {
		s.state.Error = msgs.Report.LoginRequired
		return s.state, nil
	}
	if err != nil {
		return SubmissionView{}, err
	}

	if err := validate.Struct(sub); err != nil {
		s.state.Error = msgs.Report.FieldsRequired
		return s.state, nil
	}

	resp, err := s.deps.API.SubmitReport(ctx, sub, user.UserID)
	if err != nil {
		msg, err := failureMessage(err, msgs.Report.SubmitFailed)
		if err != nil {
			return SubmissionView{}, err
		}
		s.state.Error = msg
		return s.state, nil
	}

	s.deps.Analytics.TrackReportSubmitted(ctx, user.UserID, sub.Photo != nil)

	s.state = SubmissionView{
		Success:         true,
		Message:         msgs.Report.Submitted,
		ReportID:        resp.ReportID,
		Redirect:        models.PathHome,
		RedirectAfterMs: msgs.Report.RedirectDelayMs,
	}
	return s.state, nil
}
