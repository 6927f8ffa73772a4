// Package screens holds the per-browser state of every portal screen and the
// operations the browser shell can trigger on it. A screen's methods hold its
// mutex for their whole duration, so actions from one browser run one at a time.
package screens

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/khabaroff/missing-persons-portal/src/backend"
	"github.com/khabaroff/missing-persons-portal/src/services"
	"github.com/khabaroff/missing-persons-portal/src/templates"
)

// Deps are the collaborators shared by all screens
type Deps struct {
	API       *backend.Client
	Auth      *services.AuthService
	Analytics *services.AnalyticsService
	Messages  *templates.Messages
	Now       func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

var validate = validator.New()

// ErrReportNotFound is returned when an action names a report the screen does not show
var ErrReportNotFound = errors.New("report not found")

// ErrConfirmationRequired matches every *ConfirmationError
var ErrConfirmationRequired = errors.New("confirmation required")

// ConfirmationError carries the question to put to the user before a
// destructive action is carried out
type ConfirmationError struct {
	Prompt string
}

func (e *ConfirmationError) Error() string {
	return e.Prompt
}

func (e *ConfirmationError) Is(target error) bool {
	return target == ErrConfirmationRequired
}

// failureMessage maps a remote failure to the text shown to the user.
// Local failures are returned so the handler can answer 500.
func failureMessage(err error, fallback string) (string, error) {
	if backend.IsRemoteError(err) {
		return backend.Message(err, fallback), nil
	}
	return "", err
}
