package screens

import (
	"context"
	"strings"

	"github.com/khabaroff/missing-persons-portal/src/models"
)

// InfoModalView is the "Add Information" dialog opened from the detail view
type InfoModalView struct {
	Open       bool   `json:"open"`
	ReportID   int64  `json:"report_id"`
	ReportName string `json:"report_name"`
	Error      string `json:"error,omitempty"`
}

// infoModal is owned by the Home screen and guarded by its mutex
type infoModal struct {
	deps  Deps
	state InfoModalView
}

func (m *infoModal) open(report models.Report) {
	m.state = InfoModalView{Open: true, ReportID: report.ID, ReportName: report.Name}
}

func (m *infoModal) close() {
	m.state = InfoModalView{}
}

// submit sends an information update. It reports whether the update was
// accepted; on failure the dialog stays open with the message inline.
func (m *infoModal) submit(ctx context.Context, userID, text string) (bool, error) {
	m.state.Error = ""

	text = strings.TrimSpace(text)
	if text == "" {
		m.state.Error = m.deps.Messages.Info.Empty
		return false, nil
	}

	_, err := m.deps.API.SubmitInfo(ctx, models.InfoSubmission{
		ReportID:    m.state.ReportID,
		Info:        text,
		SubmittedBy: userID,
	})
	if err != nil {
		msg, err := failureMessage(err, m.deps.Messages.Info.SubmitFailed)
		if err != nil {
			return false, err
		}
		m.state.Error = msg
		return false, nil
	}

	m.deps.Analytics.TrackInfoSubmitted(ctx, userID, m.state.ReportID)
	m.close()
	return true, nil
}
