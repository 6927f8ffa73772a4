package screens

import (
	"context"
	"strings"
	"sync"

	"github.com/khabaroff/missing-persons-portal/src/logging"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/session"
	"github.com/rs/zerolog"
)

// HomeView is what the public listing renders
type HomeView struct {
	User          *models.Session     `json:"user"`
	CanFileReport bool                `json:"can_file_report"`
	Search        string              `json:"search"`
	Reports       []models.Report     `json:"reports"`
	Selected      *models.Report      `json:"selected,omitempty"`
	SelectedInfo  []models.ReportInfo `json:"selected_info,omitempty"`
	InfoModal     InfoModalView       `json:"info_modal"`
	Message       string              `json:"message,omitempty"`
	Redirect      string              `json:"redirect,omitempty"`
}

// Home is the public listing with search, detail view and information updates
type Home struct {
	mu           sync.Mutex
	deps         Deps
	sc           *session.Context
	logger       zerolog.Logger
	user         *models.Session
	reports      []models.Report
	search       string
	selected     *models.Report
	selectedInfo []models.ReportInfo
	modal        infoModal
}

func newHome(deps Deps, sc *session.Context) *Home {
	return &Home{
		deps:    deps,
		sc:      sc,
		logger:  logging.ForRequest("home", "", sc.ClientID()),
		reports: []models.Report{},
		modal:   infoModal{deps: deps},
	}
}

// Mount reads the current user and fetches the approved reports. When the
// listing cannot be fetched the locally cached list is shown instead.
func (s *Home) Mount(ctx context.Context) (HomeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.sc.User(ctx)
	if err != nil {
		return HomeView{}, err
	}
	s.user = user

	reports, err := s.deps.API.ListReports(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch reports, using cached list")
		reports, err = s.sc.CachedReports(ctx)
		if err != nil {
			return HomeView{}, err
		}
	}
	s.reports = reports
	return s.view(), nil
}

// Search filters the listing by a case-insensitive substring of name or location
func (s *Home) Search(query string) HomeView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.search = query
	return s.view()
}

// Select opens the detail view of a report and loads its information updates
func (s *Home) Select(ctx context.Context, reportID int64) (HomeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.find(reportID)
	if !ok {
		return HomeView{}, ErrReportNotFound
	}
	if s.selected == nil || s.selected.ID != reportID {
		s.selectedInfo = nil
	}
	s.selected = &report
	s.modal.close()
	s.loadInfo(ctx)
	return s.view(), nil
}

// CloseSelection leaves the detail view
func (s *Home) CloseSelection() HomeView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = nil
	s.selectedInfo = nil
	s.modal.close()
	return s.view()
}

// OpenInfoModal starts an information update for a report. Guests are sent
// to the login screen instead.
func (s *Home) OpenInfoModal(ctx context.Context, reportID int64) (HomeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.sc.User(ctx)
	if err != nil {
		return HomeView{}, err
	}
	s.user = user
	if user == nil || !user.IsLoggedIn {
		s.modal.close()
		return s.loginRequired(), nil
	}
	report, ok := s.find(reportID)
	if !ok {
		return HomeView{}, ErrReportNotFound
	}
	s.modal.open(report)
	return s.view(), nil
}

// CloseInfoModal dismisses the dialog without sending anything
func (s *Home) CloseInfoModal() HomeView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.modal.close()
	return s.view()
}

// SubmitInfo sends an information update for reportID. On success the dialog
// closes and the information list of the open report is fetched again.
func (s *Home) SubmitInfo(ctx context.Context, reportID int64, text string) (HomeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.sc.User(ctx)
	if err != nil {
		return HomeView{}, err
	}
	s.user = user
	if user == nil || !user.IsLoggedIn {
		s.modal.close()
		return s.loginRequired(), nil
	}

	if !s.modal.state.Open || s.modal.state.ReportID != reportID {
		report, ok := s.find(reportID)
		if !ok {
			return HomeView{}, ErrReportNotFound
		}
		s.modal.open(report)
	}

	accepted, err := s.modal.submit(ctx, user.UserID, text)
	if err != nil {
		return HomeView{}, err
	}
	if accepted && s.selected != nil && s.selected.ID == reportID {
		s.loadInfo(ctx)
	}
	return s.view(), nil
}

// Logout clears the user session
func (s *Home) Logout(ctx context.Context) (HomeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	redirect, err := s.deps.Auth.Logout(ctx, s.sc)
	if err != nil {
		return HomeView{}, err
	}
	s.user = nil
	s.modal.close()
	v := s.view()
	v.Redirect = redirect
	return v, nil
}

// loadInfo fetches the updates of the selected report. Failures keep the
// previous list.
func (s *Home) loadInfo(ctx context.Context) {
	info, err := s.deps.API.ReportInfo(ctx, s.selected.ID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("report_id", s.selected.ID).Msg("failed to fetch report info")
		return
	}
	s.selectedInfo = info
}

// loginRequired sends a guest to the login screen with an explanation
func (s *Home) loginRequired() HomeView {
	v := s.view()
	v.Message = s.deps.Messages.Info.LoginRequired
	v.Redirect = models.PathRegister
	return v
}

func (s *Home) find(reportID int64) (models.Report, bool) {
	for _, r := range s.reports {
		if r.ID == reportID {
			return r, true
		}
	}
	return models.Report{}, false
}

func (s *Home) view() HomeView {
	v := HomeView{
		User:          s.user,
		CanFileReport: s.user != nil && s.user.IsLoggedIn,
		Search:        s.search,
		Reports:       FilterReports(s.reports, s.search),
		InfoModal:     s.modal.state,
	}
	if s.selected != nil {
		selected := *s.selected
		v.Selected = &selected
		v.SelectedInfo = append([]models.ReportInfo{}, s.selectedInfo...)
	}
	return v
}

// FilterReports keeps the reports whose name or location contains query,
// ignoring case. An empty query keeps everything.
func FilterReports(reports []models.Report, query string) []models.Report {
	q := strings.ToLower(query)
	out := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Location), q) {
			out = append(out, r)
		}
	}
	return out
}
