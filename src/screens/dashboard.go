package screens

import (
	"context"
	"strings"
	"sync"

	"github.com/khabaroff/missing-persons-portal/src/backend"
	"github.com/khabaroff/missing-persons-portal/src/logging"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/services"
	"github.com/khabaroff/missing-persons-portal/src/session"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DashboardView is what the moderation dashboard renders
type DashboardView struct {
	Admin           *models.Session     `json:"admin"`
	PendingReports  []models.Report     `json:"pending_reports"`
	ApprovedReports []models.Report     `json:"approved_reports"`
	PendingInfo     []models.ReportInfo `json:"pending_info"`
	Banner          *Banner             `json:"message"`
	Redirect        string              `json:"redirect,omitempty"`
}

// Dashboard is the moderator's view of pending and approved content.
// After a successful mutation the local lists are patched instead of refetched,
// except for approvals which refetch the approved list.
type Dashboard struct {
	mu              sync.Mutex
	deps            Deps
	sc              *session.Context
	logger          zerolog.Logger
	admin           *models.Session
	pendingReports  []models.Report
	approvedReports []models.Report
	pendingInfo     []models.ReportInfo
	banner          bannerSlot
}

func newDashboard(deps Deps, sc *session.Context) *Dashboard {
	return &Dashboard{
		deps:            deps,
		sc:              sc,
		logger:          logging.ForRequest("dashboard", "", sc.ClientID()),
		pendingReports:  []models.Report{},
		approvedReports: []models.Report{},
		pendingInfo:     []models.ReportInfo{},
	}
}

// Mount checks the admin session and loads all three lists. Without an admin
// session the view only carries a redirect to the admin login.
func (s *Dashboard) Mount(ctx context.Context) (DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, err := s.sc.Admin(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	s.admin = admin
	if admin == nil {
		return DashboardView{Redirect: models.PathAdminLogin}, nil
	}

	s.refresh(ctx)
	return s.view(), nil
}

// Refresh reloads all three lists
func (s *Dashboard) Refresh(ctx context.Context) DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)
	return s.view()
}

// refresh fetches the three lists in parallel. A list whose endpoint answers
// non-OK keeps its previous contents; if any fetch cannot reach the service
// none of the lists change and an error banner is shown.
func (s *Dashboard) refresh(ctx context.Context) {
	var (
		pending, approved []models.Report
		info              []models.ReportInfo
		pendingErr        error
		approvedErr       error
		infoErr           error
	)

	var g errgroup.Group
	g.Go(func() error {
		pending, pendingErr = s.deps.API.PendingReports(ctx)
		return transportOnly(pendingErr)
	})
	g.Go(func() error {
		approved, approvedErr = s.deps.API.AdminReports(ctx)
		return transportOnly(approvedErr)
	})
	g.Go(func() error {
		info, infoErr = s.deps.API.PendingInfo(ctx)
		return transportOnly(infoErr)
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to load dashboard data")
		s.showError(s.deps.Messages.Dashboard.LoadFailed)
		return
	}

	if pendingErr == nil {
		s.pendingReports = pending
	}
	if approvedErr == nil {
		s.approvedReports = approved
	}
	if infoErr == nil {
		s.pendingInfo = info
	}
}

// transportOnly drops non-OK answers so that only unreachable-service
// failures fail the whole refresh
func transportOnly(err error) error {
	if err == nil || backend.IsAPIError(err) {
		return nil
	}
	return err
}

// ApproveReport publishes a pending report and reloads the approved list
func (s *Dashboard) ApproveReport(ctx context.Context, reportID int64) DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.deps.Messages.Dashboard
	if err := s.deps.API.ApproveReport(ctx, reportID); err != nil {
		s.logger.Warn().Err(err).Int64("report_id", reportID).Msg("approve report failed")
		s.showError(msgs.ReportApproveFailed)
		return s.view()
	}

	s.pendingReports = removeReport(s.pendingReports, reportID)
	s.showSuccess(msgs.ReportApproved)
	s.track(ctx, "report_approved", reportID)

	if approved, err := s.deps.API.AdminReports(ctx); err == nil {
		s.approvedReports = approved
	}
	return s.view()
}

// RejectReport drops a pending report
func (s *Dashboard) RejectReport(ctx context.Context, reportID int64) DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.deps.Messages.Dashboard
	if err := s.deps.API.RejectReport(ctx, reportID); err != nil {
		s.logger.Warn().Err(err).Int64("report_id", reportID).Msg("reject report failed")
		s.showError(msgs.ReportRejectFailed)
		return s.view()
	}

	s.pendingReports = removeReport(s.pendingReports, reportID)
	s.showSuccess(msgs.ReportRejected)
	s.track(ctx, "report_rejected", reportID)
	return s.view()
}

// DeleteReport removes an approved report. Without confirmed it returns a
// *ConfirmationError and does nothing.
func (s *Dashboard) DeleteReport(ctx context.Context, reportID int64, confirmed bool) (DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirmed {
		return DashboardView{}, &ConfirmationError{Prompt: s.deps.Messages.Confirm.DeleteReport}
	}

	msgs := s.deps.Messages.Dashboard
	if err := s.deps.API.DeleteReport(ctx, reportID); err != nil {
		s.logger.Warn().Err(err).Int64("report_id", reportID).Msg("delete report failed")
		s.showError(msgs.ReportDeleteFailed)
		return s.view(), nil
	}

	s.approvedReports = removeReport(s.approvedReports, reportID)
	s.showSuccess(msgs.ReportDeleted)
	s.track(ctx, "report_deleted", reportID)
	return s.view(), nil
}

// UpdateReport edits an approved report and replaces the local entry with
// the stored version
func (s *Dashboard) UpdateReport(ctx context.Context, reportID int64, update models.ReportUpdate) DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.deps.Messages.Dashboard
	report, err := s.deps.API.UpdateReport(ctx, reportID, update)
	if err != nil {
		s.logger.Warn().Err(err).Int64("report_id", reportID).Msg("update report failed")
		s.showError(backend.Message(err, msgs.ReportUpdateFailed))
		return s.view()
	}

	for i := range s.approvedReports {
		if s.approvedReports[i].ID == reportID {
			s.approvedReports[i] = *report
		}
	}
	s.showSuccess(msgs.ReportUpdated)
	s.track(ctx, "report_updated", reportID)
	return s.view()
}

// ApproveInfo publishes a pending information update
func (s *Dashboard) ApproveInfo(ctx context.Context, infoID int64) DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.deps.Messages.Dashboard
	if err := s.deps.API.ApproveInfo(ctx, infoID); err != nil {
		s.logger.Warn().Err(err).Int64("info_id", infoID).Msg("approve info failed")
		s.showError(msgs.InfoApproveFailed)
		return s.view()
	}

	s.pendingInfo = removeInfo(s.pendingInfo, infoID)
	s.showSuccess(msgs.InfoApproved)
	s.track(ctx, "info_approved", infoID)
	return s.view()
}

// RejectInfo hides a pending information update from this dashboard.
// The remote service has no reject endpoint for information updates, so the
// entry comes back on the next refresh.
func (s *Dashboard) RejectInfo(ctx context.Context, infoID int64) DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info().Int64("info_id", infoID).Msg("information rejected locally, not persisted")
	s.pendingInfo = removeInfo(s.pendingInfo, infoID)
	s.showSuccess(s.deps.Messages.Dashboard.InfoRejected)
	s.track(ctx, "info_rejected", infoID)
	return s.view()
}

// DeleteInfo removes an information update. Without confirmed it returns a
// *ConfirmationError and does nothing.
func (s *Dashboard) DeleteInfo(ctx context.Context, infoID int64, confirmed bool) (DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirmed {
		return DashboardView{}, &ConfirmationError{Prompt: s.deps.Messages.Confirm.DeleteInfo}
	}

	msgs := s.deps.Messages.Dashboard
	if err := s.deps.API.DeleteInfo(ctx, infoID); err != nil {
		s.logger.Warn().Err(err).Int64("info_id", infoID).Msg("delete info failed")
		s.showError(msgs.InfoDeleteFailed)
		return s.view(), nil
	}

	s.pendingInfo = removeInfo(s.pendingInfo, infoID)
	s.showSuccess(msgs.InfoDeleted)
	s.track(ctx, "info_deleted", infoID)
	return s.view(), nil
}

// AddInfo publishes an admin-authored information update on a report.
// No list is patched: admin updates never appear as pending.
func (s *Dashboard) AddInfo(ctx context.Context, reportID int64, text string) (DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return DashboardView{}, &services.ValidationError{Field: "info", Message: s.deps.Messages.Info.Empty}
	}

	admin, err := services.RequireAdmin(ctx, s.sc)
	if err != nil {
		return DashboardView{}, err
	}

	msgs := s.deps.Messages.Dashboard
	if _, err := s.deps.API.AddInfo(ctx, models.AdminInfo{ReportID: reportID, Info: text, AdminID: admin.UserID}); err != nil {
		s.logger.Warn().Err(err).Int64("report_id", reportID).Msg("add info failed")
		s.showError(msgs.InfoAddFailed)
		return s.view(), nil
	}

	s.showSuccess(msgs.InfoAdded)
	s.track(ctx, "info_added", reportID)
	return s.view(), nil
}

// Logout clears the admin session
func (s *Dashboard) Logout(ctx context.Context) (DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	redirect, err := s.deps.Auth.AdminLogout(ctx, s.sc)
	if err != nil {
		return DashboardView{}, err
	}
	s.admin = nil
	return DashboardView{Redirect: redirect}, nil
}

func (s *Dashboard) showSuccess(text string) {
	s.banner.show(BannerSuccess, text, s.deps.now(), s.deps.Messages.BannerTTL())
}

func (s *Dashboard) showError(text string) {
	s.banner.show(BannerError, text, s.deps.now(), s.deps.Messages.BannerTTL())
}

func (s *Dashboard) track(ctx context.Context, action string, targetID int64) {
	if s.admin == nil {
		return
	}
	s.deps.Analytics.TrackModeration(ctx, s.admin.UserID, action, targetID)
}

func (s *Dashboard) view() DashboardView {
	return DashboardView{
		Admin:           s.admin,
		PendingReports:  append([]models.Report{}, s.pendingReports...),
		ApprovedReports: append([]models.Report{}, s.approvedReports...),
		PendingInfo:     append([]models.ReportInfo{}, s.pendingInfo...),
		Banner:          s.banner.current(s.deps.now()),
	}
}

func removeReport(reports []models.Report, id int64) []models.Report {
	out := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func removeInfo(info []models.ReportInfo, id int64) []models.ReportInfo {
	out := make([]models.ReportInfo, 0, len(info))
	for _, i := range info {
		if i.ID != id {
			out = append(out, i)
		}
	}
	return out
}
