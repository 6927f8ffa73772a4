package templates

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var messagesYAML []byte

// Messages holds the user-facing strings from messages.yaml
type Messages struct {
	Auth struct {
		LoginFailed       string `yaml:"login_failed"`
		AdminLoginFailed  string `yaml:"admin_login_failed"`
		SignUpFailed      string `yaml:"signup_failed"`
		PhoneTooShort     string `yaml:"phone_too_short"`
		UserIDTooShort    string `yaml:"user_id_too_short"`
		PasswordTooShort  string `yaml:"password_too_short"`
		PasswordsMismatch string `yaml:"passwords_mismatch"`
	} `yaml:"auth"`

	Report struct {
		LoginRequired   string `yaml:"login_required"`
		Submitted       string `yaml:"submitted"`
		SubmitFailed    string `yaml:"submit_failed"`
		FieldsRequired  string `yaml:"fields_required"`
		RedirectDelayMs int    `yaml:"redirect_delay_ms"`
	} `yaml:"report"`

	Info struct {
		Empty         string `yaml:"empty"`
		SubmitFailed  string `yaml:"submit_failed"`
		LoginRequired string `yaml:"login_required"`
	} `yaml:"info"`

	Dashboard struct {
		LoadFailed          string `yaml:"load_failed"`
		ReportApproved      string `yaml:"report_approved"`
		ReportApproveFailed string `yaml:"report_approve_failed"`
		ReportRejected      string `yaml:"report_rejected"`
		ReportRejectFailed  string `yaml:"report_reject_failed"`
		ReportDeleted       string `yaml:"report_deleted"`
		ReportDeleteFailed  string `yaml:"report_delete_failed"`
		ReportUpdated       string `yaml:"report_updated"`
		ReportUpdateFailed  string `yaml:"report_update_failed"`
		InfoApproved        string `yaml:"info_approved"`
		InfoApproveFailed   string `yaml:"info_approve_failed"`
		InfoRejected        string `yaml:"info_rejected"`
		InfoDeleted         string `yaml:"info_deleted"`
		InfoDeleteFailed    string `yaml:"info_delete_failed"`
		InfoAdded           string `yaml:"info_added"`
		InfoAddFailed       string `yaml:"info_add_failed"`
		BannerTTLMs         int    `yaml:"banner_ttl_ms"`
	} `yaml:"dashboard"`

	Confirm struct {
		DeleteReport string `yaml:"delete_report"`
		DeleteInfo   string `yaml:"delete_info"`
	} `yaml:"confirm"`
}

// RedirectDelay is how long the submission screen waits before going home
func (m *Messages) RedirectDelay() time.Duration {
	return time.Duration(m.Report.RedirectDelayMs) * time.Millisecond
}

// BannerTTL is how long a dashboard banner stays visible
func (m *Messages) BannerTTL() time.Duration {
	return time.Duration(m.Dashboard.BannerTTLMs) * time.Millisecond
}

// LoadMessages parses the embedded catalog
func LoadMessages() (*Messages, error) {
	return parseMessages(messagesYAML)
}

func parseMessages(data []byte) (*Messages, error) {
	var m Messages
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return &m, nil
}

var (
	defaultOnce     sync.Once
	defaultMessages *Messages
)

// Default returns the embedded catalog, parsed once. It panics if the
// embedded file is broken, which only a bad build can cause.
func Default() *Messages {
	defaultOnce.Do(func() {
		m, err := LoadMessages()
		if err != nil {
			panic(err)
		}
		defaultMessages = m
	})
	return defaultMessages
}
