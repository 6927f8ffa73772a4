package models

// ReportInfo is an information update attached to a report
type ReportInfo struct {
	ID          int64  `json:"id"`
	ReportID    int64  `json:"report_id"`
	Info        string `json:"info"`
	SubmittedBy string `json:"submitted_by"`
	Status      Status `json:"status"`
	SubmittedAt string `json:"submitted_at"`
	ApprovedAt  string `json:"approved_at,omitempty"`
}

// InfoSubmission is the body of a user-submitted information update
type InfoSubmission struct {
	ReportID    int64  `json:"report_id"`
	Info        string `json:"info"`
	SubmittedBy string `json:"submitted_by"`
}

// AdminInfo is the body of an admin-authored information update
type AdminInfo struct {
	ReportID int64  `json:"report_id"`
	Info     string `json:"info"`
	AdminID  string `json:"admin_id"`
}
