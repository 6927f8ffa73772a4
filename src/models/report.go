package models

// Report is a missing-person report as transmitted by the remote service.
// Pending reports carry no Status/ApprovedAt; approved ones do.
type Report struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Height      int    `json:"height,omitempty"`
	LastSeen    string `json:"lastSeen,omitempty"`
	Location    string `json:"location"`
	Image       string `json:"image"`
	Phone       string `json:"phone,omitempty"`
	SubmittedBy string `json:"submitted_by,omitempty"`
	Status      Status `json:"status,omitempty"`
	SubmittedAt string `json:"submitted_at,omitempty"`
	ApprovedAt  string `json:"approved_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// ReportSubmission holds the fields of the report-submission form
type ReportSubmission struct {
	PersonName string  `form:"personName" validate:"required"`
	Age        string  `form:"age" validate:"required"`
	Height     string  `form:"height" validate:"required"`
	LastSeen   string  `form:"lastSeen" validate:"required"`
	Place      string  `form:"place" validate:"required"`
	Photo      *Upload `form:"-"`
}

// Upload is an in-memory file attached to a submission
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportUpdate carries the editable fields of an approved report.
// Nil fields are left untouched by the remote service.
type ReportUpdate struct {
	Name     *string `json:"name,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Height   *int    `json:"height,omitempty"`
	Location *string `json:"location,omitempty"`
	LastSeen *string `json:"lastSeen,omitempty"`
}

// IsEmpty reports whether no field is set
func (u ReportUpdate) IsEmpty() bool {
	return u.Name == nil && u.Age == nil && u.Height == nil && u.Location == nil && u.LastSeen == nil
}
