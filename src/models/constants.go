package models

// Role identifies which kind of identity a session carries
type Role string

const (
	// RoleUser is a regular logged-in reporter
	RoleUser Role = "user"
	// RoleAdmin is a moderator
	RoleAdmin Role = "admin"
)

// Status represents the moderation state of a report or an information update
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Storage keys kept per browser
const (
	KeyCurrentUser    = "currentUser"
	KeyAdminUser      = "adminUser"
	KeyUserID         = "user_id"
	KeyMissingPersons = "missingPersons"
)

// Navigation targets returned to the browser shell
const (
	PathRegister            = "/register"
	PathSignUp              = "/signup"
	PathRegistrationDetails = "/registration-details"
	PathHome                = "/home"
	PathAdminLogin          = "/admin-login"
	PathAdminDashboard      = "/admin-dashboard"
)
