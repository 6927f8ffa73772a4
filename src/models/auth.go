package models

// Credentials is the body posted to both login endpoints
type Credentials struct {
	UserID   string `json:"userId" form:"userId"`
	Password string `json:"password" form:"password"`
}

// SignUpForm is the body posted to the sign-up endpoint
type SignUpForm struct {
	Phone           string `json:"phone" form:"phone" validate:"min=10"`
	UserID          string `json:"userId" form:"userId" validate:"min=3"`
	Password        string `json:"password" form:"password" validate:"min=8"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// LoginResponse is what the login endpoints answer on success.
// Role is only present when the remote service discriminates roles itself.
type LoginResponse struct {
	Message    string `json:"message"`
	UserID     string `json:"user_id"`
	IsLoggedIn bool   `json:"isLoggedIn,omitempty"`
	IsAdmin    bool   `json:"isAdmin,omitempty"`
	Role       Role   `json:"role,omitempty"`
}

// CreatedResponse is what creating endpoints answer on success
type CreatedResponse struct {
	Message  string `json:"message"`
	ID       int64  `json:"id,omitempty"`
	ReportID int64  `json:"report_id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
}
