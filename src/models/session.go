package models

// Session is the identity record a browser holds after logging in.
// It is never validated against the remote service after creation.
type Session struct {
	UserID     string `json:"userId"`
	IsLoggedIn bool   `json:"isLoggedIn,omitempty"`
	IsAdmin    bool   `json:"isAdmin,omitempty"`
}

// Role returns the role carried by the session
func (s Session) Role() Role {
	if s.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// NewUserSession builds the record stored under currentUser
func NewUserSession(userID string) Session {
	return Session{UserID: userID, IsLoggedIn: true}
}

// NewAdminSession builds the record stored under adminUser
func NewAdminSession(userID string) Session {
	return Session{UserID: userID, IsAdmin: true}
}
