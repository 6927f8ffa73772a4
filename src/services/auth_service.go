package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/khabaroff/missing-persons-portal/src/backend"
	"github.com/khabaroff/missing-persons-portal/src/config"
	"github.com/khabaroff/missing-persons-portal/src/logging"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/session"
	"github.com/khabaroff/missing-persons-portal/src/templates"
	"github.com/rs/zerolog"
)

// LoginResult describes a successful login
type LoginResult struct {
	Session  models.Session `json:"session"`
	Role     models.Role    `json:"role"`
	Redirect string         `json:"redirect"`
}

// AuthService handles logins, sign-ups and logouts against the remote API
// and records the resulting identity in the client's session.
type AuthService struct {
	api       *backend.Client
	mode      string
	validate  *validator.Validate
	messages  *templates.Messages
	analytics *AnalyticsService
	logger    zerolog.Logger
}

// NewAuthService creates a new authentication service. analytics may be nil.
func NewAuthService(api *backend.Client, mode string, messages *templates.Messages, analytics *AnalyticsService) *AuthService {
	return &AuthService{
		api:       api,
		mode:      mode,
		validate:  validator.New(),
		messages:  messages,
		analytics: analytics,
		logger:    logging.NewLogger("auth"),
	}
}

// Login runs the combined login screen. In speculative mode the admin
// endpoint is tried first and any non-OK answer falls through to the user
// endpoint; the returned error is then the user endpoint's. In unified mode
// one call to the user endpoint decides the role.
func (s *AuthService) Login(ctx context.Context, sc *session.Context, creds models.Credentials) (*LoginResult, error) {
	if s.mode == config.AuthModeUnified {
		return s.loginUnified(ctx, sc, creds)
	}

	_, err := s.api.AdminLogin(ctx, creds)
	if err == nil {
		return s.storeAdmin(ctx, sc, creds.UserID)
	}
	if !backend.IsAPIError(err) {
		return nil, err
	}
	s.logger.Debug().Str("user_id", creds.UserID).Msg("admin login refused, trying user login")

	if _, err := s.api.Login(ctx, creds); err != nil {
		return nil, err
	}
	return s.storeUser(ctx, sc, creds.UserID)
}

func (s *AuthService) loginUnified(ctx context.Context, sc *session.Context, creds models.Credentials) (*LoginResult, error) {
	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if resp.Role == models.RoleAdmin || resp.IsAdmin {
		return s.storeAdmin(ctx, sc, creds.UserID)
	}
	return s.storeUser(ctx, sc, creds.UserID)
}

// AdminLogin runs the dedicated admin login screen
func (s *AuthService) AdminLogin(ctx context.Context, sc *session.Context, creds models.Credentials) (*LoginResult, error) {
	if _, err := s.api.AdminLogin(ctx, creds); err != nil {
		return nil, err
	}
	return s.storeAdmin(ctx, sc, creds.UserID)
}

func (s *AuthService) storeAdmin(ctx context.Context, sc *session.Context, userID string) (*LoginResult, error) {
	sess := models.NewAdminSession(userID)
	if err := sc.SetAdmin(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to store admin session: %w", err)
	}
	s.logger.Info().Str("client_id", sc.ClientID()).Str("user_id", userID).Msg("admin logged in")
	s.analytics.TrackLogin(ctx, userID, models.RoleAdmin)
	return &LoginResult{Session: sess, Role: models.RoleAdmin, Redirect: models.PathAdminDashboard}, nil
}

func (s *AuthService) storeUser(ctx context.Context, sc *session.Context, userID string) (*LoginResult, error) {
	sess := models.NewUserSession(userID)
	if err := sc.SetUser(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to store user session: %w", err)
	}
	s.logger.Info().Str("client_id", sc.ClientID()).Str("user_id", userID).Msg("user logged in")
	s.analytics.TrackLogin(ctx, userID, models.RoleUser)
	return &LoginResult{Session: sess, Role: models.RoleUser, Redirect: models.PathHome}, nil
}

// ValidateSignUp returns the first failing rule of the sign-up form, or nil
func (s *AuthService) ValidateSignUp(form models.SignUpForm) *ValidationError {
	if err := s.validate.Struct(form); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return s.signUpMessage(verrs[0].Field())
		}
		return &ValidationError{Message: err.Error()}
	}
	if form.Password != form.ConfirmPassword {
		return &ValidationError{Field: "ConfirmPassword", Message: s.messages.Auth.PasswordsMismatch}
	}
	return nil
}

func (s *AuthService) signUpMessage(field string) *ValidationError {
	switch field {
	case "Phone":
		return &ValidationError{Field: field, Message: s.messages.Auth.PhoneTooShort}
	case "UserID":
		return &ValidationError{Field: field, Message: s.messages.Auth.UserIDTooShort}
	default:
		return &ValidationError{Field: field, Message: s.messages.Auth.PasswordTooShort}
	}
}

// SignUp validates the form, creates the account and records the new user id.
// A failed validation returns a *ValidationError and issues no request.
func (s *AuthService) SignUp(ctx context.Context, sc *session.Context, form models.SignUpForm) (string, error) {
	if verr := s.ValidateSignUp(form); verr != nil {
		return "", verr
	}

	if _, err := s.api.SignUp(ctx, form); err != nil {
		return "", err
	}
	if err := sc.SetSignedUpUserID(ctx, form.UserID); err != nil {
		return "", fmt.Errorf("failed to store user id: %w", err)
	}

	s.logger.Info().Str("client_id", sc.ClientID()).Str("user_id", form.UserID).Msg("account created")
	s.analytics.TrackSignUp(ctx, form.UserID)
	return models.PathRegister, nil
}

// Logout clears the reporter session
func (s *AuthService) Logout(ctx context.Context, sc *session.Context) (string, error) {
	if err := sc.ClearUser(ctx); err != nil {
		return "", fmt.Errorf("failed to clear user session: %w", err)
	}
	return models.PathRegister, nil
}

// AdminLogout clears the moderator session
func (s *AuthService) AdminLogout(ctx context.Context, sc *session.Context) (string, error) {
	if err := sc.ClearAdmin(ctx); err != nil {
		return "", fmt.Errorf("failed to clear admin session: %w", err)
	}
	return models.PathAdminLogin, nil
}

// RequireUser returns the reporter session or ErrNotLoggedIn
func RequireUser(ctx context.Context, sc *session.Context) (*models.Session, error) {
	user, err := sc.User(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

// RequireAdmin returns the moderator session or ErrNotAdmin
func RequireAdmin(ctx context.Context, sc *session.Context) (*models.Session, error) {
	admin, err := sc.Admin(ctx)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotAdmin
	}
	return admin, nil
}
