package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/internal/store"
	"github.com/neethishnk/hawkcards/pkg/logger"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoleMismatch = errors.New("role does not match account")
	ErrEmailTaken   = store.ErrEmailExists
	ErrIncomplete   = errors.New("name, email and password are required")
)

// View is where a signed-in user is routed.
type View string

const (
	ViewAdminDashboard View = "ADMIN_DASHBOARD"
	ViewUserPortal     View = "USER_PORTAL"
)

// ViewFor routes by the stored role.
func ViewFor(role model.UserRole) View {
	if role == model.RoleAdmin {
		return ViewAdminDashboard
	}
	return ViewUserPortal
}

// Users is the part of the store the auth service needs.
type Users interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	AddUser(ctx context.Context, in model.NewUserInput) (*model.User, error)
	AddLog(ctx context.Context, action, details string) (*model.LogEntry, error)
}

// Session is the outcome of a successful login or signup.
type Session struct {
	User *model.User `json:"user"`
	View View        `json:"view"`
}

// Service implements email-only sign in. There are no passwords to verify.
type Service struct {
	users Users
}

func NewService(users Users) *Service {
	return &Service{users: users}
}

// Login finds the user by email, ignoring case. A submitted role is
// optional but must equal the stored one when present.
func (s *Service) Login(ctx context.Context, in model.LoginInput) (*Session, error) {
	log := logger.Ctx(ctx)

	email := strings.TrimSpace(in.Email)
	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if in.Role != "" && in.Role != user.Role {
		log.Warn("Login role does not match stored role",
			zap.String("email", user.Email),
			zap.String("submitted_role", string(in.Role)),
			zap.String("stored_role", string(user.Role)))
		return nil, ErrRoleMismatch
	}

	if _, err := s.users.AddLog(ctx, model.ActionLogin, fmt.Sprintf("User %s logged in", email)); err != nil {
		return nil, err
	}
	return &Session{User: user, View: ViewFor(user.Role)}, nil
}

// Logout records the sign out in the audit log.
func (s *Service) Logout(ctx context.Context, email string) error {
	_, err := s.users.AddLog(ctx, model.ActionLogout, fmt.Sprintf("User %s logged out", email))
	return err
}

// Signup registers a regular user. Email uniqueness is case-insensitive.
func (s *Service) Signup(ctx context.Context, in model.SignupInput) (*Session, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, ErrIncomplete
	}

	_, err := s.users.FindUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	user, err := s.users.AddUser(ctx, model.NewUserInput{
		Name:       in.Name,
		Email:      in.Email,
		Role:       model.RoleUser,
		Position:   "New Member",
		Department: "General",
	})
	if err != nil {
		return nil, err
	}
	return &Session{User: user, View: ViewFor(user.Role)}, nil
}

// SocialSignup signs in with a placeholder account for the platform,
// creating it on first use.
func (s *Service) SocialSignup(ctx context.Context, platform string) (*Session, error) {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return nil, ErrIncomplete
	}
	email := fmt.Sprintf("social.%s@example.com", strings.ToLower(platform))

	user, err := s.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		user, err = s.users.AddUser(ctx, model.NewUserInput{
			Name:       platform + " User",
			Email:      email,
			Role:       model.RoleUser,
			Position:   "Social Member",
			Department: "General",
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &Session{User: user, View: ViewFor(user.Role)}, nil
}
