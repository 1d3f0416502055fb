package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/neethishnk/hawkcards/internal/auth"
	mid "github.com/neethishnk/hawkcards/internal/middleware"
	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/pkg/jwtutil"
	"github.com/neethishnk/hawkcards/pkg/logger"
	"github.com/neethishnk/hawkcards/prometheus"
)

// SessionResponse is returned by every sign-in flavour.
type SessionResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
	View  auth.View   `json:"view"`
}

func (h *Handler) issueSession(c echo.Context, log *zap.Logger, session *auth.Session, status int) error {
	token, err := jwtutil.GenerateToken(session.User.ID, session.User.Email, string(session.User.Role))
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate token"})
	}
	return c.JSON(status, SessionResponse{Token: token, User: session.User, View: session.View})
}

// Login handles email sign-in.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.LoginInput
	if ok, err := bindAndValidate(c, log, &req); !ok {
		return err
	}

	prometheus.LoginCounter.Inc()
	session, err := h.auth.Login(c.Request().Context(), req)
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		log.Warn("Login for unknown email", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
	case errors.Is(err, auth.ErrRoleMismatch):
		prometheus.RecordAuthError("role_mismatch")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "role does not match account"})
	case err != nil:
		log.Error("Login failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	log.Info("User logged in",
		zap.String("user_id", session.User.ID),
		zap.String("view", string(session.View)))
	return h.issueSession(c, log, session, http.StatusOK)
}

// Signup registers a regular user and signs them in.
func (h *Handler) Signup(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.SignupInput
	if ok, err := bindAndValidate(c, log, &req); !ok {
		return err
	}

	session, err := h.auth.Signup(c.Request().Context(), req)
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		prometheus.RecordAuthError("email_taken")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	case errors.Is(err, auth.ErrIncomplete):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case err != nil:
		log.Error("Signup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "signup failed"})
	}

	prometheus.SignupCounter.Inc()
	log.Info("User signed up", zap.String("user_id", session.User.ID))
	return h.issueSession(c, log, session, http.StatusCreated)
}

// SocialSignup signs in with a placeholder account for :platform.
func (h *Handler) SocialSignup(c echo.Context) error {
	log := logger.FromContext(c)
	platform := c.Param("platform")

	session, err := h.auth.SocialSignup(c.Request().Context(), platform)
	if errors.Is(err, auth.ErrIncomplete) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "platform is required"})
	}
	if err != nil {
		log.Error("Social signup failed", zap.String("platform", platform), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "signup failed"})
	}

	prometheus.SignupCounter.Inc()
	return h.issueSession(c, log, session, http.StatusOK)
}

// Logout records the sign out. Tokens are stateless and simply expire.
func (h *Handler) Logout(c echo.Context) error {
	log := logger.FromContext(c)
	if err := h.auth.Logout(c.Request().Context(), mid.CurrentEmail(c)); err != nil {
		log.Error("Failed to record logout", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
