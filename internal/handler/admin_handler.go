package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mid "github.com/neethishnk/hawkcards/internal/middleware"
	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/internal/store"
	"github.com/neethishnk/hawkcards/internal/vcard"
	"github.com/neethishnk/hawkcards/pkg/logger"
	"github.com/neethishnk/hawkcards/prometheus"
)

// ListUsers handles the admin user table: ?q=, ?sort=name|email|cardStatus,
// ?order=asc|desc, ?page= and ?page_size=.
func (h *Handler) ListUsers(c echo.Context) error {
	log := logger.FromContext(c)

	q := store.UserQuery{
		Term:   c.QueryParam("q"),
		SortBy: c.QueryParam("sort"),
		Desc:   c.QueryParam("order") == "desc",
	}
	if page := c.QueryParam("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			log.Warn("Invalid page parameter", zap.String("value", page), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page"})
		}
		q.Page = n
	}
	if size := c.QueryParam("page_size"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			log.Warn("Invalid page_size parameter", zap.String("value", size), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page_size"})
		}
		q.PageSize = n
	}

	page, err := h.store.SearchUsers(c.Request().Context(), q)
	if err != nil {
		return storeError(c, log, err, "users not found")
	}
	return c.JSON(http.StatusOK, page)
}

// CreateUser adds an employee profile. The card starts NOT_ISSUED.
func (h *Handler) CreateUser(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.NewUserInput
	if ok, err := bindAndValidate(c, log, &req); !ok {
		return err
	}

	user, err := h.store.AddUserAs(c.Request().Context(), mid.CurrentUserID(c), req)
	if errors.Is(err, store.ErrEmailExists) {
		log.Warn("User email already exists", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	}
	if err != nil {
		return storeError(c, log, err, "user not found")
	}
	log.Info("User created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) IssueCard(c echo.Context) error {
	return h.setCardStatus(c, model.CardStatusActive)
}

func (h *Handler) RevokeCard(c echo.Context) error {
	return h.setCardStatus(c, model.CardStatusRevoked)
}

func (h *Handler) setCardStatus(c echo.Context, status model.CardStatus) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, err := h.store.FindUserByID(ctx, id); err != nil {
		return storeError(c, log, err, "user not found")
	}

	users, err := h.store.UpdateUserStatus(ctx, id, status)
	if err != nil {
		return storeError(c, log, err, "user not found")
	}
	for i := range users {
		if users[i].ID == id {
			prometheus.RecordCardStatus(string(status))
			log.Info("Card status changed", zap.String("user_id", id), zap.String("status", string(status)))
			return c.JSON(http.StatusOK, users[i])
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
}

// UserVCard exports an employee profile.
func (h *Handler) UserVCard(c echo.Context) error {
	log := logger.FromContext(c)

	user, err := h.store.FindUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(c, log, err, "user not found")
	}
	return attachVCard(c, vcard.ContactFilename(user.Name), vcard.FromUser(*user, h.orgName))
}

// UserLogs returns audit entries whose details mention the user's name.
func (h *Handler) UserLogs(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	user, err := h.store.FindUserByID(ctx, c.Param("id"))
	if err != nil {
		return storeError(c, log, err, "user not found")
	}
	logs, err := h.store.SearchLogs(ctx, user.Name)
	if err != nil {
		return storeError(c, log, err, "logs not found")
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *Handler) Stats(c echo.Context) error {
	log := logger.FromContext(c)
	stats, err := h.store.UserStats(c.Request().Context())
	if err != nil {
		return storeError(c, log, err, "stats not found")
	}
	return c.JSON(http.StatusOK, stats)
}

// ListLogs returns the audit trail, newest first, filtered by ?q=.
func (h *Handler) ListLogs(c echo.Context) error {
	log := logger.FromContext(c)
	logs, err := h.store.SearchLogs(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return storeError(c, log, err, "logs not found")
	}
	return c.JSON(http.StatusOK, logs)
}

// AnalyzeLogs asks the model for a security summary of recent activity.
func (h *Handler) AnalyzeLogs(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	logs, err := h.store.Logs(ctx)
	if err != nil {
		return storeError(c, log, err, "logs not found")
	}
	analysis := h.analyzer.Analyze(ctx, logs)
	return c.JSON(http.StatusOK, echo.Map{"analysis": analysis})
}

// ResetData wipes every collection so the demo data applies again.
func (h *Handler) ResetData(c echo.Context) error {
	log := logger.FromContext(c)
	if err := h.store.Reset(c.Request().Context()); err != nil {
		return storeError(c, log, err, "store not found")
	}
	log.Warn("Store reset to demo data", zap.String("admin_id", mid.CurrentUserID(c)))
	return c.NoContent(http.StatusNoContent)
}
