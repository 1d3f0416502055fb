package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/neethishnk/hawkcards/internal/auth"
	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/internal/share"
	"github.com/neethishnk/hawkcards/internal/store"
)

// Analyzer summarizes audit logs. It never fails; problems come back as text.
type Analyzer interface {
	Analyze(ctx context.Context, logs []model.LogEntry) string
}

// Pinger checks the backing store. A nil Pinger means there is nothing to check.
type Pinger func(ctx context.Context) error

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Store    *store.Store
	Analyzer Analyzer
	BaseURL  string
	OrgName  string
	Ping     Pinger
}

type Handler struct {
	store    *store.Store
	auth     *auth.Service
	resolver *share.Resolver
	analyzer Analyzer
	baseURL  string
	orgName  string
	ping     Pinger
}

func New(d Deps) *Handler {
	return &Handler{
		store:    d.Store,
		auth:     auth.NewService(d.Store),
		resolver: share.NewResolver(d.Store),
		analyzer: d.Analyzer,
		baseURL:  d.BaseURL,
		orgName:  d.OrgName,
		ping:     d.Ping,
	}
}

// bindAndValidate writes a 400 response itself and returns false when the
// body is unusable.
func bindAndValidate(c echo.Context, log *zap.Logger, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(req); err != nil {
		log.Warn("Request validation failed", zap.Error(err))
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return true, nil
}

// storeError maps store.ErrNotFound to 404 and anything else to 500.
func storeError(c echo.Context, log *zap.Logger, err error, notFound string) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound})
	}
	log.Error("Store operation failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
