package handler

import (
	"errors"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/neethishnk/hawkcards/internal/share"
	"github.com/neethishnk/hawkcards/internal/vcard"
	"github.com/neethishnk/hawkcards/pkg/logger"
)

// ResolveCard serves the public card page data. Local cards count a view;
// unknown ids fall back to the ?d= portable payload.
func (h *Handler) ResolveCard(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	res, err := h.resolver.Resolve(c.Request().Context(), id, c.QueryParam("d"))
	if errors.Is(err, share.ErrCardNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "card not found"})
	}
	if err != nil {
		log.Error("Failed to resolve card", zap.String("card_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, res)
}

// DownloadCardVCard returns the card as a vCard attachment and counts a save
// for local cards.
func (h *Handler) DownloadCardVCard(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()
	id := c.Param("id")

	res, err := h.resolver.Lookup(ctx, id, c.QueryParam("d"))
	if errors.Is(err, share.ErrCardNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "card not found"})
	}
	if err != nil {
		log.Error("Failed to look up card", zap.String("card_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	if _, err := h.resolver.RecordSave(ctx, id); err != nil {
		log.Warn("Failed to record card save", zap.String("card_id", id), zap.Error(err))
	}

	return attachVCard(c, vcard.CardFilename(*res.Card), vcard.FromCard(*res.Card))
}

func attachVCard(c echo.Context, filename, body string) error {
	setAttachment(c, filename)
	return c.Blob(http.StatusOK, vcard.ContentType, []byte(body))
}

func setAttachment(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}
