package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mid "github.com/neethishnk/hawkcards/internal/middleware"
	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/internal/share"
	"github.com/neethishnk/hawkcards/internal/store"
	"github.com/neethishnk/hawkcards/pkg/logger"
	"github.com/neethishnk/hawkcards/prometheus"
)

const qrSize = 256

// ShareResponse carries both links and the QR image for a card.
type ShareResponse struct {
	share.Links
	QRCode     string `json:"qrCode"`
	QRFilename string `json:"qrFilename"`
}

// ownedCard loads :id and hides cards that belong to someone else.
func (h *Handler) ownedCard(c echo.Context) (*model.DigitalCard, error) {
	card, err := h.store.FindCard(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if card.UserID != mid.CurrentUserID(c) {
		return nil, store.ErrNotFound
	}
	return card, nil
}

// ListCards returns the caller's cards.
func (h *Handler) ListCards(c echo.Context) error {
	log := logger.FromContext(c)

	cards, err := h.store.Cards(c.Request().Context(), mid.CurrentUserID(c))
	if err != nil {
		return storeError(c, log, err, "cards not found")
	}
	log.Debug("Cards retrieved", zap.Int("count", len(cards)))
	return c.JSON(http.StatusOK, cards)
}

func (h *Handler) GetCard(c echo.Context) error {
	log := logger.FromContext(c)
	card, err := h.ownedCard(c)
	if err != nil {
		return storeError(c, log, err, "card not found")
	}
	return c.JSON(http.StatusOK, card)
}

// CreateCard adds a card owned by the caller.
func (h *Handler) CreateCard(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.CardInput
	if ok, err := bindAndValidate(c, log, &req); !ok {
		return err
	}

	card, err := h.store.CreateCard(c.Request().Context(), mid.CurrentUserID(c), req)
	if err != nil {
		return storeError(c, log, err, "card not found")
	}
	log.Info("Card created", zap.String("card_id", card.ID), zap.String("title", card.Title))
	return c.JSON(http.StatusCreated, card)
}

func (h *Handler) UpdateCard(c echo.Context) error {
	log := logger.FromContext(c)

	existing, err := h.ownedCard(c)
	if err != nil {
		return storeError(c, log, err, "card not found")
	}

	var req model.CardInput
	if ok, err := bindAndValidate(c, log, &req); !ok {
		return err
	}

	card, err := h.store.UpdateCard(c.Request().Context(), existing.ID, req)
	if err != nil {
		return storeError(c, log, err, "card not found")
	}
	log.Info("Card updated", zap.String("card_id", card.ID))
	return c.JSON(http.StatusOK, card)
}

func (h *Handler) DeleteCard(c echo.Context) error {
	log := logger.FromContext(c)

	card, err := h.ownedCard(c)
	if err != nil {
		return storeError(c, log, err, "card not found")
	}
	if err := h.store.DeleteCard(c.Request().Context(), card.ID); err != nil {
		return storeError(c, log, err, "card not found")
	}
	log.Info("Card deleted", zap.String("card_id", card.ID))
	return c.NoContent(http.StatusNoContent)
}

// qrContent prefers the portable link and falls back to the short one when
// the payload is too large for a QR code.
func qrContent(log *zap.Logger, links share.Links) ([]byte, error) {
	png, err := share.QRCodePNG(links.Portable, qrSize)
	if err == nil {
		return png, nil
	}
	log.Warn("Portable link does not fit in a QR code, using short link", zap.Error(err))
	return share.QRCodePNG(links.Short, qrSize)
}

// ShareCard returns the short and portable links plus a base64 QR PNG.
func (h *Handler) ShareCard(c echo.Context) error {
	log := logger.FromContext(c)

	card, err := h.ownedCard(c)
	if err != nil {
		return storeError(c, log, err, "card not found")
	}

	links, err := share.BuildLinks(h.baseURL, *card)
	if err != nil {
		log.Error("Failed to build share links", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build share links"})
	}
	png, err := qrContent(log, links)
	if err != nil {
		log.Error("Failed to render QR code", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render qr code"})
	}

	prometheus.ShareLinkCounter.Inc()
	return c.JSON(http.StatusOK, ShareResponse{
		Links:      links,
		QRCode:     base64.StdEncoding.EncodeToString(png),
		QRFilename: card.FirstName + "_QR.png",
	})
}

// CardQRCode streams the QR PNG as a download.
func (h *Handler) CardQRCode(c echo.Context) error {
	log := logger.FromContext(c)

	card, err := h.ownedCard(c)
	if err != nil {
		return storeError(c, log, err, "card not found")
	}
	links, err := share.BuildLinks(h.baseURL, *card)
	if err != nil {
		log.Error("Failed to build share links", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build share links"})
	}
	png, err := qrContent(log, links)
	if err != nil {
		log.Error("Failed to render QR code", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render qr code"})
	}

	setAttachment(c, card.FirstName+"_QR.png")
	return c.Blob(http.StatusOK, "image/png", png)
}
