package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mid "github.com/neethishnk/hawkcards/internal/middleware"
	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/internal/store"
	"github.com/neethishnk/hawkcards/internal/vcard"
	"github.com/neethishnk/hawkcards/pkg/logger"
)

func (h *Handler) ownedContact(c echo.Context) (*model.Contact, error) {
	contact, err := h.store.FindContact(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if contact.OwnerID != mid.CurrentUserID(c) {
		return nil, store.ErrNotFound
	}
	return contact, nil
}

// ListContacts returns the caller's contacts, filtered by ?q= when present.
func (h *Handler) ListContacts(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()
	owner := mid.CurrentUserID(c)

	var (
		contacts []model.Contact
		err      error
	)
	if q := c.QueryParam("q"); q != "" {
		log.Debug("Searching contacts", zap.String("q", q))
		contacts, err = h.store.SearchContacts(ctx, owner, q)
	} else {
		contacts, err = h.store.Contacts(ctx, owner)
	}
	if err != nil {
		return storeError(c, log, err, "contacts not found")
	}
	return c.JSON(http.StatusOK, contacts)
}

func (h *Handler) CreateContact(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.ContactInput
	if ok, err := bindAndValidate(c, log, &req); !ok {
		return err
	}

	contact, err := h.store.AddContact(c.Request().Context(), mid.CurrentUserID(c), req)
	if err != nil {
		return storeError(c, log, err, "contact not found")
	}
	log.Info("Contact added", zap.String("contact_id", contact.ID))
	return c.JSON(http.StatusCreated, contact)
}

func (h *Handler) UpdateContact(c echo.Context) error {
	log := logger.FromContext(c)

	contact, err := h.ownedContact(c)
	if err != nil {
		return storeError(c, log, err, "contact not found")
	}

	var req model.ContactInput
	if ok, err := bindAndValidate(c, log, &req); !ok {
		return err
	}
	req.Apply(contact)

	if err := h.store.UpdateContact(c.Request().Context(), *contact); err != nil {
		return storeError(c, log, err, "contact not found")
	}
	log.Info("Contact updated", zap.String("contact_id", contact.ID))
	return c.JSON(http.StatusOK, contact)
}

func (h *Handler) DeleteContact(c echo.Context) error {
	log := logger.FromContext(c)

	contact, err := h.ownedContact(c)
	if err != nil {
		return storeError(c, log, err, "contact not found")
	}
	if err := h.store.DeleteContact(c.Request().Context(), contact.ID); err != nil {
		return storeError(c, log, err, "contact not found")
	}
	log.Info("Contact deleted", zap.String("contact_id", contact.ID))
	return c.NoContent(http.StatusNoContent)
}

// ContactVCard exports one contact.
func (h *Handler) ContactVCard(c echo.Context) error {
	log := logger.FromContext(c)

	contact, err := h.ownedContact(c)
	if err != nil {
		return storeError(c, log, err, "contact not found")
	}
	return attachVCard(c, vcard.ContactFilename(contact.Name), vcard.FromContact(*contact))
}
