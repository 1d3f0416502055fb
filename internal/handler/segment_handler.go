package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/neethishnk/hawkcards/internal/campaign"
	mid "github.com/neethishnk/hawkcards/internal/middleware"
	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/internal/store"
	"github.com/neethishnk/hawkcards/pkg/logger"
)

func (h *Handler) ownedSegment(c echo.Context, id string) (*model.ContactSegment, error) {
	seg, err := h.store.FindSegment(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if seg.OwnerID != mid.CurrentUserID(c) {
		return nil, store.ErrNotFound
	}
	return seg, nil
}

func (h *Handler) ownedTemplate(c echo.Context, id string) (*model.MessageTemplate, error) {
	tpl, err := h.store.FindTemplate(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if tpl.OwnerID != mid.CurrentUserID(c) {
		return nil, store.ErrNotFound
	}
	return tpl, nil
}

func (h *Handler) ListSegments(c echo.Context) error {
	log := logger.FromContext(c)
	segments, err := h.store.Segments(c.Request().Context(), mid.CurrentUserID(c))
	if err != nil {
		return storeError(c, log, err, "segments not found")
	}
	return c.JSON(http.StatusOK, segments)
}

func (h *Handler) CreateSegment(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.SegmentInput
	if ok, err := bindAndValidate(c, log, &req); !ok {
		return err
	}
	seg, err := h.store.SaveSegment(c.Request().Context(), mid.CurrentUserID(c), req)
	if err != nil {
		return storeError(c, log, err, "segment not found")
	}
	log.Info("Segment created", zap.String("segment_id", seg.ID), zap.String("name", seg.Name))
	return c.JSON(http.StatusCreated, seg)
}

// DeleteSegment removes the segment only. Contacts keep their tag.
func (h *Handler) DeleteSegment(c echo.Context) error {
	log := logger.FromContext(c)

	seg, err := h.ownedSegment(c, c.Param("id"))
	if err != nil {
		return storeError(c, log, err, "segment not found")
	}
	if err := h.store.DeleteSegment(c.Request().Context(), seg.ID); err != nil {
		return storeError(c, log, err, "segment not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// SegmentMembers lists the caller's contacts tagged with the segment name.
func (h *Handler) SegmentMembers(c echo.Context) error {
	log := logger.FromContext(c)

	seg, err := h.ownedSegment(c, c.Param("id"))
	if err != nil {
		return storeError(c, log, err, "segment not found")
	}
	members, err := h.store.SegmentMembers(c.Request().Context(), seg.OwnerID, seg.Name)
	if err != nil {
		return storeError(c, log, err, "segment not found")
	}
	return c.JSON(http.StatusOK, members)
}

func (h *Handler) ListTemplates(c echo.Context) error {
	log := logger.FromContext(c)
	templates, err := h.store.Templates(c.Request().Context(), mid.CurrentUserID(c))
	if err != nil {
		return storeError(c, log, err, "templates not found")
	}
	return c.JSON(http.StatusOK, templates)
}

func (h *Handler) CreateTemplate(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.TemplateInput
	if ok, err := bindAndValidate(c, log, &req); !ok {
		return err
	}
	tpl, err := h.store.SaveTemplate(c.Request().Context(), mid.CurrentUserID(c), req)
	if err != nil {
		return storeError(c, log, err, "template not found")
	}
	log.Info("Template created", zap.String("template_id", tpl.ID))
	return c.JSON(http.StatusCreated, tpl)
}

func (h *Handler) DeleteTemplate(c echo.Context) error {
	log := logger.FromContext(c)

	tpl, err := h.ownedTemplate(c, c.Param("id"))
	if err != nil {
		return storeError(c, log, err, "template not found")
	}
	if err := h.store.DeleteTemplate(c.Request().Context(), tpl.ID); err != nil {
		return storeError(c, log, err, "template not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// BuildCampaign renders ?template_id= for every member of ?segment_id=.
func (h *Handler) BuildCampaign(c echo.Context) error {
	log := logger.FromContext(c)
	segmentID, templateID := c.QueryParam("segment_id"), c.QueryParam("template_id")
	if segmentID == "" || templateID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": campaign.ErrSelectionRequired.Error()})
	}

	seg, err := h.ownedSegment(c, segmentID)
	if err != nil {
		return storeError(c, log, err, "segment not found")
	}
	tpl, err := h.ownedTemplate(c, templateID)
	if err != nil {
		return storeError(c, log, err, "template not found")
	}
	members, err := h.store.SegmentMembers(c.Request().Context(), seg.OwnerID, seg.Name)
	if err != nil {
		return storeError(c, log, err, "segment not found")
	}

	camp, err := campaign.Build(seg, tpl, members)
	if errors.Is(err, campaign.ErrSelectionRequired) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err != nil {
		log.Error("Failed to build campaign", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build campaign"})
	}
	log.Info("Campaign prepared",
		zap.String("segment_id", seg.ID),
		zap.String("template_id", tpl.ID),
		zap.Int("messages", len(camp.Messages)))
	return c.JSON(http.StatusOK, camp)
}
