package repos

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/repolens/repolens/internal/inspect"
	"go.uber.org/zap"
)

// Handler serves direct, unpersisted repository queries.
type Handler struct {
	inspectSvc *inspect.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(inspectSvc *inspect.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		inspectSvc: inspectSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/repos")

	r.Use(h.errorsHandler)
	r.Get("/status", h.status)
	r.Get("/history", h.history)
}

func (h *Handler) status(c *fiber.Ctx) error {
	var req StatusQuery
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	info, err := h.inspectSvc.Open(req.Path)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	if _, err := info.StatusInfo(); err != nil {
		return fmt.Errorf("failed to compute status: %w", err)
	}

	return c.JSON(StatusResponse{
		Path:   req.Path,
		Branch: info.Branch(),
		Status: info.Status(),
	})
}

func (h *Handler) history(c *fiber.Ctx) error {
	var req HistoryQuery
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	limit := h.inspectSvc.DefaultLimit()
	if req.Limit != nil {
		limit = *req.Limit
	}

	info, err := h.inspectSvc.Open(req.Path)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	if _, err := info.CommitInfo(limit); err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	return c.JSON(HistoryResponse{
		Path:    req.Path,
		Branch:  info.Branch(),
		History: info.History(),
	})
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, inspect.ErrPathNotFound), errors.Is(err, inspect.ErrNotARepository):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, inspect.ErrEmptyHistory):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, inspect.ErrCorruptIndex), errors.Is(err, inspect.ErrRepositoryUnavailable):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
