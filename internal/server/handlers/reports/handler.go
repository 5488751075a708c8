package reports

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/repolens/repolens/internal/inspect"
	"github.com/repolens/repolens/internal/reports"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	reportsSvc *reports.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(reportsSvc *reports.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		reportsSvc: reportsSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/reports")

	r.Use(h.errorsHandler)
	r.Post("/", h.post)
	r.Get("/", h.list)
	r.Get("/latest", h.latest)
	r.Get("/paths", h.paths)
	r.Get("/:id", h.get)
	r.Delete("/:id", h.delete)
}

func (h *Handler) post(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	limit := -1
	if req.Limit != nil {
		limit = *req.Limit
	}

	report, err := h.reportsSvc.Create(c.Context(), req.Path, limit)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(toResponse(report))
}

func (h *Handler) list(c *fiber.Ctx) error {
	all, err := h.reportsSvc.List(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	responses := lo.Map(all, func(report reports.Report, _ int) ReportResponse {
		return toResponse(&report)
	})

	return c.JSON(responses)
}

func (h *Handler) latest(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return fiber.NewError(fiber.StatusBadRequest, "path query parameter is required")
	}

	report, err := h.reportsSvc.GetLatestForPath(c.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to get latest report: %w", err)
	}

	return c.JSON(toResponse(report))
}

func (h *Handler) paths(c *fiber.Ctx) error {
	paths, err := h.reportsSvc.Paths(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list report paths: %w", err)
	}

	return c.JSON(paths)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report, err := h.reportsSvc.Get(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get report: %w", err)
	}

	return c.JSON(toResponse(report))
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.reportsSvc.Delete(c.Context(), id); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, reports.ErrNotFound),
		errors.Is(err, inspect.ErrPathNotFound),
		errors.Is(err, inspect.ErrNotARepository):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, inspect.ErrEmptyHistory):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, inspect.ErrCorruptIndex), errors.Is(err, inspect.ErrRepositoryUnavailable):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
