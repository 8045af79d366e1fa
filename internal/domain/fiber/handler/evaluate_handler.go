package handler

import (
	"errors"
	"log"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/middleware"
	"github.com/fadilmartias/design-evaluator/internal/repository"
	"github.com/fadilmartias/design-evaluator/internal/usecase"
	"github.com/fadilmartias/design-evaluator/internal/util"
	"github.com/gofiber/fiber/v2"
)

type EvaluateHandler struct {
	uc       *usecase.EvaluationUsecase
	maxBytes int64
}

func NewEvaluateHandler(uc *usecase.EvaluationUsecase, maxBytes int64) *EvaluateHandler {
	return &EvaluateHandler{uc: uc, maxBytes: maxBytes}
}

func (h *EvaluateHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/evaluate", middleware.RateLimiter(10, 1*time.Minute), h.Evaluate)
	api.Get("/evaluations", h.List)
	api.Get("/evaluations/:id", h.Result)
}

func (h *EvaluateHandler) Evaluate(c *fiber.Ctx) error {
	file, err := readUpload(c, h.maxBytes)
	if err != nil {
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: formErr.Message,
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read uploaded file",
		}, err)
	}

	eval, err := h.uc.Submit(c.UserContext(), file)
	if err != nil {
		log.Printf("Evaluate %s failed: %v", file.Name, err)
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to evaluate design",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success evaluate design",
		Data:    eval,
	})
}

func (h *EvaluateHandler) Result(c *fiber.Ctx) error {
	id := c.Params("id")
	eval, err := h.uc.GetResult(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "evaluation not found",
		})
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get evaluation",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation result",
		Data:    eval,
	})
}

func (h *EvaluateHandler) List(c *fiber.Ctx) error {
	items, pagination, err := h.uc.List(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("page_size", 10))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list evaluations",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list evaluations",
		Data:       items,
		Pagination: pagination,
	})
}
