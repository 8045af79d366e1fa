package handler

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fadilmartias/design-evaluator/internal/util"
	"github.com/fadilmartias/design-evaluator/internal/workflow"
	"github.com/gofiber/fiber/v2"
)

// BodyLimit is the server body limit for a given upload limit. Multipart
// framing needs some room on top of the file itself.
func BodyLimit(maxBytes int64) int {
	return int(maxBytes) + 1024*1024
}

// NewErrorHandler builds the app's fiber.ErrorHandler. Bodies the server
// rejects before routing are reported like any other oversized upload: a 400
// envelope under /api and an "Invalid file" toast on the upload page.
func NewErrorHandler(wf *WorkflowHandler, maxBytes int64) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if errors.Is(err, fiber.ErrRequestEntityTooLarge) {
			return tooLarge(c, wf, maxBytes)
		}

		// Status code defaults to 500
		code := fiber.StatusInternalServerError

		// Retrieve the custom status code if it's a *fiber.Error
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		message := err.Error()
		if message == "" {
			message = "Internal Server Error"
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}

func tooLarge(c *fiber.Ctx, wf *WorkflowHandler, maxBytes int64) error {
	desc := fmt.Sprintf("file exceeds limit of %d bytes", maxBytes)

	if wf == nil || strings.HasPrefix(c.Path(), "/api") {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid file",
			Details: map[string]string{uploadField: desc},
		})
	}

	s, err := wf.session(c)
	if err != nil {
		log.Printf("Oversized upload without session: %v", err)
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	s.Inbox.Notify(workflow.Notification{
		Variant:     workflow.VariantDestructive,
		Title:       "Invalid file",
		Description: desc,
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}
