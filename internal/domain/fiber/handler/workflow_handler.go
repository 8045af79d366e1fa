package handler

import (
	"bytes"
	"errors"
	"log"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/middleware"
	"github.com/fadilmartias/design-evaluator/internal/report"
	"github.com/fadilmartias/design-evaluator/internal/session"
	"github.com/fadilmartias/design-evaluator/internal/util"
	"github.com/fadilmartias/design-evaluator/internal/workflow"
	"github.com/gofiber/fiber/v2"
)

const sessionCookie = middleware.SessionCookie

// WorkflowHandler serves the upload and results pages. Each browser gets its
// own workflow controller through the session cookie.
type WorkflowHandler struct {
	sessions *session.Manager
	appName  string
	maxBytes int64
}

func NewWorkflowHandler(sessions *session.Manager, appName string, maxBytes int64) *WorkflowHandler {
	return &WorkflowHandler{sessions: sessions, appName: appName, maxBytes: maxBytes}
}

func (h *WorkflowHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Index)
	app.Get("/state", h.State)
	app.Post("/select", h.Select)
	app.Post("/evaluate", h.Evaluate)
	app.Post("/reset", h.Reset)
}

func (h *WorkflowHandler) session(c *fiber.Ctx) (*session.Session, error) {
	s, created, err := h.sessions.GetOrCreate(c.Cookies(sessionCookie))
	if err != nil {
		return nil, err
	}
	if created {
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    s.ID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return s, nil
}

func (h *WorkflowHandler) Index(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	snap := s.Controller.Snapshot()
	page := report.Page{
		AppName:      h.appName,
		State:        string(snap.State),
		IsEvaluating: snap.IsEvaluating,
		CanEvaluate:  snap.File != nil && !snap.IsEvaluating,
		Report:       report.Build(snap.Result),
		Year:         time.Now().Year(),
	}
	if snap.File != nil {
		page.FileName = snap.File.Name
	}
	for _, n := range s.Inbox.Drain() {
		page.Toasts = append(page.Toasts, report.Toast{
			Variant:     string(n.Variant),
			Title:       n.Title,
			Description: n.Description,
		})
	}

	var buf bytes.Buffer
	if err := report.RenderPage(&buf, page); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *WorkflowHandler) State(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get workflow state",
		Data:    s.Controller.Snapshot(),
	})
}

func (h *WorkflowHandler) Select(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	file, err := readUpload(c, h.maxBytes)
	if err != nil {
		desc := err.Error()
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			desc = formErr.Errors[uploadField]
		}
		s.Inbox.Notify(workflow.Notification{
			Variant:     workflow.VariantDestructive,
			Title:       "Invalid file",
			Description: desc,
		})
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	if err := s.Controller.Select(file); err != nil {
		log.Printf("Session %s: select failed: %v", s.ID, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *WorkflowHandler) Evaluate(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// The controller already notified the user about a missing file.
	if err := s.Controller.Evaluate(); err != nil &&
		!errors.Is(err, workflow.ErrNoFileSelected) &&
		!errors.Is(err, workflow.ErrEvaluationInProgress) {
		log.Printf("Session %s: evaluate failed: %v", s.ID, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *WorkflowHandler) Reset(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := s.Controller.Reset(); err != nil {
		log.Printf("Session %s: reset failed: %v", s.ID, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
