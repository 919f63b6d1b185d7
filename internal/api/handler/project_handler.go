package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// ProjectHandler serves the showcase and the submission review queue.
type ProjectHandler struct {
	projects ports.ProjectService
}

func NewProjectHandler(projects ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type submissionRequest struct {
	Title           string   `json:"title"            validate:"required,min=3,max=200"`
	Description     string   `json:"description"      validate:"required,max=500"`
	LongDescription string   `json:"long_description" validate:"omitempty,max=5000"`
	Image           string   `json:"image"            validate:"omitempty,url"`
	Tags            []string `json:"tags"`
	GitHub          string   `json:"github"           validate:"omitempty,url"`
	Demo            string   `json:"demo"             validate:"omitempty,url"`
	Contributors    []string `json:"contributors"`
	Technologies    []string `json:"technologies"`
	SubmitterName   string   `json:"submitter_name"   validate:"required,min=2,max=100"`
	SubmitterEmail  string   `json:"submitter_email"  validate:"required,email"`
}

type reviewRequest struct {
	Feedback string `json:"feedback" validate:"omitempty,max=2000"`
}

// List returns the public showcase, newest first.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projects.List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, projects)
}

// Get returns one showcase project.
//
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projects.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, project)
}

// Submit queues a project for admin review and notifies the review
// inbox.
//
// @Summary      Submit project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      submissionRequest  true  "Submission"
// @Success      201   {object}  map[string]any
// @Router       /api/project-submissions [post]
func (h *ProjectHandler) Submit(c echo.Context) error {
	var req submissionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	sub, err := h.projects.Submit(c.Request().Context(), &domain.PendingProject{
		Title:           req.Title,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Image:           req.Image,
		Tags:            req.Tags,
		GitHub:          req.GitHub,
		Demo:            req.Demo,
		Contributors:    req.Contributors,
		Technologies:    req.Technologies,
		SubmitterName:   req.SubmitterName,
		SubmitterEmail:  req.SubmitterEmail,
	})
	if err != nil {
		return err
	}
	return created(c, sub)
}

// Pending lists submissions awaiting review. Admin only.
//
// @Summary      Pending submissions
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /api/project-submissions [get]
func (h *ProjectHandler) Pending(c echo.Context) error {
	subs, err := h.projects.Pending(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, subs)
}

// Approve promotes a pending submission into the showcase and emails
// the submitter. Reviewing twice conflicts. Admin only.
//
// @Summary      Approve submission
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission id"
// @Success      200  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /api/project-submissions/{id}/approve [post]
func (h *ProjectHandler) Approve(c echo.Context) error {
	project, err := h.projects.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, project)
}

// Reject declines a pending submission with optional feedback and
// emails the submitter. Admin only.
//
// @Summary      Reject submission
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Submission id"
// @Param        body  body      reviewRequest  true  "Review feedback"
// @Success      200   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/project-submissions/{id}/reject [post]
func (h *ProjectHandler) Reject(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	sub, err := h.projects.Reject(c.Request().Context(), c.Param("id"), req.Feedback)
	if err != nil {
		return err
	}
	return ok(c, sub)
}

// Statistics returns submission counts by review state. Admin only.
//
// @Summary      Submission statistics
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /api/project-submissions/statistics [get]
func (h *ProjectHandler) Statistics(c echo.Context) error {
	counts, err := h.projects.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, counts)
}
