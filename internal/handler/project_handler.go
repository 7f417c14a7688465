package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "atelier/internal/errors"
	"atelier/internal/middleware"
	"atelier/internal/model"
	"atelier/internal/service"
)

// ProjectHandler handles portfolio project endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
	uploadService  service.UploadService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService, uploadService service.UploadService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		uploadService:  uploadService,
	}
}

// CreateProjectRequest represents a project creation payload.
type CreateProjectRequest struct {
	Title            string             `json:"title" validate:"required,max=100"`
	Client           string             `json:"client" validate:"required"`
	Description      string             `json:"description" validate:"required"`
	ShortDescription string             `json:"shortDescription" validate:"required,max=200"`
	Categories       []string           `json:"categories" validate:"required,min=1"`
	Technologies     []string           `json:"technologies" validate:"required,min=1"`
	Features         []string           `json:"features"`
	ThumbnailImage   string             `json:"thumbnailImage" validate:"required"`
	GalleryImages    []string           `json:"galleryImages"`
	ProjectURL       string             `json:"projectUrl" validate:"omitempty,url"`
	Testimonial      *model.Testimonial `json:"testimonial"`
	Featured         bool               `json:"featured"`
	CompletionDate   *time.Time         `json:"completionDate"`
}

// UpdateProjectRequest represents a partial project update payload.
type UpdateProjectRequest struct {
	Title            *string            `json:"title" validate:"omitempty,max=100"`
	Client           *string            `json:"client"`
	Description      *string            `json:"description"`
	ShortDescription *string            `json:"shortDescription" validate:"omitempty,max=200"`
	Categories       []string           `json:"categories"`
	Technologies     []string           `json:"technologies"`
	Features         []string           `json:"features"`
	ThumbnailImage   *string            `json:"thumbnailImage"`
	GalleryImages    []string           `json:"galleryImages"`
	ProjectURL       *string            `json:"projectUrl" validate:"omitempty,url"`
	Testimonial      *model.Testimonial `json:"testimonial"`
	Featured         *bool              `json:"featured"`
	CompletionDate   *time.Time         `json:"completionDate"`
}

// List godoc
// @Summary List all projects
// @Tags projects
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} Envelope
// @Router /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, projects, len(projects))
}

// Featured godoc
// @Summary List featured projects
// @Tags projects
// @Produce json
// @Success 200 {object} Envelope
// @Router /projects/featured [get]
func (h *ProjectHandler) Featured(c echo.Context) error {
	projects, err := h.projectService.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, projects, len(projects))
}

// ByCategory godoc
// @Summary List projects in a category
// @Tags projects
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /projects/category/{category} [get]
func (h *ProjectHandler) ByCategory(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, projects, len(projects))
}

// Get godoc
// @Summary Fetch one project by id or slug
// @Tags projects
// @Produce json
// @Param id path string true "Project id or slug"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projectService.GetByKey(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, project)
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProjectRequest true "Project data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project := &model.Project{
		Title:            req.Title,
		Client:           req.Client,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Categories:       req.Categories,
		Technologies:     req.Technologies,
		Features:         req.Features,
		ThumbnailImage:   req.ThumbnailImage,
		GalleryImages:    req.GalleryImages,
		ProjectURL:       req.ProjectURL,
		Testimonial:      req.Testimonial,
		Featured:         req.Featured,
		CompletionDate:   req.CompletionDate,
	}

	created, err := h.projectService.Create(c.Request().Context(), project, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, created)
}

// Update godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Param request body UpdateProjectRequest true "Changed fields"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.NotFound("project not found")
	}

	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update := service.ProjectUpdate{
		Title:            req.Title,
		Client:           req.Client,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Categories:       req.Categories,
		Technologies:     req.Technologies,
		Features:         req.Features,
		ThumbnailImage:   req.ThumbnailImage,
		GalleryImages:    req.GalleryImages,
		ProjectURL:       req.ProjectURL,
		Testimonial:      req.Testimonial,
		Featured:         req.Featured,
		CompletionDate:   req.CompletionDate,
	}

	project, err := h.projectService.Update(c.Request().Context(), id, update, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, project)
}

// Delete godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.NotFound("project not found")
	}

	if err := h.projectService.Delete(c.Request().Context(), id, middleware.CurrentUser(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{})
}

// Upload godoc
// @Summary Upload a project image
// @Tags projects
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (jpeg, jpg, png, webp; max 5 MB)"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /projects/upload [post]
func (h *ProjectHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return apperrors.Validation("image file is required (multipart field: image)")
	}

	path, err := h.uploadService.SaveImage(file)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, map[string]string{"path": path})
}
