package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/repository"
)

// ProjectUpdate carries a partial project update. Nil fields are left
// unchanged; slice and testimonial fields replace the stored value when
// non-nil.
type ProjectUpdate struct {
	Title            *string
	Client           *string
	Description      *string
	ShortDescription *string
	Categories       []string
	Technologies     []string
	Features         []string
	ThumbnailImage   *string
	GalleryImages    []string
	ProjectURL       *string
	Testimonial      *model.Testimonial
	Featured         *bool
	CompletionDate   *time.Time
}

// ProjectService handles portfolio project operations.
type ProjectService interface {
	List(ctx context.Context, category string) ([]model.Project, error)
	Featured(ctx context.Context) ([]model.Project, error)
	GetByKey(ctx context.Context, key string) (*model.Project, error)
	Create(ctx context.Context, project *model.Project, actor *model.User) (*model.Project, error)
	Update(ctx context.Context, id uuid.UUID, update ProjectUpdate, actor *model.User) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID, actor *model.User) error
}

type projectService struct {
	repo repository.ProjectRepository
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

// List returns all projects, optionally filtered by category membership.
func (s *projectService) List(ctx context.Context, category string) ([]model.Project, error) {
	if category == "" {
		return s.repo.List(ctx)
	}
	if !model.ValidCategory(category) {
		return nil, apperrors.Validation("unknown category: " + category)
	}
	return s.repo.ListByCategory(ctx, category)
}

// Featured returns projects flagged for the homepage.
func (s *projectService) Featured(ctx context.Context) ([]model.Project, error) {
	return s.repo.ListFeatured(ctx)
}

// GetByKey resolves a project by id or slug.
func (s *projectService) GetByKey(ctx context.Context, key string) (*model.Project, error) {
	if id, err := uuid.Parse(key); err == nil {
		return s.findByID(ctx, id)
	}

	project, err := s.repo.FindBySlug(ctx, key)
	if err != nil {
		return nil, apperrors.Map(err)
	}
	return project, nil
}

func (s *projectService) findByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Map(err)
	}
	return project, nil
}

// Create validates and persists a new project owned by the acting user.
// The slug is derived from the title.
func (s *projectService) Create(ctx context.Context, project *model.Project, actor *model.User) (*model.Project, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Authz("only admins may create projects")
	}

	if err := validateCategories(project.Categories); err != nil {
		return nil, err
	}
	if len(project.Technologies) == 0 {
		return nil, apperrors.Validation("at least one technology is required")
	}

	project.Slug = model.Slugify(project.Title)
	if project.Slug == "" {
		return nil, apperrors.Validation("title must contain at least one word character")
	}
	project.CreatedBy = actor.ID

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, apperrors.Map(err)
	}

	return project, nil
}

// Update applies a partial update after an ownership check. Changing the
// title re-derives the slug.
func (s *projectService) Update(ctx context.Context, id uuid.UUID, update ProjectUpdate, actor *model.User) (*model.Project, error) {
	project, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !project.OwnedBy(actor) {
		return nil, apperrors.Authz("not authorized to update this project")
	}

	if update.Title != nil && *update.Title != project.Title {
		project.Title = *update.Title
		project.Slug = model.Slugify(project.Title)
		if project.Slug == "" {
			return nil, apperrors.Validation("title must contain at least one word character")
		}
	}
	if update.Categories != nil {
		if err := validateCategories(update.Categories); err != nil {
			return nil, err
		}
		project.Categories = update.Categories
	}
	if update.Technologies != nil {
		if len(update.Technologies) == 0 {
			return nil, apperrors.Validation("at least one technology is required")
		}
		project.Technologies = update.Technologies
	}
	if update.Client != nil {
		project.Client = *update.Client
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if update.ShortDescription != nil {
		project.ShortDescription = *update.ShortDescription
	}
	if update.Features != nil {
		project.Features = update.Features
	}
	if update.ThumbnailImage != nil {
		project.ThumbnailImage = *update.ThumbnailImage
	}
	if update.GalleryImages != nil {
		project.GalleryImages = update.GalleryImages
	}
	if update.ProjectURL != nil {
		project.ProjectURL = *update.ProjectURL
	}
	if update.Testimonial != nil {
		project.Testimonial = update.Testimonial
	}
	if update.Featured != nil {
		project.Featured = *update.Featured
	}
	if update.CompletionDate != nil {
		project.CompletionDate = update.CompletionDate
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, apperrors.Map(err)
	}

	return project, nil
}

// Delete removes a project after an ownership check.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID, actor *model.User) error {
	project, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}

	if !project.OwnedBy(actor) {
		return apperrors.Authz("not authorized to delete this project")
	}

	if err := s.repo.Delete(ctx, project.ID); err != nil {
		return apperrors.Map(err)
	}
	return nil
}

func validateCategories(categories []string) error {
	if len(categories) == 0 {
		return apperrors.Validation("at least one category is required")
	}
	for _, c := range categories {
		if !model.ValidCategory(c) {
			return apperrors.Validation(fmt.Sprintf("unknown category: %s", c))
		}
	}
	return nil
}
