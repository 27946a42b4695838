package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"portfolioapi/internal/apperror"
	"portfolioapi/internal/model"
	"portfolioapi/internal/repository"
)

const (
	projectStoreName = "mongodb"
	minProjectYear   = 1970
	maxProjectYear   = 2100
)

// ProjectService defines the use cases for dynamic projects.
type ProjectService interface {
	// GetAll returns every project in creation order.
	GetAll(ctx context.Context) ([]model.Project, error)

	// GetFeatured returns only projects flagged as featured.
	GetFeatured(ctx context.Context) ([]model.Project, error)

	// Create validates in, assigns id, slug and timestamps and stores the project.
	// ViewCount of a new project is always zero.
	Create(ctx context.Context, in model.ProjectInput) (*model.Project, error)

	// IncrementViews atomically bumps the view counter of the project with slug.
	IncrementViews(ctx context.Context, slug string) (*model.Project, error)

	// SetFeatured flips the featured flag of the project with slug.
	SetFeatured(ctx context.Context, slug string, featured bool) (*model.Project, error)
}

type projectService struct {
	store    repository.ProjectStore
	validate *validator.Validate
	now      func() time.Time
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(store repository.ProjectStore) ProjectService {
	return &projectService{
		store:    store,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *projectService) GetAll(ctx context.Context) ([]model.Project, error) {
	out, err := s.store.List(ctx, repository.ProjectFilter{})
	if err != nil {
		return nil, apperror.NewStoreUnavailable(projectStoreName, err)
	}
	return out, nil
}

func (s *projectService) GetFeatured(ctx context.Context) ([]model.Project, error) {
	out, err := s.store.List(ctx, repository.ProjectFilter{FeaturedOnly: true})
	if err != nil {
		return nil, apperror.NewStoreUnavailable(projectStoreName, err)
	}
	// The store contract allows native filtering; keep the guarantee here too.
	featured := out[:0]
	for _, p := range out {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

func (s *projectService) Create(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	p, err := s.buildProject(in)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Create(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewValidation("Project with slug %q already exists", p.Slug)
		}
		return nil, apperror.NewStoreUnavailable(projectStoreName, err)
	}
	return stored, nil
}

func (s *projectService) IncrementViews(ctx context.Context, slug string) (*model.Project, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperror.NewMissingFields("slug")
	}
	p, err := s.store.IncrementViews(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFound("project", slug)
		}
		return nil, apperror.NewStoreUnavailable(projectStoreName, err)
	}
	return p, nil
}

func (s *projectService) SetFeatured(ctx context.Context, slug string, featured bool) (*model.Project, error) {
	p, err := s.store.Update(ctx, slug, model.ProjectPatch{Featured: &featured})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFound("project", slug)
		}
		return nil, apperror.NewStoreUnavailable(projectStoreName, err)
	}
	return p, nil
}

// buildProject normalizes and validates caller input into a storable project.
func (s *projectService) buildProject(in model.ProjectInput) (*model.Project, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	status := strings.TrimSpace(in.Status)

	techs := make([]string, 0, len(in.Technologies))
	for _, t := range in.Technologies {
		if t = strings.TrimSpace(t); t != "" {
			techs = append(techs, t)
		}
	}

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if description == "" {
		missing = append(missing, "description")
	}
	if len(techs) == 0 {
		missing = append(missing, "technologies")
	}
	if status == "" {
		missing = append(missing, "status")
	}
	if in.Year == nil {
		missing = append(missing, "year")
	}
	if len(missing) > 0 {
		return nil, apperror.NewMissingFields(missing...)
	}

	if !model.ProjectStatus(status).Valid() {
		return nil, apperror.NewValidation("Invalid status %q. Use: completed, in-progress, planned", status)
	}
	if *in.Year < minProjectYear || *in.Year > maxProjectYear {
		return nil, apperror.NewValidation("Year must be between %d and %d", minProjectYear, maxProjectYear)
	}
	githubURL := strings.TrimSpace(in.GithubURL)
	liveURL := strings.TrimSpace(in.LiveURL)
	for field, u := range map[string]string{"githubUrl": githubURL, "liveUrl": liveURL} {
		if err := s.validate.Var(u, "omitempty,http_url"); err != nil {
			return nil, apperror.NewValidation("Invalid %s: must be an http(s) URL", field)
		}
	}

	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return nil, apperror.NewValidation("Cannot derive a slug from title %q", title)
	}

	now := s.now()
	return &model.Project{
		ID:           uuid.NewString(),
		Slug:         slug,
		Title:        title,
		Description:  description,
		Technologies: techs,
		Status:       model.ProjectStatus(status),
		Year:         *in.Year,
		Featured:     in.Featured,
		GithubURL:    githubURL,
		LiveURL:      liveURL,
		ViewCount:    0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
