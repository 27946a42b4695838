package repository

import (
	"context"

	"portfolioapi/internal/model"
)

// ProjectFilter narrows a project listing.
type ProjectFilter struct {
	FeaturedOnly bool
}

// ProjectStore persists dynamic project documents.
type ProjectStore interface {
	Pinger

	// List returns projects matching filter in creation order. Stores that
	// cannot filter natively must filter after fetching.
	List(ctx context.Context, filter ProjectFilter) ([]model.Project, error)

	// Create inserts a fully populated project. Returns ErrDuplicate when the
	// slug is taken.
	Create(ctx context.Context, p *model.Project) (*model.Project, error)

	// IncrementViews atomically adds one to the view counter of the project
	// with the given slug and returns the updated record.
	IncrementViews(ctx context.Context, slug string) (*model.Project, error)

	// Update applies patch to the project with the given slug.
	Update(ctx context.Context, slug string, patch model.ProjectPatch) (*model.Project, error)
}
