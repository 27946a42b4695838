package memory

import (
	"context"
	"sync"
	"time"

	"portfolioapi/internal/model"
	"portfolioapi/internal/repository"
)

// ProjectMemory is an in-process repository.ProjectStore used when no
// document store is configured, and by tests. It keeps insertion order and
// filters on the client side.
type ProjectMemory struct {
	mu     sync.RWMutex
	order  []string
	bySlug map[string]*model.Project
}

// NewProjectMemory returns an empty store.
func NewProjectMemory() *ProjectMemory {
	return &ProjectMemory{bySlug: make(map[string]*model.Project)}
}

var _ repository.ProjectStore = (*ProjectMemory)(nil)

func (m *ProjectMemory) List(_ context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Project, 0, len(m.order))
	for _, slug := range m.order {
		p := m.bySlug[slug]
		if filter.FeaturedOnly && !p.Featured {
			continue
		}
		out = append(out, clone(p))
	}
	return out, nil
}

func (m *ProjectMemory) Create(_ context.Context, p *model.Project) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bySlug[p.Slug]; ok {
		return nil, repository.ErrDuplicate
	}
	stored := clone(p)
	m.bySlug[p.Slug] = &stored
	m.order = append(m.order, p.Slug)
	out := clone(&stored)
	return &out, nil
}

func (m *ProjectMemory) IncrementViews(_ context.Context, slug string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.bySlug[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.ViewCount++
	p.UpdatedAt = time.Now().UTC()
	out := clone(p)
	return &out, nil
}

func (m *ProjectMemory) Update(_ context.Context, slug string, patch model.ProjectPatch) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.bySlug[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	p.UpdatedAt = time.Now().UTC()
	out := clone(p)
	return &out, nil
}

// Ping always succeeds.
func (m *ProjectMemory) Ping(context.Context) error { return nil }

func clone(p *model.Project) model.Project {
	out := *p
	out.Technologies = append([]string(nil), p.Technologies...)
	return out
}
