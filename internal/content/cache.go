package content

import (
	"context"
	"fmt"
	"sync"
)

// Cache memoizes loaded content for the life of the process. There is no
// invalidation. Concurrent first access may load the same name twice; the
// first stored value wins and is what every caller sees afterwards.
type Cache struct {
	loader *Loader

	mu    sync.RWMutex
	items map[string]any
}

// NewCache returns an empty cache over loader.
func NewCache(loader *Loader) *Cache {
	return &Cache{loader: loader, items: make(map[string]any, len(Names))}
}

// Preload loads every content name and fails on the first invalid file.
func (c *Cache) Preload(ctx context.Context) error {
	for _, name := range Names {
		if _, err := c.Get(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the named content, loading it on first use.
func (c *Cache) Get(ctx context.Context, name string) (any, error) {
	c.mu.RLock()
	v, ok := c.items[name]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := c.loader.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[name]; ok {
		return existing, nil
	}
	c.items[name] = v
	return v, nil
}

func (c *Cache) Profile(ctx context.Context) (*Profile, error) {
	return get[*Profile](ctx, c, NameProfile)
}

func (c *Cache) Projects(ctx context.Context) ([]StaticProject, error) {
	return get[[]StaticProject](ctx, c, NameProjects)
}

func (c *Cache) Timeline(ctx context.Context) ([]TimelineEntry, error) {
	return get[[]TimelineEntry](ctx, c, NameTimeline)
}

func (c *Cache) Skills(ctx context.Context) ([]Skill, error) {
	return get[[]Skill](ctx, c, NameSkills)
}

func (c *Cache) Certifications(ctx context.Context) ([]Certification, error) {
	return get[[]Certification](ctx, c, NameCertifications)
}

func get[T any](ctx context.Context, c *Cache, name string) (T, error) {
	var zero T
	v, err := c.Get(ctx, name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("content %s has type %T", name, v)
	}
	return t, nil
}
