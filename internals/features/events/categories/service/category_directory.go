package service

import (
	"context"
	"log"
	"strings"
	"sync"

	"campus_events_backend/internals/features/events/categories/model"
	"campus_events_backend/internals/features/events/categories/repository"

	"gorm.io/gorm"
)

// Directory is the read side of the category table.
type Directory interface {
	All(ctx context.Context) ([]model.CategoryModel, error)
	Get(ctx context.Context, id uint) (*model.CategoryModel, bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindByName(ctx context.Context, name string) (*model.CategoryModel, bool, error)
	Invalidate()
}

// catalog is one immutable load of the table; lookups never mix two loads.
type catalog struct {
	items  []model.CategoryModel
	byID   map[uint]int
	byName map[string]int
}

func newCatalog(items []model.CategoryModel) *catalog {
	cat := &catalog{
		items:  items,
		byID:   make(map[uint]int, len(items)),
		byName: make(map[string]int, len(items)),
	}
	for i, it := range items {
		cat.byID[it.ID] = i
		cat.byName[strings.ToLower(it.Name)] = i
	}
	return cat
}

func (cat *catalog) at(i int, ok bool) (*model.CategoryModel, bool) {
	if !ok {
		return nil, false
	}
	c := cat.items[i]
	return &c, true
}

// Cache is a process-wide read-through Directory.
// Lifecycle: Warm at startup, Invalidate after any write; the next read reloads.
type Cache struct {
	db *gorm.DB

	mu  sync.RWMutex
	cur *catalog
}

func NewCache(db *gorm.DB) *Cache {
	return &Cache{db: db}
}

func (c *Cache) Warm(ctx context.Context) error {
	cat, err := c.load(ctx)
	if err == nil {
		log.Printf("[INFO] category cache warmed (%d categories)", len(cat.items))
	}
	return err
}

func (c *Cache) All(ctx context.Context) ([]model.CategoryModel, error) {
	cat, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.CategoryModel, len(cat.items))
	copy(out, cat.items)
	return out, nil
}

func (c *Cache) Get(ctx context.Context, id uint) (*model.CategoryModel, bool, error) {
	cat, err := c.snapshot(ctx)
	if err != nil {
		return nil, false, err
	}
	i, ok := cat.byID[id]
	got, ok := cat.at(i, ok)
	return got, ok, nil
}

func (c *Cache) Exists(ctx context.Context, id uint) (bool, error) {
	_, ok, err := c.Get(ctx, id)
	return ok, err
}

// FindByName matches case-insensitively.
func (c *Cache) FindByName(ctx context.Context, name string) (*model.CategoryModel, bool, error) {
	cat, err := c.snapshot(ctx)
	if err != nil {
		return nil, false, err
	}
	i, ok := cat.byName[strings.ToLower(strings.TrimSpace(name))]
	got, ok := cat.at(i, ok)
	return got, ok, nil
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.cur = nil
	c.mu.Unlock()
}

func (c *Cache) snapshot(ctx context.Context) (*catalog, error) {
	c.mu.RLock()
	cur := c.cur
	c.mu.RUnlock()
	if cur != nil {
		return cur, nil
	}
	return c.load(ctx)
}

func (c *Cache) load(ctx context.Context) (*catalog, error) {
	items, err := repository.ListCategories(ctx, c.db)
	if err != nil {
		return nil, err
	}
	cat := newCatalog(items)

	c.mu.Lock()
	c.cur = cat
	c.mu.Unlock()
	return cat, nil
}
