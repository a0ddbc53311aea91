// Package store defines the template persistence surface the designer and
// renderer consume. The engine treats it as a plain object store: the real
// implementation lives in the surrounding CRM data layer, while MemoryStore
// here backs tests and the CLI.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/goliatone/go-invoicegen/pkg/model"
)

// ErrNotFound reports an unknown template id.
var ErrNotFound = errors.New("store: template not found")

// TemplateStore is the external persistence collaborator.
type TemplateStore interface {
	List(ctx context.Context) ([]model.Template, error)
	Get(ctx context.Context, id string) (model.Template, error)
	Create(ctx context.Context, tpl model.Template) (model.Template, error)
	Update(ctx context.Context, tpl model.Template) (model.Template, error)
	Delete(ctx context.Context, id string) error
}

// Snapshotter is implemented by stores that can freeze a template for an
// issued invoice. The returned value is a detached copy of the markup and
// style fields: editing the template afterwards never changes documents that
// were already rendered against the snapshot.
type Snapshotter interface {
	SnapshotForInvoice(ctx context.Context, templateID string) (model.Template, error)
}

// MemoryStore is an in-memory TemplateStore. At most one template is flagged
// default: saving a template with IsDefault set clears the flag elsewhere.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]model.Template
	nextID    int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[string]model.Template),
		nextID:    1,
	}
}

// List returns all templates sorted by id.
func (s *MemoryStore) List(_ context.Context) ([]model.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Template, 0, len(s.templates))
	for _, tpl := range s.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns the template with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (model.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tpl, ok := s.templates[id]
	if !ok {
		return model.Template{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return tpl, nil
}

// Create stores a new template, assigning an id when none is set.
func (s *MemoryStore) Create(_ context.Context, tpl model.Template) (model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tpl.ID == "" {
		tpl.ID = strconv.Itoa(s.nextID)
		s.nextID++
	}
	if _, exists := s.templates[tpl.ID]; exists {
		return model.Template{}, fmt.Errorf("store: template %q already exists", tpl.ID)
	}
	if tpl.IsDefault {
		s.clearDefaultLocked(tpl.ID)
	}
	s.templates[tpl.ID] = tpl
	return tpl, nil
}

// Update replaces an existing template.
func (s *MemoryStore) Update(_ context.Context, tpl model.Template) (model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[tpl.ID]; !ok {
		return model.Template{}, fmt.Errorf("%w: %q", ErrNotFound, tpl.ID)
	}
	if tpl.IsDefault {
		s.clearDefaultLocked(tpl.ID)
	}
	s.templates[tpl.ID] = tpl
	return tpl, nil
}

// Delete removes a template; deleting an unknown id is an error.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(s.templates, id)
	return nil
}

// Default returns the template flagged default, if any.
func (s *MemoryStore) Default(_ context.Context) (model.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tpl := range s.templates {
		if tpl.IsDefault {
			return tpl, true
		}
	}
	return model.Template{}, false
}

// SnapshotForInvoice returns a detached copy of the template for freezing
// onto an issued invoice. Template is a value type, so the copy shares no
// state with the stored record.
func (s *MemoryStore) SnapshotForInvoice(ctx context.Context, templateID string) (model.Template, error) {
	tpl, err := s.Get(ctx, templateID)
	if err != nil {
		return model.Template{}, err
	}
	tpl.ID = ""
	tpl.IsDefault = false
	return tpl, nil
}

func (s *MemoryStore) clearDefaultLocked(exceptID string) {
	for id, tpl := range s.templates {
		if id != exceptID && tpl.IsDefault {
			tpl.IsDefault = false
			s.templates[id] = tpl
		}
	}
}
