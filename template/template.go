package template

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ErrNotFound is returned for lookups of unknown or soft-deleted templates.
var ErrNotFound = errors.New("template: not found")

// Template is a reusable email skeleton.
type Template struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Subject   string     `json:"subject"`
	Content   string     `json:"content"`
	Purpose   string     `json:"purpose"`
	Language  string     `json:"language"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Update is a partial template update; nil fields are left untouched. It is
// applied as an RFC 7396 merge patch, so only the set fields reach the
// stored record.
type Update struct {
	Title    *string `json:"title,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	Content  *string `json:"content,omitempty"`
	Purpose  *string `json:"purpose,omitempty"`
	Language *string `json:"language,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Store holds email templates. Deletion is soft: deleted templates stay
// readable by ID but drop out of listings.
type Store interface {
	List(ctx context.Context, skip, limit int) ([]Template, error)
	Get(ctx context.Context, id int) (*Template, error)
	Create(ctx context.Context, tpl Template) (*Template, error)
	Update(ctx context.Context, id int, update Update) (*Template, error)
	Delete(ctx context.Context, id int) error
}

// MemoryStore keeps templates in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	m      map[int]Template
	nextID int
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:      map[int]Template{},
		nextID: 1,
		now:    time.Now,
	}
}

func (s *MemoryStore) List(ctx context.Context, skip, limit int) ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.m))
	for id, tpl := range s.m {
		if tpl.IsActive {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	if skip < 0 {
		skip = 0
	}
	if skip >= len(ids) {
		return nil, nil
	}
	ids = ids[skip:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	out := make([]Template, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.m[id])
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int) (*Template, error) {
	s.mu.RLock()
	tpl, ok := s.m[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &tpl, nil
}

func (s *MemoryStore) Create(ctx context.Context, tpl Template) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl.ID = s.nextID
	s.nextID++
	if tpl.Language == "" {
		tpl.Language = "en"
	}
	tpl.IsActive = true
	tpl.CreatedAt = s.now().UTC()
	tpl.UpdatedAt = nil
	s.m[tpl.ID] = tpl
	return &tpl, nil
}

func (s *MemoryStore) Update(ctx context.Context, id int, update Update) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	patched, err := applyUpdate(tpl, update)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	patched.ID = id
	patched.CreatedAt = tpl.CreatedAt
	patched.UpdatedAt = &now
	s.m[id] = *patched
	return patched, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl, ok := s.m[id]
	if !ok {
		return ErrNotFound
	}
	tpl.IsActive = false
	now := s.now().UTC()
	tpl.UpdatedAt = &now
	s.m[id] = tpl
	return nil
}

func applyUpdate(tpl Template, update Update) (*Template, error) {
	original, err := sonic.Marshal(tpl)
	if err != nil {
		return nil, fmt.Errorf("template: marshal original: %w", err)
	}
	patch, err := sonic.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("template: marshal update: %w", err)
	}
	merged, err := jsonpatch.MergePatch(original, patch)
	if err != nil {
		return nil, fmt.Errorf("template: apply merge patch: %w", err)
	}
	var out Template
	if err := sonic.Unmarshal(merged, &out); err != nil {
		return nil, fmt.Errorf("template: unmarshal merged: %w", err)
	}
	return &out, nil
}

var _ Store = (*MemoryStore)(nil)
