package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"realestate-listing-api/internal/domains/listing/model"
	"realestate-listing-api/pkg/database"
)

// MemoryStore giữ listings trong RAM (DB_DRIVER=memory, tests).
// Thứ tự insert được giữ nguyên cho GetAll.
type MemoryStore struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]model.Listing
	order []uuid.UUID

	// working is the copy SaveChanges mutates; nil outside a commit.
	working *memorySnapshot
}

type memorySnapshot struct {
	rows  map[uuid.UUID]model.Listing
	order []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[uuid.UUID]model.Listing)}
}

type memoryRepository struct {
	store *MemoryStore
}

// NewMemoryRepository creates a Repository over store.
func NewMemoryRepository(store *MemoryStore) Repository {
	return &memoryRepository{store: store}
}

func (r *memoryRepository) GetAll(ctx context.Context) ([]model.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]model.Listing, 0, len(r.store.order))
	for _, id := range r.store.order {
		result = append(result, r.store.rows[id].Clone())
	}
	return result, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	l, ok := r.store.rows[id]
	if !ok {
		return nil, nil
	}
	c := l.Clone()
	return &c, nil
}

func (r *memoryRepository) Add(ctx context.Context, listing *model.Listing) error {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	row := listing.Clone()

	return database.Stage(ctx, func(context.Context) (int64, error) {
		w := r.store.working
		if _, exists := w.rows[row.ID]; exists {
			return 0, fmt.Errorf("listing %s already exists", row.ID)
		}
		if w.hasTitleAndAddress(row.Title, row.Address, nil) {
			return 0, fmt.Errorf("%w (ux_listings_title_address)", database.ErrUniqueViolation)
		}
		w.rows[row.ID] = row
		w.order = append(w.order, row.ID)
		return 1, nil
	})
}

func (r *memoryRepository) Update(ctx context.Context, listing *model.Listing) error {
	row := listing.Clone()

	return database.Stage(ctx, func(context.Context) (int64, error) {
		w := r.store.working
		if _, exists := w.rows[row.ID]; !exists {
			return 0, nil
		}
		if w.hasTitleAndAddress(row.Title, row.Address, &row.ID) {
			return 0, fmt.Errorf("%w (ux_listings_title_address)", database.ErrUniqueViolation)
		}
		w.rows[row.ID] = row
		return 1, nil
	})
}

func (r *memoryRepository) Delete(ctx context.Context, listing *model.Listing) error {
	id := listing.ID

	return database.Stage(ctx, func(context.Context) (int64, error) {
		w := r.store.working
		if _, exists := w.rows[id]; !exists {
			return 0, nil
		}
		delete(w.rows, id)
		for i, existing := range w.order {
			if existing == id {
				w.order = append(w.order[:i], w.order[i+1:]...)
				break
			}
		}
		return 1, nil
	})
}

func (r *memoryRepository) ExistsWithTitleAndAddress(ctx context.Context, title string, address *string, ignoreID *uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	snap := memorySnapshot{rows: r.store.rows}
	return snap.hasTitleAndAddress(title, address, ignoreID), nil
}

func (s *memorySnapshot) hasTitleAndAddress(title string, address *string, ignoreID *uuid.UUID) bool {
	want := derefOrEmpty(address)
	for id, l := range s.rows {
		if ignoreID != nil && id == *ignoreID {
			continue
		}
		if l.Title == title && derefOrEmpty(l.Address) == want {
			return true
		}
	}
	return false
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type memoryUnitOfWork struct {
	store *MemoryStore
}

// NewMemoryUnitOfWork commits change sets against store all-or-nothing.
func NewMemoryUnitOfWork(store *MemoryStore) UnitOfWork {
	return &memoryUnitOfWork{store: store}
}

func (u *memoryUnitOfWork) SaveChanges(ctx context.Context) (int, error) {
	cs := database.ChangeSetFromContext(ctx)
	if cs.Len() == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		cs.Discard()
		return 0, err
	}

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.working = s.snapshot()
	defer func() { s.working = nil }()

	affected, err := cs.Apply(ctx)
	if err != nil {
		return 0, err
	}

	s.rows = s.working.rows
	s.order = s.working.order
	return affected, nil
}

func (s *MemoryStore) snapshot() *memorySnapshot {
	rows := make(map[uuid.UUID]model.Listing, len(s.rows))
	for id, l := range s.rows {
		rows[id] = l
	}
	order := make([]uuid.UUID, len(s.order))
	copy(order, s.order)
	return &memorySnapshot{rows: rows, order: order}
}
