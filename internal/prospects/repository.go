package prospects

import (
	"context"
	"sort"
	"sync"
)

// Repository defines the interface for prospect storage. A search round
// atomically replaces the owner's whole set; reads come back newest first.
type Repository interface {
	ReplaceForOwner(ctx context.Context, ownerID string, prospects []Prospect) error
	ListByOwner(ctx context.Context, ownerID string) ([]Prospect, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// InMemoryRepository is a Repository backed by process memory, used in tests
// and local development.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]Prospect
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byOwner: make(map[string][]Prospect),
	}
}

// ReplaceForOwner swaps the owner's prospect set in one step.
func (r *InMemoryRepository) ReplaceForOwner(ctx context.Context, ownerID string, prospects []Prospect) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	stored := make([]Prospect, len(prospects))
	copy(stored, prospects)

	r.mu.Lock()
	r.byOwner[ownerID] = stored
	r.mu.Unlock()
	return nil
}

// ListByOwner returns the owner's prospects ordered by creation time descending.
func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]Prospect, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	r.mu.RLock()
	stored := r.byOwner[ownerID]
	out := make([]Prospect, len(stored))
	copy(out, stored)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a single prospect scoped to its owner.
func (r *InMemoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.byOwner[ownerID]
	for i, p := range stored {
		if p.ID == id {
			r.byOwner[ownerID] = append(stored[:i:i], stored[i+1:]...)
			return nil
		}
	}
	return ErrProspectNotFound
}
