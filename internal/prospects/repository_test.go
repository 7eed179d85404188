package prospects

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInMemoryReplaceAndList(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	first := []Prospect{
		{ID: "p1", OwnerID: "owner-1", Name: "Sarah Chen", CreatedAt: now.Add(-time.Minute)},
		{ID: "p2", OwnerID: "owner-1", Name: "Miguel Torres", CreatedAt: now},
	}
	if err := repo.ReplaceForOwner(ctx, "owner-1", first); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	list, err := repo.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 prospects, got %d", len(list))
	}
	if list[0].ID != "p2" {
		t.Errorf("expected newest first, got %s", list[0].ID)
	}

	// A second round replaces the whole set.
	second := []Prospect{{ID: "p3", OwnerID: "owner-1", Name: "Ana Ruiz", CreatedAt: now}}
	if err := repo.ReplaceForOwner(ctx, "owner-1", second); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	list, _ = repo.ListByOwner(ctx, "owner-1")
	if len(list) != 1 || list[0].ID != "p3" {
		t.Fatalf("expected replaced set, got %#v", list)
	}
}

func TestInMemoryOwnerIsolation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_ = repo.ReplaceForOwner(ctx, "owner-1", []Prospect{{ID: "p1"}})
	_ = repo.ReplaceForOwner(ctx, "owner-2", []Prospect{{ID: "p2"}})

	list, _ := repo.ListByOwner(ctx, "owner-1")
	if len(list) != 1 || list[0].ID != "p1" {
		t.Fatalf("expected only owner-1 prospects, got %#v", list)
	}

	if err := repo.Delete(ctx, "owner-1", "p2"); !errors.Is(err, ErrProspectNotFound) {
		t.Fatalf("expected not found deleting another owner's prospect, got %v", err)
	}
}

func TestInMemoryDelete(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_ = repo.ReplaceForOwner(ctx, "owner-1", []Prospect{{ID: "p1"}, {ID: "p2"}})

	if err := repo.Delete(ctx, "owner-1", "p1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	list, _ := repo.ListByOwner(ctx, "owner-1")
	if len(list) != 1 || list[0].ID != "p2" {
		t.Fatalf("expected p2 remaining, got %#v", list)
	}

	if err := repo.Delete(ctx, "owner-1", "p1"); !errors.Is(err, ErrProspectNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestInMemoryRequiresOwner(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if err := repo.ReplaceForOwner(ctx, "", nil); !errors.Is(err, ErrMissingOwner) {
		t.Fatalf("expected missing owner error, got %v", err)
	}
	if _, err := repo.ListByOwner(ctx, ""); !errors.Is(err, ErrMissingOwner) {
		t.Fatalf("expected missing owner error, got %v", err)
	}
	if err := repo.Delete(ctx, "", "p1"); !errors.Is(err, ErrMissingOwner) {
		t.Fatalf("expected missing owner error, got %v", err)
	}
}
