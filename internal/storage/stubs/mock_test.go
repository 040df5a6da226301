package stubs

import (
	"context"
	"errors"
	"testing"

	"booklib/internal/models"
)

func TestMockDB_LoadSeed(t *testing.T) {
	db := NewMockDB(models.Book{Title: "Seed"})
	ctx := context.Background()

	books, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Seed" {
		t.Fatalf("Expected seeded book, got %v", books)
	}

	// Mutating the returned slice must not affect the store
	books[0].Title = "Changed"
	again, _ := db.Load(ctx)
	if again[0].Title != "Seed" {
		t.Errorf("Expected stored book to be unchanged, got %s", again[0].Title)
	}
}

func TestMockDB_Save(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	if err := db.Save(ctx, []models.Book{{Title: "A"}, {Title: "B"}}); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	saved := db.Saved()
	if len(saved) != 2 {
		t.Fatalf("Expected 2 books, got %d", len(saved))
	}
	if saved[0].Title != "A" || saved[1].Title != "B" {
		t.Errorf("Expected order A, B, got %s, %s", saved[0].Title, saved[1].Title)
	}
	if db.SaveCount() != 1 {
		t.Errorf("Expected 1 save, got %d", db.SaveCount())
	}
}

func TestMockDB_FailSaves(t *testing.T) {
	db := NewMockDB(models.Book{Title: "Original"})
	ctx := context.Background()
	boom := errors.New("disk full")

	db.FailSaves(boom)
	if err := db.Save(ctx, []models.Book{{Title: "New"}}); !errors.Is(err, boom) {
		t.Fatalf("Expected injected error, got %v", err)
	}

	saved := db.Saved()
	if len(saved) != 1 || saved[0].Title != "Original" {
		t.Errorf("Expected failed save to keep previous content, got %v", saved)
	}
	if db.SaveCount() != 1 {
		t.Errorf("Expected failed save to be counted, got %d", db.SaveCount())
	}

	db.FailSaves(nil)
	if err := db.Save(ctx, []models.Book{{Title: "New"}}); err != nil {
		t.Fatalf("Expected save to succeed after reset, got %v", err)
	}
}

func TestMockDB_FailLoads(t *testing.T) {
	db := NewMockDB()
	boom := errors.New("unreachable")

	db.FailLoads(boom)
	if _, err := db.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Expected injected error, got %v", err)
	}
}

func TestMockDB_Close(t *testing.T) {
	db := NewMockDB()
	if err := db.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if !db.Closed() {
		t.Error("Expected mock to be marked closed")
	}
}
