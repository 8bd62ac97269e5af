package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pavelanni/trivium/internal/model"
)

func TestFingerprintOf(t *testing.T) {
	fp := FingerprintOf("Who wrote Hamlet?", "Shakespeare")
	if fp != FingerprintOf("Who wrote Hamlet?", "Shakespeare") {
		t.Error("fingerprint must be deterministic")
	}
	if len(fp) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(fp))
	}
	if fp == FingerprintOf("Who wrote Hamlet?", "Marlowe") {
		t.Error("different correct choice must change the fingerprint")
	}
	if fp == FingerprintOf("Who wrote Macbeth?", "Shakespeare") {
		t.Error("different prompt must change the fingerprint")
	}
}

func TestFingerprintSet(t *testing.T) {
	s := FingerprintSet{}
	if s.Has("a") {
		t.Error("empty set should not contain anything")
	}
	s.Add("a")
	s.Add("b")
	s.Add("a")
	if !s.Has("a") || !s.Has("b") {
		t.Error("set should contain added fingerprints")
	}
	if got := len(s.List()); got != 2 {
		t.Errorf("expected 2 entries, got %d", got)
	}
}

func TestMemoryGames(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryGames()

	if _, err := m.GetGame(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	g := model.Game{
		ID:                 "g1",
		SelectedCategories: []model.Category{model.CategoryHistory},
		Questions:          []model.StoredQuestion{{ID: "q1", Prompt: "P?"}},
		CreatedAt:          time.Now(),
	}
	if err := m.SaveGame(ctx, g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	got, err := m.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if got.ID != "g1" || len(got.Questions) != 1 {
		t.Errorf("unexpected game: %+v", got)
	}
}

func TestMemoryFingerprintsOwnersIndependent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryFingerprints()

	if err := m.Add(ctx, "user-a", "fp1"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	has, err := m.Has(ctx, "user-a", "fp1")
	if err != nil || !has {
		t.Fatalf("expected user-a to have fp1, got %v, %v", has, err)
	}
	has, err = m.Has(ctx, "user-b", "fp1")
	if err != nil || has {
		t.Fatalf("user-b must not see user-a's fingerprints, got %v, %v", has, err)
	}

	if err := m.Clear(ctx, "user-a"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	list, err := m.List(ctx, "user-a")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list after Clear, got %v", list)
	}
}

func TestMemoryFingerprintsConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryFingerprints()

	var wg sync.WaitGroup
	for owner := 0; owner < 4; owner++ {
		ownerKey := fmt.Sprintf("owner-%d", owner)
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func(fp string) {
				defer wg.Done()
				if err := m.Add(ctx, ownerKey, fp); err != nil {
					t.Errorf("Add: %v", err)
				}
			}(fmt.Sprintf("fp-%d", i))
		}
	}
	wg.Wait()

	for owner := 0; owner < 4; owner++ {
		list, err := m.List(ctx, fmt.Sprintf("owner-%d", owner))
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 25 {
			t.Errorf("owner-%d: expected 25 fingerprints, got %d", owner, len(list))
		}
	}
}
