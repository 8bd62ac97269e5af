package store

import (
	"context"
	"testing"
	"time"

	"github.com/pavelanni/trivium/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteGameRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	game := model.Game{
		ID:                 "g1",
		SelectedCategories: []model.Category{model.CategoryHistory, model.CategoryScience},
		Questions: []model.StoredQuestion{
			{
				ID:           "q1",
				Category:     model.CategoryHistory,
				Prompt:       "First?",
				Choices:      []string{"a", "b", "c", "d"},
				CorrectIndex: 1,
				Explanation:  "because",
				Fingerprint:  "fp1",
				Source:       "openai",
			},
			{
				ID:           "q2",
				Category:     model.CategoryScience,
				Prompt:       "Second?",
				Choices:      []string{"w", "x", "y", "z"},
				CorrectIndex: 3,
				Fingerprint:  "fp2",
				Source:       "gemini",
			},
		},
		UsedFingerprints: []string{"fp1", "fp2"},
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.SaveGame(ctx, game); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	got, err := s.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got.Questions))
	}
	if got.Questions[0].ID != "q1" || got.Questions[1].ID != "q2" {
		t.Errorf("questions out of order: %q, %q", got.Questions[0].ID, got.Questions[1].ID)
	}
	q := got.Questions[0]
	if q.Prompt != "First?" || q.CorrectIndex != 1 || q.Explanation != "because" || q.Source != "openai" {
		t.Errorf("question fields lost in round trip: %+v", q)
	}
	if len(q.Choices) != 4 || q.Choices[2] != "c" {
		t.Errorf("choices lost in round trip: %v", q.Choices)
	}
	if len(got.SelectedCategories) != 2 || got.SelectedCategories[1] != model.CategoryScience {
		t.Errorf("categories lost in round trip: %v", got.SelectedCategories)
	}
	if len(got.UsedFingerprints) != 2 || got.UsedFingerprints[0] != "fp1" {
		t.Errorf("fingerprints lost in round trip: %v", got.UsedFingerprints)
	}
}

func TestSQLiteGetGameNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetGame(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteFingerprints(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Add(ctx, "user-a", "fp1"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Re-adding the same pair is a no-op, not an error.
	if err := s.Add(ctx, "user-a", "fp1"); err != nil {
		t.Fatalf("duplicate Add: %v", err)
	}
	if err := s.Add(ctx, "user-a", "fp2"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	has, err := s.Has(ctx, "user-a", "fp1")
	if err != nil || !has {
		t.Fatalf("expected fp1 present, got %v, %v", has, err)
	}
	has, err = s.Has(ctx, "user-b", "fp1")
	if err != nil || has {
		t.Fatalf("other owner must not see fp1, got %v, %v", has, err)
	}

	list, err := s.List(ctx, "user-a")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 fingerprints, got %v", list)
	}

	if err := s.Clear(ctx, "user-a"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	list, err = s.List(ctx, "user-a")
	if err != nil {
		t.Fatalf("List after Clear: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list after Clear, got %v", list)
	}
}
