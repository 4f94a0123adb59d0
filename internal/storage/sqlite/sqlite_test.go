package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "borga-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateUser mints a token and GetUser round-trips", func(t *testing.T) {
		store := newTestStore(t)

		user, token, err := store.CreateUser(ctx, "alice", "Alice", "")
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if token == "" {
			t.Error("expected non-empty token")
		}
		if user.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}

		got, err := store.GetUser(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Name != "Alice" {
			t.Errorf("name = %s, want Alice", got.Name)
		}

		userID, err := store.UserIDForToken(ctx, token)
		if err != nil || userID != "alice" {
			t.Errorf("UserIDForToken = (%q, %v), want alice", userID, err)
		}
		stored, err := store.TokenForUser(ctx, "alice")
		if err != nil || stored != token {
			t.Errorf("TokenForUser = (%q, %v), want %q", stored, err, token)
		}
	})

	t.Run("duplicate user id maps UNIQUE violation to ALREADY_EXISTS", func(t *testing.T) {
		store := newTestStore(t)
		if _, _, err := store.CreateUser(ctx, "bob", "Bob", ""); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		_, _, err := store.CreateUser(ctx, "bob", "Impostor", "")
		if errs.KindOf(err) != errs.KindAlreadyExists {
			t.Fatalf("expected ALREADY_EXISTS, got %v", err)
		}
	})

	t.Run("group CRUD with partial edit", func(t *testing.T) {
		store := newTestStore(t)
		if _, _, err := store.CreateUser(ctx, "carol", "Carol", ""); err != nil {
			t.Fatal(err)
		}

		if _, err := store.CreateGroup(ctx, "carol", "euro", "Euros", "heavy"); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if _, err := store.CreateGroup(ctx, "carol", "euro", "Euros", ""); errs.KindOf(err) != errs.KindAlreadyExists {
			t.Fatalf("expected ALREADY_EXISTS, got %v", err)
		}

		newDesc := "the heaviest"
		updated, err := store.EditGroup(ctx, "carol", "euro", nil, &newDesc)
		if err != nil {
			t.Fatalf("EditGroup failed: %v", err)
		}
		if updated.Name != "Euros" || updated.Description != "the heaviest" {
			t.Errorf("group = %+v, want name kept and description updated", updated)
		}

		groups, err := store.ListGroups(ctx, "carol")
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 1 || groups["euro"] == nil {
			t.Fatalf("groups = %v, want one entry keyed euro", groups)
		}

		deleted, err := store.DeleteGroup(ctx, "carol", "euro")
		if err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if deleted.Description != "the heaviest" {
			t.Errorf("deleted = %+v, want pre-deletion state", deleted)
		}
		if _, err := store.GetGroup(ctx, "carol", "euro"); errs.KindOf(err) != errs.KindNotFound {
			t.Fatalf("expected NOT_FOUND after delete, got %v", err)
		}
	})

	t.Run("group ops on unknown user are NOT_FOUND", func(t *testing.T) {
		store := newTestStore(t)
		if _, err := store.CreateGroup(ctx, "ghost", "g", "G", ""); errs.KindOf(err) != errs.KindNotFound {
			t.Fatalf("CreateGroup: expected NOT_FOUND, got %v", err)
		}
		if _, err := store.ListGroups(ctx, "ghost"); errs.KindOf(err) != errs.KindNotFound {
			t.Fatalf("ListGroups: expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("game add, get, remove and reference scoping", func(t *testing.T) {
		store := newTestStore(t)
		if _, _, err := store.CreateUser(ctx, "dave", "Dave", ""); err != nil {
			t.Fatal(err)
		}
		if _, err := store.CreateGroup(ctx, "dave", "a", "A", ""); err != nil {
			t.Fatal(err)
		}
		if _, err := store.CreateGroup(ctx, "dave", "b", "B", ""); err != nil {
			t.Fatal(err)
		}

		game := models.Game{
			ID:         "TAAifFP590",
			Name:       "Root",
			URL:        "https://example.com/root",
			Publisher:  "Leder Games",
			AmazonRank: 312,
			Price:      47.99,
		}
		if _, err := store.AddGameToGroup(ctx, "dave", "a", game); err != nil {
			t.Fatalf("AddGameToGroup failed: %v", err)
		}

		got, err := store.GetGameFromGroup(ctx, "dave", "a", "TAAifFP590")
		if err != nil {
			t.Fatalf("GetGameFromGroup failed: %v", err)
		}
		if *got != game {
			t.Errorf("game = %+v, want %+v", got, game)
		}

		// cached globally but not referenced by group b
		if _, err := store.GetGameFromGroup(ctx, "dave", "b", "TAAifFP590"); errs.KindOf(err) != errs.KindNotFound {
			t.Fatalf("expected NOT_FOUND in group b, got %v", err)
		}

		removed, err := store.RemoveGameFromGroup(ctx, "dave", "a", "TAAifFP590")
		if err != nil {
			t.Fatalf("RemoveGameFromGroup failed: %v", err)
		}
		if removed.Name != "Root" {
			t.Errorf("removed = %+v", removed)
		}
		if _, err := store.RemoveGameFromGroup(ctx, "dave", "a", "TAAifFP590"); errs.KindOf(err) != errs.KindNotFound {
			t.Fatalf("expected NOT_FOUND on second remove, got %v", err)
		}
	})

	t.Run("PopularGames orders by reference count", func(t *testing.T) {
		store := newTestStore(t)
		for _, u := range []string{"u1", "u2", "u3"} {
			if _, _, err := store.CreateUser(ctx, u, u, ""); err != nil {
				t.Fatal(err)
			}
			if _, err := store.CreateGroup(ctx, u, "g", "g", ""); err != nil {
				t.Fatal(err)
			}
		}

		hit := models.Game{ID: "hit", Name: "Catan"}
		niche := models.Game{ID: "niche", Name: "Cube Pusher"}
		for _, u := range []string{"u1", "u2", "u3"} {
			if _, err := store.AddGameToGroup(ctx, u, "g", hit); err != nil {
				t.Fatal(err)
			}
		}
		if _, err := store.AddGameToGroup(ctx, "u1", "g", niche); err != nil {
			t.Fatal(err)
		}

		popular, err := store.PopularGames(ctx)
		if err != nil {
			t.Fatalf("PopularGames failed: %v", err)
		}
		if len(popular) != 2 || popular[0].ID != "hit" || popular[1].ID != "niche" {
			t.Errorf("popular = %+v, want [hit niche]", popular)
		}
	})

	t.Run("Reset clears everything", func(t *testing.T) {
		store := newTestStore(t)
		_, token, err := store.CreateUser(ctx, "zoe", "Zoe", "")
		if err != nil {
			t.Fatal(err)
		}
		if err := store.Reset(ctx); err != nil {
			t.Fatalf("Reset failed: %v", err)
		}
		if _, err := store.GetUser(ctx, "zoe"); errs.KindOf(err) != errs.KindNotFound {
			t.Fatalf("expected NOT_FOUND after reset, got %v", err)
		}
		if userID, err := store.UserIDForToken(ctx, token); err != nil || userID != "" {
			t.Errorf("token should be gone, got (%q, %v)", userID, err)
		}
	})
}
