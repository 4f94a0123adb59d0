package service

import (
	"context"
	"testing"

	"github.com/jpvieira/borga/internal/errs"
)

func TestCreateGroup(t *testing.T) {
	users, groups, _ := newFixture(t)
	ctx := context.Background()
	token := register(t, users, "alice", "Alice")

	group, err := groups.Create(ctx, token, "alice", CreateGroupParams{
		GroupID:     ptr("euro"),
		Name:        ptr("Euros"),
		Description: ptr("heavy euros"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if group.ID != "euro" || group.Name != "Euros" || group.Description != "heavy euros" {
		t.Errorf("group = %+v", group)
	}
	if len(group.Games) != 0 {
		t.Errorf("expected empty game map, got %v", group.Games)
	}

	got, err := groups.Get(ctx, token, "alice", "euro")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Euros" || got.Description != "heavy euros" {
		t.Errorf("round-trip = %+v", got)
	}
}

func TestCreateGroupMissingDescription(t *testing.T) {
	users, groups, _ := newFixture(t)
	token := register(t, users, "alice", "Alice")

	_, err := groups.Create(context.Background(), token, "alice", CreateGroupParams{
		GroupID: ptr("euro"),
		Name:    ptr("Euros"),
	})
	if errs.KindOf(err) != errs.KindBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %v", err)
	}
	fields := errs.Fields(err)
	if fields["groupDescription"] != "required property missing" {
		t.Errorf(`fields = %v, want {groupDescription: "required property missing"}`, fields)
	}
}

func TestGroupMutationsRequireValidToken(t *testing.T) {
	users, groups, _ := newFixture(t)
	ctx := context.Background()
	register(t, users, "alice", "Alice")

	// Unknown token must fail UNAUTHENTICATED regardless of whether the
	// target user or group exists.
	calls := map[string]func() error{
		"Create": func() error {
			_, err := groups.Create(ctx, "bogus", "alice", CreateGroupParams{
				GroupID: ptr("g"), Name: ptr("G"), Description: ptr("d"),
			})
			return err
		},
		"Edit": func() error {
			_, err := groups.Edit(ctx, "bogus", "alice", "g", EditGroupParams{Name: ptr("X")})
			return err
		},
		"List": func() error {
			_, err := groups.List(ctx, "bogus", "alice")
			return err
		},
		"Delete": func() error {
			_, err := groups.Delete(ctx, "bogus", "alice", "g")
			return err
		},
		"AddGame": func() error {
			_, err := groups.AddGame(ctx, "bogus", "alice", "g", AddGameParams{GameName: ptr("Root")})
			return err
		},
		"RemoveGame": func() error {
			_, err := groups.RemoveGame(ctx, "bogus", "alice", "g", "TAAifFP590")
			return err
		},
		"Create on missing user": func() error {
			_, err := groups.Create(ctx, "bogus", "nobody", CreateGroupParams{
				GroupID: ptr("g"), Name: ptr("G"), Description: ptr("d"),
			})
			return err
		},
	}

	for name, call := range calls {
		if err := call(); errs.KindOf(err) != errs.KindUnauthenticated {
			t.Errorf("%s: expected UNAUTHENTICATED, got %v", name, err)
		}
	}
}

func TestGroupTokenMustMatchTargetUser(t *testing.T) {
	users, groups, _ := newFixture(t)
	ctx := context.Background()
	register(t, users, "alice", "Alice")
	bobToken := register(t, users, "bob", "Bob")

	_, err := groups.Create(ctx, bobToken, "alice", CreateGroupParams{
		GroupID: ptr("g"), Name: ptr("G"), Description: ptr("d"),
	})
	if errs.KindOf(err) != errs.KindUnauthenticated {
		t.Fatalf("expected UNAUTHENTICATED for cross-user token, got %v", err)
	}
}

func TestEditGroup(t *testing.T) {
	users, groups, _ := newFixture(t)
	ctx := context.Background()
	token := register(t, users, "alice", "Alice")
	if _, err := groups.Create(ctx, token, "alice", CreateGroupParams{
		GroupID: ptr("euro"), Name: ptr("Euros"), Description: ptr("heavy"),
	}); err != nil {
		t.Fatal(err)
	}

	t.Run("partial update keeps the other field", func(t *testing.T) {
		updated, err := groups.Edit(ctx, token, "alice", "euro", EditGroupParams{
			Name: ptr("Heavy Euros"),
		})
		if err != nil {
			t.Fatalf("Edit failed: %v", err)
		}
		if updated.Name != "Heavy Euros" || updated.Description != "heavy" {
			t.Errorf("group = %+v", updated)
		}
	})

	t.Run("empty payload is BAD_REQUEST", func(t *testing.T) {
		_, err := groups.Edit(ctx, token, "alice", "euro", EditGroupParams{})
		if errs.KindOf(err) != errs.KindBadRequest {
			t.Fatalf("expected BAD_REQUEST, got %v", err)
		}
	})

	t.Run("unknown group is NOT_FOUND", func(t *testing.T) {
		_, err := groups.Edit(ctx, token, "alice", "nope", EditGroupParams{Name: ptr("X")})
		if errs.KindOf(err) != errs.KindNotFound {
			t.Fatalf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestDeleteGroup(t *testing.T) {
	users, groups, _ := newFixture(t)
	ctx := context.Background()
	token := register(t, users, "alice", "Alice")
	if _, err := groups.Create(ctx, token, "alice", CreateGroupParams{
		GroupID: ptr("euro"), Name: ptr("Euros"), Description: ptr("d"),
	}); err != nil {
		t.Fatal(err)
	}

	deleted, err := groups.Delete(ctx, token, "alice", "euro")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted.Name != "Euros" {
		t.Errorf("deleted = %+v", deleted)
	}
	if _, err := groups.Get(ctx, token, "alice", "euro"); errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("expected NOT_FOUND after delete, got %v", err)
	}
}

func TestAddAndRemoveGame(t *testing.T) {
	users, groups, games := newFixture(t)
	ctx := context.Background()
	token := register(t, users, "123456", "Paulão")
	if _, err := groups.Create(ctx, token, "123456", CreateGroupParams{
		GroupID: ptr("PG"), Name: ptr("Paulão Games"), Description: ptr("desc"),
	}); err != nil {
		t.Fatal(err)
	}

	added, err := groups.AddGame(ctx, token, "123456", "PG", AddGameParams{
		GameName: ptr("monopoly skyrim"),
	})
	if err != nil {
		t.Fatalf("AddGame failed: %v", err)
	}
	if added.ID != "I9azM1kA6l" || added.Price != 420.69 {
		t.Errorf("added = %+v", added)
	}

	got, err := groups.GetGame(ctx, token, "123456", "PG", "I9azM1kA6l")
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if *got != *added {
		t.Errorf("GetGame = %+v, want the identical record %+v", got, added)
	}

	popular, err := games.Popular(ctx)
	if err != nil {
		t.Fatalf("Popular failed: %v", err)
	}
	if len(popular) != 1 || popular[0].ID != "I9azM1kA6l" {
		t.Errorf("popular = %+v, want Monopoly Skyrim with count 1", popular)
	}

	removed, err := groups.RemoveGame(ctx, token, "123456", "PG", "I9azM1kA6l")
	if err != nil {
		t.Fatalf("RemoveGame failed: %v", err)
	}
	if removed.Name != "Monopoly Skyrim" {
		t.Errorf("removed = %+v", removed)
	}

	if _, err := groups.RemoveGame(ctx, token, "123456", "PG", "I9azM1kA6l"); errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("expected NOT_FOUND on second remove, got %v", err)
	}
}

func TestAddGameUnknownName(t *testing.T) {
	users, groups, _ := newFixture(t)
	ctx := context.Background()
	token := register(t, users, "alice", "Alice")
	if _, err := groups.Create(ctx, token, "alice", CreateGroupParams{
		GroupID: ptr("g"), Name: ptr("G"), Description: ptr("d"),
	}); err != nil {
		t.Fatal(err)
	}

	_, err := groups.AddGame(ctx, token, "alice", "g", AddGameParams{
		GameName: ptr("definitely not a real game"),
	})
	if errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("expected NOT_FOUND from catalog, got %v", err)
	}
}

func TestAddGameCatalogFailurePropagates(t *testing.T) {
	users, _, _ := newFixture(t)
	ctx := context.Background()
	token := register(t, users, "alice", "Alice")

	// Rebuild the group service with a failing catalog over the same
	// token; the store behind users is what matters for authorize.
	broken := &fakeCatalog{err: errs.ExternalService("catalog down", nil)}
	groups := NewGroupService(users.store, broken)
	if _, err := groups.Create(ctx, token, "alice", CreateGroupParams{
		GroupID: ptr("g"), Name: ptr("G"), Description: ptr("d"),
	}); err != nil {
		t.Fatal(err)
	}

	_, err := groups.AddGame(ctx, token, "alice", "g", AddGameParams{GameName: ptr("root")})
	if errs.KindOf(err) != errs.KindExternalService {
		t.Fatalf("expected EXT_SVC_FAIL, got %v", err)
	}
}
