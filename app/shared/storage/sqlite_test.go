package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/reactable-club/discord-menu-bot/app/menu"
)

func newTestStore(t *testing.T) *SQLiteMenuStore {
	t.Helper()
	store, err := NewSQLiteMenuStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sentButtonMenu(t *testing.T, messageID string) *menu.ButtonMenu {
	t.Helper()
	b := menu.NewButtonMenu("Vote")
	b.MessageID = messageID
	b.ChannelID = "chan-1"
	b.GuildID = "guild-1"
	b.Enabled = true
	if err := b.AddOption("👍", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func TestSQLiteMenuStore_SaveLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sentButtonMenu(t, "100")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "100")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Kind() != menu.KindButton {
		t.Errorf("kind = %q, want button", loaded.Kind())
	}
	base := loaded.Base()
	if base.Title != "Vote" || base.GuildID != "guild-1" || !base.Enabled {
		t.Errorf("loaded base = %+v", base)
	}
	if len(base.Options) != 1 {
		t.Errorf("options = %d, want 1", len(base.Options))
	}
}

func TestSQLiteMenuStore_SaveUnsent(t *testing.T) {
	store := newTestStore(t)

	b := menu.NewButtonMenu("Vote")
	if err := store.Save(context.Background(), b); err == nil {
		t.Fatal("expected an error saving an unsent menu")
	}
}

func TestSQLiteMenuStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b := sentButtonMenu(t, "100")
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	b.Enabled = false
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "100")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Base().Enabled {
		t.Error("upsert did not replace the stored state")
	}
}

func TestSQLiteMenuStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Load(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteMenuStore_LoadAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sentButtonMenu(t, "100")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	s := menu.NewSelectMenu("Pronouns")
	s.MessageID = "200"
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	menus, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load all failed: %v", err)
	}
	if len(menus) != 2 {
		t.Fatalf("menus = %d, want 2", len(menus))
	}
	if menus[0].Kind() != menu.KindButton || menus[1].Kind() != menu.KindSelect {
		t.Errorf("kinds = %q, %q", menus[0].Kind(), menus[1].Kind())
	}
}

func TestSQLiteMenuStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sentButtonMenu(t, "100")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete(ctx, "100"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Load(ctx, "100"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound after delete", err)
	}
}

func TestSQLiteMenuStore_MigratesV1Rows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// A v1 dump keyed its options by emoji and used "descriptor".
	v1 := `{
		"title": "Old Menu",
		"description": "Legacy",
		"enabled_color": 3066993,
		"disabled_color": 15158332,
		"use_inline": false,
		"show_id": true,
		"auto_enable": false,
		"enabled": true,
		"message_id": "300",
		"channel_id": "chan-1",
		"options": {
			"👍": {"id": "👍", "descriptor": "yes", "reaction_count": 3}
		}
	}`
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO menus (message_id, guild_id, kind, version, data, updated_at)
		VALUES ('300', 'guild-1', 'reaction', 1, ?, CURRENT_TIMESTAMP)`, v1)
	if err != nil {
		t.Fatalf("failed to seed v1 row: %v", err)
	}

	loaded, err := store.Load(ctx, "300")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	base := loaded.Base()
	if base.Title != "Old Menu" {
		t.Errorf("title = %q", base.Title)
	}
	if len(base.Options) != 1 {
		t.Fatalf("options = %d, want 1", len(base.Options))
	}
	opt := base.Options[0]
	if opt.Value != "yes" || opt.ReactionCount != 3 {
		t.Errorf("migrated option = %+v", opt)
	}
}
