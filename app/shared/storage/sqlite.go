package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/reactable-club/discord-menu-bot/app/menu"

	_ "modernc.org/sqlite"
)

//go:generate mockgen -source=sqlite.go -destination=mocks/mock_menu_store.go -package=mocks MenuStore

// MenuStore persists menu dictionaries so menus survive restarts. Handlers
// are not part of the persisted form and are rebound on load.
type MenuStore interface {
	Save(ctx context.Context, m menu.Renderable) error
	Load(ctx context.Context, menuID string) (menu.Renderable, error)
	LoadAll(ctx context.Context) ([]menu.Renderable, error)
	Delete(ctx context.Context, menuID string) error
	Close() error
}

const menuSchema = `
CREATE TABLE IF NOT EXISTS menus (
	message_id TEXT PRIMARY KEY,
	guild_id   TEXT NOT NULL DEFAULT '',
	kind       TEXT NOT NULL,
	version    INTEGER NOT NULL,
	data       TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_menus_guild ON menus (guild_id);
`

// SQLiteMenuStore is a MenuStore backed by a local SQLite database.
type SQLiteMenuStore struct {
	db *sql.DB
}

// NewSQLiteMenuStore opens (or creates) the database at dsn and bootstraps
// the schema.
func NewSQLiteMenuStore(dsn string) (*SQLiteMenuStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu store: %w", err)
	}

	// SQLite allows a single writer; a second connection would only block.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(menuSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create menu schema: %w", err)
	}

	return &SQLiteMenuStore{db: db}, nil
}

// Save upserts the serialized menu keyed by its message ID.
func (s *SQLiteMenuStore) Save(ctx context.Context, m menu.Renderable) error {
	base := m.Base()
	if base.MessageID == "" {
		return errors.New("cannot save a menu before it is sent")
	}

	data, err := json.Marshal(m.ToDict())
	if err != nil {
		return fmt.Errorf("failed to marshal menu %s: %w", base.MessageID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO menus (message_id, guild_id, kind, version, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(message_id) DO UPDATE SET
			guild_id = excluded.guild_id,
			kind = excluded.kind,
			version = excluded.version,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		base.MessageID, base.GuildID, string(m.Kind()), menu.DictVersion, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save menu %s: %w", base.MessageID, err)
	}
	return nil
}

// Load reads one menu by its message ID.
func (s *SQLiteMenuStore) Load(ctx context.Context, menuID string) (menu.Renderable, error) {
	var raw, kind string
	var version int
	err := s.db.QueryRowContext(ctx,
		`SELECT data, kind, version FROM menus WHERE message_id = ?`, menuID,
	).Scan(&raw, &kind, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load menu %s: %w", menuID, err)
	}

	return decodeMenu(raw, kind, version)
}

// LoadAll reads every persisted menu, typically at startup.
func (s *SQLiteMenuStore) LoadAll(ctx context.Context) ([]menu.Renderable, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data, kind, version FROM menus ORDER BY message_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load menus: %w", err)
	}
	defer rows.Close()

	var menus []menu.Renderable
	for rows.Next() {
		var raw, kind string
		var version int
		if err := rows.Scan(&raw, &kind, &version); err != nil {
			return nil, fmt.Errorf("failed to scan menu row: %w", err)
		}
		m, err := decodeMenu(raw, kind, version)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

// Delete removes one menu by its message ID.
func (s *SQLiteMenuStore) Delete(ctx context.Context, menuID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM menus WHERE message_id = ?`, menuID); err != nil {
		return fmt.Errorf("failed to delete menu %s: %w", menuID, err)
	}
	return nil
}

func (s *SQLiteMenuStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable. Used by readiness checks.
func (s *SQLiteMenuStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// decodeMenu unmarshals a stored dictionary, migrating v1 dumps first. The
// kind column backfills dumps from before the kind field existed.
func decodeMenu(raw, kind string, version int) (menu.Renderable, error) {
	var dict map[string]any
	if err := json.Unmarshal([]byte(raw), &dict); err != nil {
		return nil, fmt.Errorf("failed to unmarshal menu data: %w", err)
	}
	if version < menu.DictVersion {
		dict = menu.ConvertV1ToV2(dict)
	}
	if _, ok := dict["kind"]; !ok {
		dict["kind"] = kind
	}
	return menu.FromDict(dict)
}
