package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.db")

	first, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	_ = first.Close()

	second, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB on existing file: %v", err)
	}
	defer second.Close()

	for _, table := range []string{"users", "recipes", "recipe_events"} {
		var name string
		err := second.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestInitDB_RejectsEmptyRecipeName(t *testing.T) {
	conn, err := InitDB(filepath.Join(t.TempDir(), "recipes.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	_, err = conn.Exec(`INSERT INTO recipes (id, name, difficulty, vegetarian, created_at, updated_at)
		VALUES ('x', '', 1, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatalf("expected CHECK constraint violation for empty name")
	}
}
