package testutil

import (
	"path/filepath"
	"testing"

	"github.com/notepid/roomielink/internal/db"
	"github.com/notepid/roomielink/internal/storage"
)

// OpenDB opens a migrated SQLite database in a temporary directory.
func OpenDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "roomielink.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// NewStore returns a CBOR store over a fresh database.
func NewStore(t *testing.T) *storage.Store {
	t.Helper()
	return NewStoreOn(t, OpenDB(t))
}

// NewStoreOn returns a store over an existing database, so that tests can
// simulate a second tab or a reload against the same data.
func NewStoreOn(t *testing.T, d *db.DB) *storage.Store {
	t.Helper()
	s, err := storage.New(d.DB, storage.Options{Prefix: "roomielink_", Codec: "cbor"})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}
