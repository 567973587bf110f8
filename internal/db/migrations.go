package db

// step is one schema change. Versions are explicit so a reordered slice
// cannot renumber a step that has already shipped.
type step struct {
	version int
	name    string
	sql     string
}

var migrations = []step{
	{
		version: 1,
		name:    "create kv table",
		sql: `
			CREATE TABLE IF NOT EXISTS kv (
				key TEXT PRIMARY KEY,
				value BLOB NOT NULL,
				etag TEXT NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		version: 2,
		name:    "index kv keys by update time",
		sql:     `CREATE INDEX IF NOT EXISTS idx_kv_updated ON kv(updated_at)`,
	},
}
