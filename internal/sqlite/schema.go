package sqlite

// Schema DDL for the registry hive. Registry paths and value names are
// case-insensitive, so both compare with NOCASE.
const (
	createKeys = `CREATE TABLE IF NOT EXISTS registry_keys (
    path TEXT PRIMARY KEY COLLATE NOCASE,
    created_at TEXT NOT NULL
);`

	createValues = `CREATE TABLE IF NOT EXISTS registry_values (
    path TEXT NOT NULL COLLATE NOCASE,
    name TEXT NOT NULL COLLATE NOCASE,
    kind TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (path, name),
    FOREIGN KEY (path) REFERENCES registry_keys(path) ON DELETE CASCADE
);`
)

// Index DDL.
const (
	idxValuesPath = `CREATE INDEX IF NOT EXISTS idx_registry_values_path ON registry_values(path);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createKeys,
	createValues,
	idxValuesPath,
}

// Value kinds stored in registry_values.kind.
const (
	KindString = "string"
	KindDWORD  = "dword"
)
