package db

const (
	// SchemaV1 creates the version table and the conversions table of the historydb component.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS epoch_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS conversions (
    id UUID PRIMARY KEY,
    input TEXT NOT NULL,
    raw INTEGER NOT NULL,
    unit VARCHAR(32) NOT NULL,
    seconds INTEGER NOT NULL,
    nanos INTEGER NOT NULL CHECK (nanos >= 0 AND nanos < 1000000000),
    created_at REAL DEFAULT (unixepoch('subsec'))
);

CREATE INDEX IF NOT EXISTS conversions_created_at_idx ON conversions (created_at);
`
)
