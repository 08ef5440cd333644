package sqlite

const (
	schemaVersion = "1"
	formatName    = "scenelink"
)

// Pragmas + schema in a single batch (reduces round-trips). The root
// node always has id 0 and a NULL parent.
const schemaSQL = `
	PRAGMA synchronous = NORMAL;
	PRAGMA temp_store = MEMORY;

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS nodes (
		id INTEGER PRIMARY KEY,
		parent INTEGER REFERENCES nodes(id),
		name TEXT NOT NULL,
		UNIQUE (parent, name)
	);
	CREATE TABLE IF NOT EXISTS samples (
		node INTEGER NOT NULL REFERENCES nodes(id),
		channel TEXT NOT NULL,
		idx INTEGER NOT NULL,
		time REAL NOT NULL,
		compression INTEGER NOT NULL,
		size INTEGER NOT NULL,
		payload BLOB NOT NULL,
		PRIMARY KEY (node, channel, idx)
	);
	CREATE TABLE IF NOT EXISTS tags (
		node INTEGER NOT NULL REFERENCES nodes(id),
		tag TEXT NOT NULL,
		PRIMARY KEY (node, tag)
	);
`
