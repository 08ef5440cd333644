package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"scenelink/internal/application"
	"scenelink/internal/codec"
	"scenelink/internal/domain"
	"scenelink/internal/logger"
)

// Extension is the file extension of plain scene files
const Extension = "scn"

// node is the in-memory index of one stored node. Payloads stay on disk.
type node struct {
	id       int64
	name     string
	path     domain.Path
	parent   *node
	children map[string]*node
	tags     []string
	channels map[domain.Channel][]float64
}

func newNode(id int64, name string, parent *node) *node {
	n := &node{
		id:       id,
		name:     name,
		parent:   parent,
		children: make(map[string]*node),
		channels: make(map[domain.Channel][]float64),
	}
	if parent == nil {
		n.path = domain.Path{}
	} else {
		n.path = parent.path.Child(name)
		parent.children[name] = n
	}
	return n
}

func (n *node) childNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (n *node) addTag(tag string) bool {
	if slices.Contains(n.tags, tag) {
		return false
	}
	n.tags = append(n.tags, tag)
	slices.Sort(n.tags)
	return true
}

// file is the state shared by every handle on one scene file
type file struct {
	path        string
	mode        domain.OpenMode
	compression codec.CompressionTag

	mu          sync.RWMutex
	db          *sql.DB
	tx          *sql.Tx
	root        *node
	nextID      int64
	digests     []codec.Hash
	contentHash string
	closed      bool
}

// Option configures a file opened for writing
type Option func(*file)

// WithCompression sets the compression of newly written payloads
func WithCompression(tag codec.CompressionTag) Option {
	return func(f *file) {
		f.compression = tag
	}
}

// Open opens a plain scene file. Write truncates any existing file;
// Read requires the file to exist. Append is not supported.
func Open(path string, mode domain.OpenMode, opts ...Option) (*Scene, error) {
	if mode.Has(domain.ModeAppend) {
		return nil, &application.ModeError{Op: "open " + path, Mode: mode}
	}

	f := &file{path: path, mode: mode, compression: codec.CompressionZstd}
	for _, opt := range opts {
		opt(f)
	}

	var err error
	switch mode {
	case domain.ModeRead:
		err = f.openRead()
	case domain.ModeWrite:
		err = f.openWrite()
	default:
		return nil, &application.ModeError{Op: "open " + path, Mode: mode}
	}
	if err != nil {
		return nil, err
	}

	return &Scene{f: f, n: f.root}, nil
}

func (f *file) openWrite() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return application.IOError("create scene directory", err)
	}
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return application.IOError("truncate scene file", err)
	}

	db, err := sql.Open("sqlite3", "file:"+f.path)
	if err != nil {
		return application.IOError("open scene file", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return application.IOError("setup scene file", err)
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return application.IOError("begin scene transaction", err)
	}
	if _, err := tx.Exec(`INSERT INTO nodes (id, parent, name) VALUES (0, NULL, '')`); err != nil {
		tx.Rollback()
		db.Close()
		return application.IOError("create root node", err)
	}

	f.db = db
	f.tx = tx
	f.root = newNode(0, "", nil)
	f.nextID = 1

	logger.Debug().Str("file", f.path).Str("compression", f.compression.String()).Msg("scene file created")
	return nil
}

func (f *file) openRead() error {
	if _, err := os.Stat(f.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &application.NotFoundError{What: "scene file", Name: f.path}
		}
		return application.IOError("stat scene file", err)
	}

	db, err := sql.Open("sqlite3", "file:"+f.path+"?mode=ro")
	if err != nil {
		return application.IOError("open scene file", err)
	}
	f.db = db

	if err := f.load(); err != nil {
		db.Close()
		return err
	}
	return nil
}

// load builds the in-memory node index from the file
func (f *file) load() error {
	meta := make(map[string]string)
	rows, err := f.db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		return fmt.Errorf("%s is not a scene file: %w", f.path, errors.Join(application.ErrInvalidData, err))
	}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			rows.Close()
			return application.IOError("read metadata", err)
		}
		meta[k] = v
	}
	rows.Close()

	if meta["format"] != formatName || meta["schema_version"] != schemaVersion {
		return fmt.Errorf("%s: unsupported format %q version %q: %w",
			f.path, meta["format"], meta["schema_version"], application.ErrInvalidData)
	}
	f.contentHash = meta["content_hash"]

	byID := make(map[int64]*node)
	rows, err = f.db.Query(`SELECT id, parent, name FROM nodes ORDER BY id`)
	if err != nil {
		return application.IOError("read nodes", err)
	}
	for rows.Next() {
		var (
			id     int64
			parent sql.NullInt64
			name   string
		)
		if err := rows.Scan(&id, &parent, &name); err != nil {
			rows.Close()
			return application.IOError("read nodes", err)
		}
		if !parent.Valid {
			f.root = newNode(id, "", nil)
			byID[id] = f.root
			continue
		}
		p, ok := byID[parent.Int64]
		if !ok {
			rows.Close()
			return fmt.Errorf("%s: node %d has unknown parent %d: %w", f.path, id, parent.Int64, application.ErrInvalidData)
		}
		byID[id] = newNode(id, name, p)
	}
	rows.Close()
	if f.root == nil {
		return fmt.Errorf("%s: missing root node: %w", f.path, application.ErrInvalidData)
	}

	rows, err = f.db.Query(`SELECT node, tag FROM tags`)
	if err != nil {
		return application.IOError("read tags", err)
	}
	for rows.Next() {
		var (
			id  int64
			tag string
		)
		if err := rows.Scan(&id, &tag); err != nil {
			rows.Close()
			return application.IOError("read tags", err)
		}
		if n, ok := byID[id]; ok {
			n.addTag(tag)
		}
	}
	rows.Close()

	rows, err = f.db.Query(`SELECT node, channel, time FROM samples ORDER BY node, channel, idx`)
	if err != nil {
		return application.IOError("read samples", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id      int64
			channel string
			t       float64
		)
		if err := rows.Scan(&id, &channel, &t); err != nil {
			return application.IOError("read samples", err)
		}
		if n, ok := byID[id]; ok {
			ch := domain.Channel(channel)
			n.channels[ch] = append(n.channels[ch], t)
		}
	}
	if err := rows.Err(); err != nil {
		return application.IOError("read samples", err)
	}

	logger.Debug().Str("file", f.path).Int("nodes", len(byID)).Msg("scene file opened")
	return nil
}

// check fails unless the file is open in the wanted mode
func (f *file) check(op string, want domain.OpenMode) error {
	f.mu.RLock()
	closed := f.closed
	f.mu.RUnlock()

	if closed {
		return &application.ModeError{Op: op + " on closed scene", Mode: f.mode}
	}
	if f.mode != want {
		return &application.ModeError{Op: op, Mode: f.mode}
	}
	return nil
}

// close finalizes a write file or releases a read file
func (f *file) close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	if f.mode == domain.ModeRead {
		return f.db.Close()
	}

	hash := f.computeContentHash()
	_, err := f.tx.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('format', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('content_hash', ?);
	`, formatName, schemaVersion, hash)
	if err != nil {
		f.tx.Rollback()
		f.db.Close()
		return application.IOError("write metadata", err)
	}
	if err := f.tx.Commit(); err != nil {
		f.db.Close()
		return application.IOError("commit scene file", err)
	}
	f.contentHash = hash

	logger.Debug().Str("file", f.path).Int64("nodes", f.nextID).Str("content_hash", hash).Msg("scene file finalized")
	return f.db.Close()
}

// computeContentHash digests nodes, tags and sample digests. Sorting
// makes the result independent of write order.
func (f *file) computeContentHash() string {
	var (
		paths []string
		tags  []string
	)
	var walk func(n *node)
	walk = func(n *node) {
		p := n.path.String()
		paths = append(paths, p)
		for _, tag := range n.tags {
			tags = append(tags, p+"\x00"+tag)
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(f.root)
	slices.Sort(paths)
	slices.Sort(tags)

	digests := slices.Clone(f.digests)
	slices.SortFunc(digests, func(a, b codec.Hash) int {
		return strings.Compare(string(a[:]), string(b[:]))
	})
	flat := make([][]byte, len(digests))
	for i := range digests {
		flat[i] = digests[i][:]
	}

	h, err := codec.HashValue(codec.ContentDomain, struct {
		Format  string   `cbor:"format"`
		Paths   []string `cbor:"paths"`
		Tags    []string `cbor:"tags"`
		Samples [][]byte `cbor:"samples"`
	}{formatName + "/" + schemaVersion, paths, tags, flat})
	if err != nil {
		// Encoding plain strings and byte slices cannot fail
		panic("sqlite: content hash encoding failed: " + err.Error())
	}
	return h.String()
}
