package graph

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"zettel/internal/logging"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the sqlite-backed link index. A single connection with WAL keeps
// the scanner and the query commands from tripping over each other.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the sqlite database at the given path. Use ":memory:"
// for tests.
func Open(path string) (*Store, error) {
	log := logging.Get(logging.CategoryGraph)

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debugf("failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debugf("failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Debugf("failed to enable sqlite foreign_keys: %v", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	log.Debugf("store open at %s", path)
	return s, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	nodesTable := `
	CREATE TABLE IF NOT EXISTS nodes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		file TEXT NOT NULL,
		pos INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_nodes_file ON nodes(file);
	CREATE INDEX IF NOT EXISTS idx_nodes_title ON nodes(title);
	`

	refsTable := `
	CREATE TABLE IF NOT EXISTS refs (
		key TEXT NOT NULL,
		node_id TEXT NOT NULL,
		UNIQUE(key, node_id)
	);
	CREATE INDEX IF NOT EXISTS idx_refs_node ON refs(node_id);
	`

	linksTable := `
	CREATE TABLE IF NOT EXISTS links (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		dest TEXT NOT NULL,
		type TEXT NOT NULL,
		pos INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_links_source ON links(source);
	CREATE INDEX IF NOT EXISTS idx_links_dest ON links(dest);
	CREATE INDEX IF NOT EXISTS idx_links_type ON links(type);
	`

	filesTable := `
	CREATE TABLE IF NOT EXISTS files (
		path TEXT PRIMARY KEY,
		modtime INTEGER,
		hash TEXT
	);
	`

	for _, table := range []string{nodesTable, refsTable, linksTable, filesTable} {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	logging.Get(logging.CategoryGraph).Debugf("closing store at %s", s.dbPath)
	return s.db.Close()
}

// UpsertNode stores or replaces a node.
func (s *Store) UpsertNode(n Node) error {
	if n.ID == "" || n.File == "" {
		return fmt.Errorf("invalid node: id and file must be non-empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO nodes (id, title, file, pos) VALUES (?, ?, ?, ?)`,
		n.ID, n.Title, n.File, n.Pos,
	)
	if err != nil {
		logging.Get(logging.CategoryGraph).Errorf("failed to store node %s: %v", n.ID, err)
		return err
	}
	return nil
}

// UpsertRef stores a reference key for a node.
func (s *Store) UpsertRef(r Ref) error {
	if r.Key == "" || r.NodeID == "" {
		return fmt.Errorf("invalid ref: key and node id must be non-empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO refs (key, node_id) VALUES (?, ?)`,
		r.Key, r.NodeID,
	)
	return err
}

// ReplaceLinks replaces all outgoing links of a source node in one
// transaction, keeping the index consistent with a rescan of that file.
func (s *Store) ReplaceLinks(sourceID string, links []Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM links WHERE source = ?`, sourceID); err != nil {
		return err
	}
	for _, l := range links {
		if _, err := tx.Exec(
			`INSERT INTO links (source, dest, type, pos) VALUES (?, ?, ?, ?)`,
			sourceID, l.DestID, l.Type, l.Pos,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// NodeByID returns the node with the given identifier, or nil.
func (s *Store) NodeByID(id string) (*Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT id, title, file, pos FROM nodes WHERE id = ?`, id)
	return scanNode(row)
}

// NodeByFile returns the file-level node backing the given path, or nil.
// The file-level node is the one with the smallest position in the file.
func (s *Store) NodeByFile(path string) (*Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, title, file, pos FROM nodes WHERE file = ? ORDER BY pos LIMIT 1`, path)
	return scanNode(row)
}

func scanNode(row *sql.Row) (*Node, error) {
	var n Node
	if err := row.Scan(&n.ID, &n.Title, &n.File, &n.Pos); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// Nodes returns all nodes ordered by title.
func (s *Store) Nodes() ([]Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, title, file, pos FROM nodes ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		var n Node
		if err := rows.Scan(&n.ID, &n.Title, &n.File, &n.Pos); err != nil {
			logging.Get(logging.CategoryGraph).Warnf("node row scan failed: %v", err)
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// Refs returns all reference keys with their owning nodes, ordered by key.
func (s *Store) Refs() ([]Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT key, node_id FROM refs ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []Ref
	for rows.Next() {
		var r Ref
		if err := rows.Scan(&r.Key, &r.NodeID); err != nil {
			continue
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// Files returns all known note file paths, ordered.
func (s *Store) Files() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT path FROM files ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			continue
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// LinksInto returns all links whose destination is the given node, restricted
// to the given type.
func (s *Store) LinksInto(destID, typ string) ([]Link, error) {
	return s.queryLinks(`SELECT source, dest, type, pos FROM links WHERE dest = ? AND type = ?`, destID, typ)
}

// LinksFrom returns all links whose source is the given node, restricted to
// the given type.
func (s *Store) LinksFrom(sourceID, typ string) ([]Link, error) {
	return s.queryLinks(`SELECT source, dest, type, pos FROM links WHERE source = ? AND type = ?`, sourceID, typ)
}

func (s *Store) queryLinks(query string, args ...interface{}) ([]Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		logging.Get(logging.CategoryGraph).Errorf("link query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.SourceID, &l.DestID, &l.Type, &l.Pos); err != nil {
			logging.Get(logging.CategoryGraph).Warnf("link row scan failed: %v", err)
			continue
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// BacklinkSources returns the distinct source node ids linking into destID
// with the given link type. Returns ErrNoResults when there are none.
func (s *Store) BacklinkSources(destID, typ string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT DISTINCT source FROM links WHERE dest = ? AND type = ? ORDER BY source`,
		destID, typ,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		sources = append(sources, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, ErrNoResults
	}
	return sources, nil
}

// UpsertFile records scan state for a file.
func (s *Store) UpsertFile(f FileInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO files (path, modtime, hash) VALUES (?, ?, ?)`,
		f.Path, f.ModTime, f.Hash,
	)
	return err
}

// FileUnchanged reports whether the recorded state for path matches.
func (s *Store) FileUnchanged(f FileInfo) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var modtime int64
	var hash string
	err := s.db.QueryRow(`SELECT modtime, hash FROM files WHERE path = ?`, f.Path).
		Scan(&modtime, &hash)
	if err != nil {
		return false
	}
	return modtime == f.ModTime && hash == f.Hash
}

// DeleteFile removes a file and everything indexed from it.
func (s *Store) DeleteFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT id FROM nodes WHERE file = ?`, path)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err == nil {
			ids = append(ids, id)
		}
	}
	rows.Close()

	for _, id := range ids {
		if _, err := tx.Exec(`DELETE FROM links WHERE source = ?`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM refs WHERE node_id = ?`, id); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM nodes WHERE file = ?`, path); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM files WHERE path = ?`, path); err != nil {
		return err
	}
	return tx.Commit()
}

// Stats returns row counts per table.
func (s *Store) Stats() (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]int64)
	for _, table := range []string{"nodes", "refs", "links", "files"} {
		var count int64
		err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
		if err != nil {
			continue
		}
		stats[table] = count
	}
	return stats, nil
}
