package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"bookmarked/internal/config"
	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.DocumentStore using SQLite. The whole document is
// written in one transaction, one row per node, ordered by parent and position.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Ensure Store implements DocumentStore
var _ ports.DocumentStore = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens or creates the database at path
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   config.ExpandHome(path),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL lets the CLI and MCP server read while another process writes
	db, err := sql.Open("sqlite3", s.path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS nodes (
			id INTEGER PRIMARY KEY,
			parent_id INTEGER REFERENCES nodes(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			open INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS node_meta (
			node_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (node_id, key)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id, position);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return s, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type row struct {
	id       int64
	parentID sql.NullInt64
	node     *domain.Node
}

// Load reads the stored document. An empty database yields an empty document.
func (s *Store) Load(ctx context.Context) (*domain.Document, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, kind, title, description, url, icon, open
		FROM nodes ORDER BY parent_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Node)
	var all []row
	var root *domain.Node
	for rows.Next() {
		var r row
		var kind string
		var open bool
		n := &domain.Node{}
		if err := rows.Scan(&r.id, &r.parentID, &kind, &n.Title, &n.Description, &n.URL, &n.Icon, &open); err != nil {
			return nil, err
		}
		k, ok := domain.ParseKind(kind)
		if !ok {
			return nil, fmt.Errorf("node %d: unknown kind %q", r.id, kind)
		}
		n.Kind, n.Open = k, open
		r.node = n
		byID[r.id] = n
		all = append(all, r)
		if !r.parentID.Valid {
			root = n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		s.logger.Debug("empty store", zap.String("path", s.path))
		return domain.NewDocument(), nil
	}

	// Rows arrive ordered by position within each parent
	for _, r := range all {
		if !r.parentID.Valid {
			continue
		}
		parent, ok := byID[r.parentID.Int64]
		if !ok || !parent.IsFolder() {
			return nil, fmt.Errorf("node %d: %w: bad parent %d", r.id, domain.ErrStructuralViolation, r.parentID.Int64)
		}
		parent.Children = append(parent.Children, r.node)
	}

	if err := s.loadMeta(ctx, byID); err != nil {
		return nil, err
	}

	doc := domain.NewDocumentFromRoot(root)
	c := doc.Count()
	s.logger.Info("loaded document",
		zap.String("path", s.path),
		zap.Int("folders", c.Folders),
		zap.Int("bookmarks", c.Bookmarks),
		zap.Duration("took", time.Since(start)),
	)
	return doc, nil
}

func (s *Store) loadMeta(ctx context.Context, byID map[int64]*domain.Node) error {
	rows, err := s.db.QueryContext(ctx, `SELECT node_id, key, value FROM node_meta`)
	if err != nil {
		return fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var key, value string
		if err := rows.Scan(&id, &key, &value); err != nil {
			return err
		}
		if n, ok := byID[id]; ok {
			n.SetMeta(key, value)
		}
	}
	return rows.Err()
}

// Save replaces the stored document in a single transaction
func (s *Store) Save(ctx context.Context, doc *domain.Document) (err error) {
	start := time.Now()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.rollback()
		}
	}()

	if err := tx.clear(); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	var nextID int64 = 1
	var insert func(n *domain.Node, parent sql.NullInt64, pos int) error
	insert = func(n *domain.Node, parent sql.NullInt64, pos int) error {
		id := nextID
		nextID++
		if err := tx.insertNode(id, parent, pos, n); err != nil {
			return err
		}
		for k, v := range n.Meta {
			if err := tx.insertMeta(id, k, v); err != nil {
				return err
			}
		}
		for i, c := range n.Children {
			if err := insert(c, sql.NullInt64{Int64: id, Valid: true}, i); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(doc.Root(), sql.NullInt64{}, 0); err != nil {
		return fmt.Errorf("failed to write nodes: %w", err)
	}
	if err := tx.setMeta("saved_at", strconv.FormatInt(time.Now().UnixNano(), 10)); err != nil {
		return err
	}

	if err := tx.commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	s.logger.Info("saved document",
		zap.String("path", s.path),
		zap.Int64("nodes", nextID-1),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// SavedAt returns the time of the last Save, or the zero time if none
func (s *Store) SavedAt(ctx context.Context) (time.Time, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'saved_at'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	ns, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad saved_at %q: %w", v, err)
	}
	return time.Unix(0, ns), nil
}
