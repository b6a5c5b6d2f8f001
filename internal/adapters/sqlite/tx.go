package sqlite

import (
	"context"
	"database/sql"

	"bookmarked/internal/domain"
)

// storeTx wraps the statements of one Save
type storeTx struct {
	tx *sql.Tx
}

func (s *Store) beginTx(ctx context.Context) (*storeTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx}, nil
}

// clear removes every node and its metadata
func (t *storeTx) clear() error {
	if _, err := t.tx.Exec(`DELETE FROM node_meta`); err != nil {
		return err
	}
	_, err := t.tx.Exec(`DELETE FROM nodes`)
	return err
}

// insertNode adds one node row
func (t *storeTx) insertNode(id int64, parent sql.NullInt64, pos int, n *domain.Node) error {
	_, err := t.tx.Exec(`
		INSERT INTO nodes (id, parent_id, position, kind, title, description, url, icon, open)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, parent, pos, n.Kind.String(), n.Title, n.Description, n.URL, n.Icon, n.Open)
	return err
}

// insertMeta adds one metadata entry
func (t *storeTx) insertMeta(id int64, key, value string) error {
	_, err := t.tx.Exec(`INSERT INTO node_meta (node_id, key, value) VALUES (?, ?, ?)`, id, key, value)
	return err
}

// setMeta records a store-level value
func (t *storeTx) setMeta(key, value string) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// commit commits the transaction
func (t *storeTx) commit() error {
	return t.tx.Commit()
}

// rollback aborts the transaction
func (t *storeTx) rollback() error {
	return t.tx.Rollback()
}
