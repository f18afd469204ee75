// Package index persists flattened outlines for a workspace so declarations
// can be looked up by name without re-parsing every file.
package index

import (
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lexcodex/outlinify/outline"
)

// FileRecord is the per-file bookkeeping row.
type FileRecord struct {
	ID          string
	Path        string
	ContentHash string
	DefCount    int
	IndexedAt   time.Time
}

// DefRecord is one indexed declaration: a flattened outline entry plus the
// file it came from.
type DefRecord struct {
	FileID    string
	Path      string
	Name      string
	Kind      string
	Line      int
	CharStart int
	CharEnd   int
}

// Query narrows a search over indexed declarations.
type Query struct {
	NamePattern string
	Kind        string
	Limit       int
}

// Stats summarizes the index contents.
type Stats struct {
	TotalFiles int
	TotalDefs  int
	ByKind     map[string]int
}

// Store persists outline data in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL UNIQUE,
		content_hash TEXT,
		def_count INTEGER,
		indexed_at TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS defs (
		file_id TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		line INTEGER,
		char_start INTEGER,
		char_end INTEGER,
		FOREIGN KEY(file_id) REFERENCES files(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_defs_name ON defs(name);
	CREATE INDEX IF NOT EXISTS idx_defs_file ON defs(file_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// FileID produces a stable identifier for a file path.
func FileID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return fmt.Sprintf("file:%x", sum[:8])
}

// HashContent returns a short hash for change detection.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", sum[:])
}

// SaveOutline replaces the stored entries for one file in a single
// transaction.
func (s *Store) SaveOutline(path, contentHash string, entries []outline.Entry) error {
	if path == "" {
		return errors.New("path required")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fileID := FileID(path)
	_, err = tx.Exec(`
	INSERT INTO files (id, path, content_hash, def_count, indexed_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		path=excluded.path,
		content_hash=excluded.content_hash,
		def_count=excluded.def_count,
		indexed_at=excluded.indexed_at
	`, fileID, path, contentHash, len(entries), time.Now().UTC())
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM defs WHERE file_id = ?", fileID); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
	INSERT INTO defs (file_id, name, kind, line, char_start, char_end)
	VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(fileID, e.Name, e.Kind, e.Pos.Line, e.Pos.CharStart, e.Pos.CharEnd); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetFileByPath fetches the bookkeeping row for a path, or nil when the file
// has never been indexed.
func (s *Store) GetFileByPath(path string) (*FileRecord, error) {
	row := s.db.QueryRow(`
	SELECT id, path, content_hash, def_count, indexed_at
	FROM files WHERE path = ?`, path)
	var rec FileRecord
	err := row.Scan(&rec.ID, &rec.Path, &rec.ContentHash, &rec.DefCount, &rec.IndexedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RemoveFile drops a file and its entries.
func (s *Store) RemoveFile(path string) error {
	_, err := s.db.Exec("DELETE FROM files WHERE path = ?", path)
	return err
}

// Search returns declarations whose qualified name matches the query's
// pattern (SQL LIKE, % wildcards added around it), optionally filtered by
// kind label, ordered by path then line.
func (s *Store) Search(q Query) ([]DefRecord, error) {
	sqlQuery := `
	SELECT d.file_id, f.path, d.name, d.kind, d.line, d.char_start, d.char_end
	FROM defs d JOIN files f ON f.id = d.file_id
	WHERE d.name LIKE ?`
	args := []any{"%" + q.NamePattern + "%"}
	if q.Kind != "" {
		sqlQuery += " AND d.kind = ?"
		args = append(args, q.Kind)
	}
	sqlQuery += " ORDER BY f.path, d.line"
	if q.Limit > 0 {
		sqlQuery += " LIMIT ?"
		args = append(args, q.Limit)
	}
	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DefRecord
	for rows.Next() {
		var rec DefRecord
		if err := rows.Scan(&rec.FileID, &rec.Path, &rec.Name, &rec.Kind,
			&rec.Line, &rec.CharStart, &rec.CharEnd); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetStats reports index totals.
func (s *Store) GetStats() (Stats, error) {
	stats := Stats{ByKind: make(map[string]int)}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM files").Scan(&stats.TotalFiles); err != nil {
		return stats, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM defs").Scan(&stats.TotalDefs); err != nil {
		return stats, err
	}
	rows, err := s.db.Query("SELECT kind, COUNT(*) FROM defs GROUP BY kind")
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return stats, err
		}
		stats.ByKind[kind] = count
	}
	return stats, rows.Err()
}
