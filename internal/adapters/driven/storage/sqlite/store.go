// Package sqlite provides a SQLite implementation of the artifact
// store, for sites whose deploy pipeline prefers one queryable database
// file over a JSON blob.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/h3x49r4m/peta-search/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/h3x49r4m/peta-search/internal/core/domain"
	"github.com/h3x49r4m/peta-search/internal/core/ports/driven"
	"github.com/h3x49r4m/peta-search/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// Posting kinds, one per inverted index.
const (
	kindTerms        = "terms"
	kindTags         = "tags"
	kindContentTypes = "content_types"
)

// Store persists one artifact in a SQLite database. A save replaces
// the previous artifact inside a single transaction, so a concurrent
// loader sees the old artifact in full or the new one in full.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at path and runs migrations.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save replaces the stored artifact.
func (s *Store) Save(ctx context.Context, artifact *domain.SearchArtifact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"documents", "postings", "metadata"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertDocuments(ctx, tx, artifact.Documents); err != nil {
		return err
	}
	if err := insertPostings(ctx, tx, kindTerms, artifact.Terms); err != nil {
		return err
	}
	if err := insertPostings(ctx, tx, kindTags, artifact.Tags); err != nil {
		return err
	}
	if err := insertPostings(ctx, tx, kindContentTypes, artifact.ContentTypes); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO metadata (id, version, build_timestamp, total_documents, total_terms, avg_document_length)
		VALUES (1, ?, ?, ?, ?, ?)`,
		artifact.Metadata.Version,
		artifact.Metadata.BuildTimestamp.Format(time.RFC3339Nano),
		artifact.Metadata.TotalDocuments,
		artifact.Metadata.TotalTerms,
		artifact.Metadata.AvgDocumentLength,
	)
	if err != nil {
		return fmt.Errorf("saving metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}

	logger.Info("Artifact saved to %s: %d documents", s.path, len(artifact.Documents))
	return nil
}

// Load reads the stored artifact back into memory.
func (s *Store) Load(ctx context.Context) (*domain.SearchArtifact, error) {
	artifact := &domain.SearchArtifact{
		Terms:        make(map[string][]int),
		Tags:         make(map[string][]int),
		ContentTypes: make(map[string][]int),
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT version, build_timestamp, total_documents, total_terms, avg_document_length
		FROM metadata WHERE id = 1`)

	var ts string
	err := row.Scan(
		&artifact.Metadata.Version,
		&ts,
		&artifact.Metadata.TotalDocuments,
		&artifact.Metadata.TotalTerms,
		&artifact.Metadata.AvgDocumentLength,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no artifact stored in %s", s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}
	artifact.Metadata.BuildTimestamp, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parsing build timestamp: %w: %v", domain.ErrArtifactInvalid, err)
	}

	if err := s.loadDocuments(ctx, artifact); err != nil {
		return nil, err
	}
	if err := s.loadPostings(ctx, artifact); err != nil {
		return nil, err
	}

	return artifact, nil
}

func insertDocuments(ctx context.Context, tx *sql.Tx, docs []domain.SearchDocument) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (doc_index, id, title, excerpt, url, content_type, tags, date, author, content, word_count, reading_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing document insert: %w", err)
	}
	defer stmt.Close()

	for i := range docs {
		doc := &docs[i]
		tags, err := json.Marshal(doc.Tags)
		if err != nil {
			return fmt.Errorf("encoding tags for %s: %w", doc.ID, err)
		}

		_, err = stmt.ExecContext(ctx, i, doc.ID, doc.Title, doc.Excerpt, doc.URL,
			doc.ContentType.String(), string(tags), doc.Date.Format(time.RFC3339Nano),
			doc.Author, doc.Content, doc.WordCount, doc.ReadingTime)
		if err != nil {
			return fmt.Errorf("saving document %s: %w", doc.ID, err)
		}
	}
	return nil
}

func insertPostings(ctx context.Context, tx *sql.Tx, kind string, postings map[string][]int) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO postings (kind, key, doc_index, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing posting insert: %w", err)
	}
	defer stmt.Close()

	for key, indices := range postings {
		for pos, docIndex := range indices {
			if _, err := stmt.ExecContext(ctx, kind, key, docIndex, pos); err != nil {
				return fmt.Errorf("saving %s posting %q: %w", kind, key, err)
			}
		}
	}
	return nil
}

func (s *Store) loadDocuments(ctx context.Context, artifact *domain.SearchArtifact) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, excerpt, url, content_type, tags, date, author, content, word_count, reading_time
		FROM documents ORDER BY doc_index`)
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc domain.SearchDocument
		var ct, tags, date string

		err := rows.Scan(&doc.ID, &doc.Title, &doc.Excerpt, &doc.URL, &ct, &tags,
			&date, &doc.Author, &doc.Content, &doc.WordCount, &doc.ReadingTime)
		if err != nil {
			return fmt.Errorf("scanning document: %w", err)
		}

		doc.ContentType = domain.ContentType(ct)
		if err := json.Unmarshal([]byte(tags), &doc.Tags); err != nil {
			return fmt.Errorf("decoding tags for %s: %w: %v", doc.ID, domain.ErrArtifactInvalid, err)
		}
		doc.Date, err = time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return fmt.Errorf("parsing date for %s: %w: %v", doc.ID, domain.ErrArtifactInvalid, err)
		}

		artifact.Documents = append(artifact.Documents, doc)
	}
	return rows.Err()
}

func (s *Store) loadPostings(ctx context.Context, artifact *domain.SearchArtifact) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, key, doc_index FROM postings ORDER BY kind, key, position`)
	if err != nil {
		return fmt.Errorf("loading postings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, key string
		var docIndex int
		if err := rows.Scan(&kind, &key, &docIndex); err != nil {
			return fmt.Errorf("scanning posting: %w", err)
		}

		switch kind {
		case kindTerms:
			artifact.Terms[key] = append(artifact.Terms[key], docIndex)
		case kindTags:
			artifact.Tags[key] = append(artifact.Tags[key], docIndex)
		case kindContentTypes:
			artifact.ContentTypes[key] = append(artifact.ContentTypes[key], docIndex)
		default:
			return fmt.Errorf("unknown posting kind %q: %w", kind, domain.ErrArtifactInvalid)
		}
	}
	return rows.Err()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for i, name := range upFiles {
		version := i + 1
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}

		logger.Debug("Applied migration %s", name)
	}

	return nil
}
