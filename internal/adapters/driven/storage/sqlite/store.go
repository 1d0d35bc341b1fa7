// Package sqlite provides the persistent SQLite-backed storage adapters.
// A single Store owns the database handle; the port implementations are
// wrapper types sharing it.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/crawlsync/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/crawlsync/internal/core/domain"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to all
// hierarchy store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.crawlsync/data/hierarchy.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".crawlsync", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "hierarchy.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// ConfigurationStore returns a ConfigurationStore interface backed by this store.
func (s *Store) ConfigurationStore() driven.ConfigurationStore {
	return &configurationStore{store: s}
}

// FolderStore returns a FolderStore interface backed by this store.
func (s *Store) FolderStore() driven.FolderStore {
	return &folderStore{store: s}
}

// PageStore returns a PageStore interface backed by this store.
func (s *Store) PageStore() driven.PageStore {
	return &pageStore{store: s}
}

// TableStore returns a TableStore interface backed by this store.
func (s *Store) TableStore() driven.TableStore {
	return &tableStore{store: s}
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
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Configuration Store ====================

// configurationStore implements driven.ConfigurationStore.
type configurationStore struct {
	store *Store
}

var _ driven.ConfigurationStore = (*configurationStore)(nil)

// Save stores or updates a connector's configuration.
func (s *configurationStore) Save(ctx context.Context, cfg domain.CrawlConfiguration) error {
	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	if cfg.UpdatedAt.IsZero() {
		cfg.UpdatedAt = now
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO configurations
			(connector_id, id, url, max_pages, depth, mode, frequency,
			 max_document_len, last_crawled_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(connector_id) DO UPDATE SET
			id = excluded.id,
			url = excluded.url,
			max_pages = excluded.max_pages,
			depth = excluded.depth,
			mode = excluded.mode,
			frequency = excluded.frequency,
			max_document_len = excluded.max_document_len,
			last_crawled_at = excluded.last_crawled_at,
			updated_at = excluded.updated_at
	`, cfg.ConnectorID, cfg.ID, cfg.URL, cfg.MaxPages, cfg.Depth, string(cfg.Mode), string(cfg.Frequency),
		cfg.MaxDocumentLen, nullTime(cfg.LastCrawledAt), cfg.CreatedAt, cfg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	return nil
}

// Get retrieves the configuration of a connector.
func (s *configurationStore) Get(ctx context.Context, connectorID string) (*domain.CrawlConfiguration, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT connector_id, id, url, max_pages, depth, mode, frequency,
		       max_document_len, last_crawled_at, created_at, updated_at
		FROM configurations WHERE connector_id = ?
	`, connectorID)

	var cfg domain.CrawlConfiguration
	var mode, frequency string
	var lastCrawledAt sql.NullTime
	if err := row.Scan(&cfg.ConnectorID, &cfg.ID, &cfg.URL, &cfg.MaxPages, &cfg.Depth,
		&mode, &frequency, &cfg.MaxDocumentLen, &lastCrawledAt, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning configuration: %w", err)
	}

	cfg.Mode = domain.CrawlMode(mode)
	cfg.Frequency = domain.CrawlFrequency(frequency)
	if lastCrawledAt.Valid {
		cfg.LastCrawledAt = &lastCrawledAt.Time
	}

	return &cfg, nil
}

// Delete removes the configuration of a connector.
func (s *configurationStore) Delete(ctx context.Context, connectorID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM configurations WHERE connector_id = ?", connectorID)
	if err != nil {
		return fmt.Errorf("deleting configuration: %w", err)
	}
	return nil
}

// ==================== Folder Store ====================

// folderStore implements driven.FolderStore.
type folderStore struct {
	store *Store
}

var _ driven.FolderStore = (*folderStore)(nil)

// Upsert stores or updates a folder.
func (s *folderStore) Upsert(ctx context.Context, folder domain.Folder) error {
	now := time.Now().UTC()
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}
	if folder.UpdatedAt.IsZero() {
		folder.UpdatedAt = now
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO folders
			(connector_id, configuration_id, url, internal_id, parent_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(connector_id, configuration_id, url) DO UPDATE SET
			internal_id = excluded.internal_id,
			parent_url = excluded.parent_url,
			updated_at = excluded.updated_at
	`, folder.ConnectorID, folder.ConfigurationID, folder.URL, folder.InternalID,
		nullString(folder.ParentURL), folder.CreatedAt, folder.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving folder: %w", err)
	}
	return nil
}

// Get retrieves a folder by its key.
func (s *folderStore) Get(ctx context.Context, connectorID, configurationID, url string) (*domain.Folder, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT connector_id, configuration_id, url, internal_id, parent_url, created_at, updated_at
		FROM folders WHERE connector_id = ? AND configuration_id = ? AND url = ?
	`, connectorID, configurationID, url)

	return scanFolderRow(row)
}

// GetByInternalID retrieves a folder by its stable internal id.
func (s *folderStore) GetByInternalID(ctx context.Context, connectorID, configurationID, internalID string) (*domain.Folder, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT connector_id, configuration_id, url, internal_id, parent_url, created_at, updated_at
		FROM folders WHERE connector_id = ? AND configuration_id = ? AND internal_id = ?
	`, connectorID, configurationID, internalID)

	return scanFolderRow(row)
}

// ListByParent returns folders whose parent URL matches exactly.
func (s *folderStore) ListByParent(ctx context.Context, connectorID, configurationID string, parentURL *string) ([]domain.Folder, error) {
	query := `
		SELECT connector_id, configuration_id, url, internal_id, parent_url, created_at, updated_at
		FROM folders WHERE connector_id = ? AND configuration_id = ?`
	args := []any{connectorID, configurationID}
	if parentURL == nil {
		query += " AND parent_url IS NULL"
	} else {
		query += " AND parent_url = ?"
		args = append(args, *parentURL)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	return scanFolders(rows)
}

// ListByConnector returns every folder of a connector.
func (s *folderStore) ListByConnector(ctx context.Context, connectorID string) ([]domain.Folder, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT connector_id, configuration_id, url, internal_id, parent_url, created_at, updated_at
		FROM folders WHERE connector_id = ?
	`, connectorID)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	return scanFolders(rows)
}

// DeleteByConnector removes every folder of a connector.
func (s *folderStore) DeleteByConnector(ctx context.Context, connectorID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM folders WHERE connector_id = ?", connectorID)
	if err != nil {
		return fmt.Errorf("deleting folders: %w", err)
	}
	return nil
}

// ==================== Page Store ====================

// pageStore implements driven.PageStore.
type pageStore struct {
	store *Store
}

var _ driven.PageStore = (*pageStore)(nil)

// Upsert stores or updates a page.
func (s *pageStore) Upsert(ctx context.Context, page domain.Page) error {
	now := time.Now().UTC()
	if page.CreatedAt.IsZero() {
		page.CreatedAt = now
	}
	if page.UpdatedAt.IsZero() {
		page.UpdatedAt = now
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pages
			(connector_id, configuration_id, url, document_id, parent_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(connector_id, configuration_id, url) DO UPDATE SET
			document_id = excluded.document_id,
			parent_url = excluded.parent_url,
			updated_at = excluded.updated_at
	`, page.ConnectorID, page.ConfigurationID, page.URL, nullString(page.DocumentID),
		nullString(page.ParentURL), page.CreatedAt, page.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving page: %w", err)
	}
	return nil
}

// Get retrieves a page by its key.
func (s *pageStore) Get(ctx context.Context, connectorID, configurationID, url string) (*domain.Page, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT connector_id, configuration_id, url, document_id, parent_url, created_at, updated_at
		FROM pages WHERE connector_id = ? AND configuration_id = ? AND url = ?
	`, connectorID, configurationID, url)

	var page domain.Page
	var documentID, parentURL sql.NullString
	if err := row.Scan(&page.ConnectorID, &page.ConfigurationID, &page.URL,
		&documentID, &parentURL, &page.CreatedAt, &page.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning page: %w", err)
	}

	if documentID.Valid {
		page.DocumentID = &documentID.String
	}
	if parentURL.Valid {
		page.ParentURL = &parentURL.String
	}
	return &page, nil
}

// ListByParent returns pages whose parent URL matches exactly.
func (s *pageStore) ListByParent(ctx context.Context, connectorID, configurationID string, parentURL *string) ([]domain.Page, error) {
	query := `
		SELECT connector_id, configuration_id, url, document_id, parent_url, created_at, updated_at
		FROM pages WHERE connector_id = ? AND configuration_id = ?`
	args := []any{connectorID, configurationID}
	if parentURL == nil {
		query += " AND parent_url IS NULL"
	} else {
		query += " AND parent_url = ?"
		args = append(args, *parentURL)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	return scanPages(rows)
}

// ListByConnector returns every page of a connector.
func (s *pageStore) ListByConnector(ctx context.Context, connectorID string) ([]domain.Page, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT connector_id, configuration_id, url, document_id, parent_url, created_at, updated_at
		FROM pages WHERE connector_id = ?
	`, connectorID)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	return scanPages(rows)
}

// DeleteByConnector removes every page of a connector.
func (s *pageStore) DeleteByConnector(ctx context.Context, connectorID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM pages WHERE connector_id = ?", connectorID)
	if err != nil {
		return fmt.Errorf("deleting pages: %w", err)
	}
	return nil
}

// ==================== Table Store ====================

// tableStore implements driven.TableStore.
type tableStore struct {
	store *Store
}

var _ driven.TableStore = (*tableStore)(nil)

// UpsertTable stores tabular content under its table id. Truncate mode
// replaces the stored CSV wholesale; otherwise new rows append.
func (s *tableStore) UpsertTable(ctx context.Context, upsert driven.TableUpsert) error {
	now := time.Now().UTC()

	var err error
	if upsert.Truncate {
		_, err = s.store.db.ExecContext(ctx, `
			INSERT INTO data_tables (table_id, name, description, csv, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(table_id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				csv = excluded.csv,
				updated_at = excluded.updated_at
		`, upsert.TableID, upsert.TableName, upsert.TableDescription, upsert.CSV, now)
	} else {
		_, err = s.store.db.ExecContext(ctx, `
			INSERT INTO data_tables (table_id, name, description, csv, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(table_id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				csv = data_tables.csv || excluded.csv,
				updated_at = excluded.updated_at
		`, upsert.TableID, upsert.TableName, upsert.TableDescription, upsert.CSV, now)
	}

	if err != nil {
		return fmt.Errorf("saving table: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanFolderRow scans a single folder row.
func scanFolderRow(row *sql.Row) (*domain.Folder, error) {
	var folder domain.Folder
	var parentURL sql.NullString
	if err := row.Scan(&folder.ConnectorID, &folder.ConfigurationID, &folder.URL,
		&folder.InternalID, &parentURL, &folder.CreatedAt, &folder.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning folder: %w", err)
	}
	if parentURL.Valid {
		folder.ParentURL = &parentURL.String
	}
	return &folder, nil
}

// scanFolders scans multiple folder rows.
func scanFolders(rows *sql.Rows) ([]domain.Folder, error) {
	var folders []domain.Folder //nolint:prealloc // size unknown from query
	for rows.Next() {
		var folder domain.Folder
		var parentURL sql.NullString
		if err := rows.Scan(&folder.ConnectorID, &folder.ConfigurationID, &folder.URL,
			&folder.InternalID, &parentURL, &folder.CreatedAt, &folder.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}
		if parentURL.Valid {
			folder.ParentURL = &parentURL.String
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating folders: %w", err)
	}
	return folders, nil
}

// scanPages scans multiple page rows.
func scanPages(rows *sql.Rows) ([]domain.Page, error) {
	var pages []domain.Page //nolint:prealloc // size unknown from query
	for rows.Next() {
		var page domain.Page
		var documentID, parentURL sql.NullString
		if err := rows.Scan(&page.ConnectorID, &page.ConfigurationID, &page.URL,
			&documentID, &parentURL, &page.CreatedAt, &page.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		if documentID.Valid {
			page.DocumentID = &documentID.String
		}
		if parentURL.Valid {
			page.ParentURL = &parentURL.String
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}

// nullString converts an optional string to its nullable SQL form.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullTime converts an optional time to its nullable SQL form.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
