package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/allylab/allylab-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.allylab/data/allylab.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".allylab", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "allylab.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// SiteStore returns a SiteStore interface backed by this store.
func (s *Store) SiteStore() driven.SiteStore {
	return &siteStore{store: s}
}

// ScanStore returns a ScanStore interface backed by this store.
func (s *Store) ScanStore() driven.ScanStore {
	return &scanStore{store: s}
}

// FindingStore returns a FindingStore interface backed by this store.
func (s *Store) FindingStore() driven.FindingStore {
	return &findingStore{store: s}
}

// SchedulerStore returns a SchedulerStore interface backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
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

// ==================== Site Store ====================

// siteStore implements driven.SiteStore.
type siteStore struct {
	store *Store
}

var _ driven.SiteStore = (*siteStore)(nil)

// Save stores or updates a site.
func (s *siteStore) Save(ctx context.Context, site *domain.Site) error {
	if site == nil || site.ID == "" {
		return domain.ErrInvalidInput
	}

	pagesJSON, err := json.Marshal(site.Pages)
	if err != nil {
		return fmt.Errorf("marshalling pages: %w", err)
	}

	now := time.Now().UTC()
	if site.CreatedAt.IsZero() {
		site.CreatedAt = now
	}
	site.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sites (id, name, url, project_dir, pages, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			url = excluded.url,
			project_dir = excluded.project_dir,
			pages = excluded.pages,
			updated_at = excluded.updated_at
	`, site.ID, site.Name, site.URL, site.ProjectDir, string(pagesJSON),
		site.CreatedAt, site.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving site: %w", err)
	}
	return nil
}

// Get retrieves a site by ID.
func (s *siteStore) Get(ctx context.Context, id string) (*domain.Site, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, url, project_dir, pages, created_at, updated_at
		FROM sites WHERE id = ?
	`, id)

	var site domain.Site
	var pagesJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&site.ID, &site.Name, &site.URL, &site.ProjectDir,
		&pagesJSON, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning site: %w", err)
	}

	if err := json.Unmarshal([]byte(pagesJSON), &site.Pages); err != nil {
		return nil, fmt.Errorf("unmarshaling pages: %w", err)
	}

	if createdAt.Valid {
		site.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		site.UpdatedAt = updatedAt.Time
	}

	return &site, nil
}

// List returns all registered sites.
func (s *siteStore) List(ctx context.Context) ([]domain.Site, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, url, project_dir, pages, created_at, updated_at
		FROM sites ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sites: %w", err)
	}
	defer rows.Close()

	var sites []domain.Site //nolint:prealloc // size unknown from query
	for rows.Next() {
		var site domain.Site
		var pagesJSON string
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&site.ID, &site.Name, &site.URL, &site.ProjectDir,
			&pagesJSON, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning site: %w", err)
		}

		if err := json.Unmarshal([]byte(pagesJSON), &site.Pages); err != nil {
			return nil, fmt.Errorf("unmarshaling pages: %w", err)
		}

		if createdAt.Valid {
			site.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			site.UpdatedAt = updatedAt.Time
		}
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sites: %w", err)
	}

	return sites, nil
}

// Delete removes a site. Scans and findings cascade.
func (s *siteStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting site: %w", err)
	}
	return nil
}

// ==================== Scan Store ====================

// scanStore implements driven.ScanStore.
type scanStore struct {
	store *Store
}

var _ driven.ScanStore = (*scanStore)(nil)

// Save stores a completed scan.
func (s *scanStore) Save(ctx context.Context, scan *domain.Scan) error {
	if scan == nil || scan.ID == "" {
		return domain.ErrInvalidInput
	}

	summaryJSON, err := json.Marshal(scan.Summary)
	if err != nil {
		return fmt.Errorf("marshalling summary: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO scans (id, site_id, page_url, engine, started_at, completed_at, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			site_id = excluded.site_id,
			page_url = excluded.page_url,
			engine = excluded.engine,
			started_at = excluded.started_at,
			completed_at = excluded.completed_at,
			summary = excluded.summary
	`, scan.ID, scan.SiteID, scan.PageURL, scan.Engine,
		scan.StartedAt, scan.CompletedAt, string(summaryJSON))

	if err != nil {
		return fmt.Errorf("saving scan: %w", err)
	}
	return nil
}

// Get retrieves a scan by ID.
func (s *scanStore) Get(ctx context.Context, id string) (*domain.Scan, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, site_id, page_url, engine, started_at, completed_at, summary
		FROM scans WHERE id = ?
	`, id)

	return scanScanRow(row)
}

// Latest returns the most recent scan for a site page.
func (s *scanStore) Latest(ctx context.Context, siteID, pageURL string) (*domain.Scan, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, site_id, page_url, engine, started_at, completed_at, summary
		FROM scans WHERE site_id = ? AND page_url = ?
		ORDER BY started_at DESC LIMIT 1
	`, siteID, pageURL)

	return scanScanRow(row)
}

// List returns scans for a site, most recent first.
func (s *scanStore) List(ctx context.Context, siteID string, limit int) ([]domain.Scan, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, site_id, page_url, engine, started_at, completed_at, summary
		FROM scans WHERE site_id = ?
		ORDER BY started_at DESC LIMIT ?
	`, siteID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	var scans []domain.Scan //nolint:prealloc // size unknown from query
	for rows.Next() {
		scan, err := scanScanRows(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *scan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scans: %w", err)
	}

	return scans, nil
}

// ==================== Finding Store ====================

// findingStore implements driven.FindingStore.
type findingStore struct {
	store *Store
}

var _ driven.FindingStore = (*findingStore)(nil)

// Save stores or updates a finding.
func (s *findingStore) Save(ctx context.Context, f *domain.Finding) error {
	if f == nil || f.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO findings (id, scan_id, site_id, rule, impact, description, help_url,
			selector, html, text_content, fingerprint, status, issue_url, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			scan_id = excluded.scan_id,
			rule = excluded.rule,
			impact = excluded.impact,
			description = excluded.description,
			help_url = excluded.help_url,
			selector = excluded.selector,
			html = excluded.html,
			text_content = excluded.text_content,
			status = excluded.status,
			issue_url = excluded.issue_url,
			last_seen = excluded.last_seen
	`, f.ID, f.ScanID, f.SiteID, f.Rule, string(f.Impact), f.Description, f.HelpURL,
		f.Selector, f.HTML, f.TextContent, f.Fingerprint, string(f.Status),
		f.IssueURL, f.FirstSeen, f.LastSeen)

	if err != nil {
		return fmt.Errorf("saving finding: %w", err)
	}
	return nil
}

// Get retrieves a finding by ID.
func (s *findingStore) Get(ctx context.Context, id string) (*domain.Finding, error) {
	row := s.store.db.QueryRowContext(ctx,
		findingSelect+" WHERE id = ?", id)

	return scanFindingRow(row)
}

// GetByFingerprint retrieves a site's finding by fingerprint.
func (s *findingStore) GetByFingerprint(ctx context.Context, siteID, fingerprint string) (*domain.Finding, error) {
	row := s.store.db.QueryRowContext(ctx,
		findingSelect+" WHERE site_id = ? AND fingerprint = ?", siteID, fingerprint)

	return scanFindingRow(row)
}

// List returns findings matching the filter, most recently seen first.
func (s *findingStore) List(ctx context.Context, filter driven.FindingFilter) ([]domain.Finding, error) {
	query := findingSelect
	var conditions []string
	var args []any

	if filter.SiteID != "" {
		conditions = append(conditions, "site_id = ?")
		args = append(args, filter.SiteID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Impact != "" {
		conditions = append(conditions, "impact = ?")
		args = append(args, string(filter.Impact))
	}
	if filter.Rule != "" {
		conditions = append(conditions, "rule = ?")
		args = append(args, filter.Rule)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY last_seen DESC"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying findings: %w", err)
	}
	defer rows.Close()

	var findings []domain.Finding //nolint:prealloc // size unknown from query
	for rows.Next() {
		f, err := scanFindingRows(rows)
		if err != nil {
			return nil, err
		}
		findings = append(findings, *f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating findings: %w", err)
	}

	return findings, nil
}

// Delete removes a finding.
func (s *findingStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM findings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting finding: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// findingSelect is the shared column list for finding queries.
const findingSelect = `
	SELECT id, scan_id, site_id, rule, impact, description, help_url,
		selector, html, text_content, fingerprint, status, issue_url, first_seen, last_seen
	FROM findings`

// scanScanRow scans a single scan row.
func scanScanRow(row *sql.Row) (*domain.Scan, error) {
	var scan domain.Scan
	var summaryJSON string
	var startedAt, completedAt sql.NullTime

	if err := row.Scan(&scan.ID, &scan.SiteID, &scan.PageURL, &scan.Engine,
		&startedAt, &completedAt, &summaryJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning scan: %w", err)
	}

	if err := json.Unmarshal([]byte(summaryJSON), &scan.Summary); err != nil {
		return nil, fmt.Errorf("unmarshaling summary: %w", err)
	}

	if startedAt.Valid {
		scan.StartedAt = startedAt.Time
	}
	if completedAt.Valid {
		scan.CompletedAt = completedAt.Time
	}

	return &scan, nil
}

// scanScanRows scans a scan from *sql.Rows.
func scanScanRows(rows *sql.Rows) (*domain.Scan, error) {
	var scan domain.Scan
	var summaryJSON string
	var startedAt, completedAt sql.NullTime

	if err := rows.Scan(&scan.ID, &scan.SiteID, &scan.PageURL, &scan.Engine,
		&startedAt, &completedAt, &summaryJSON); err != nil {
		return nil, fmt.Errorf("scanning scan: %w", err)
	}

	if err := json.Unmarshal([]byte(summaryJSON), &scan.Summary); err != nil {
		return nil, fmt.Errorf("unmarshaling summary: %w", err)
	}

	if startedAt.Valid {
		scan.StartedAt = startedAt.Time
	}
	if completedAt.Valid {
		scan.CompletedAt = completedAt.Time
	}

	return &scan, nil
}

// scanFindingRow scans a single finding row.
func scanFindingRow(row *sql.Row) (*domain.Finding, error) {
	var f domain.Finding
	var impact, status string
	var firstSeen, lastSeen sql.NullTime

	if err := row.Scan(&f.ID, &f.ScanID, &f.SiteID, &f.Rule, &impact,
		&f.Description, &f.HelpURL, &f.Selector, &f.HTML, &f.TextContent,
		&f.Fingerprint, &status, &f.IssueURL, &firstSeen, &lastSeen); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning finding: %w", err)
	}

	f.Impact = domain.Impact(impact)
	f.Status = domain.FindingStatus(status)
	if firstSeen.Valid {
		f.FirstSeen = firstSeen.Time
	}
	if lastSeen.Valid {
		f.LastSeen = lastSeen.Time
	}

	return &f, nil
}

// scanFindingRows scans a finding from *sql.Rows.
func scanFindingRows(rows *sql.Rows) (*domain.Finding, error) {
	var f domain.Finding
	var impact, status string
	var firstSeen, lastSeen sql.NullTime

	if err := rows.Scan(&f.ID, &f.ScanID, &f.SiteID, &f.Rule, &impact,
		&f.Description, &f.HelpURL, &f.Selector, &f.HTML, &f.TextContent,
		&f.Fingerprint, &status, &f.IssueURL, &firstSeen, &lastSeen); err != nil {
		return nil, fmt.Errorf("scanning finding: %w", err)
	}

	f.Impact = domain.Impact(impact)
	f.Status = domain.FindingStatus(status)
	if firstSeen.Valid {
		f.FirstSeen = firstSeen.Time
	}
	if lastSeen.Valid {
		f.LastSeen = lastSeen.Time
	}

	return &f, nil
}
