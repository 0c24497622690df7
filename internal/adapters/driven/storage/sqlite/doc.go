// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - SiteStore: Monitored site persistence
//   - ScanStore: Scan run persistence
//   - FindingStore: Finding history persistence
//   - SchedulerStore: Scheduled task and result persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Findings carry a UNIQUE(site_id, fingerprint) constraint
// so one issue keeps a single row across scans.
//
// # Data Location
//
// By default, the database is stored at ~/.allylab/data/allylab.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
