// Package store owns the single-file SQLite database backing every entity.
//
// The working copy lives in an in-memory SQLite database. Load copies the
// file into memory at boot and every successful Mutate rewrites the whole
// file, so the file on disk always reflects the last committed write.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/frahmantamala/workforce-portal/internal"
	"github.com/frahmantamala/workforce-portal/internal/store/migrations"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Tables lists the persisted tables in dependency order.
var Tables = []string{"users", "employees", "attendance", "timelogs"}

// ErrNotReady is returned by every operation before a successful Load.
var ErrNotReady = internal.ErrStoreNotReady

type Stats struct {
	Path            string
	Ready           bool
	PersistCount    int64
	LastPersistedAt time.Time
}

type Store struct {
	path   string
	logger *slog.Logger

	// mu serialises writers: transaction and file rewrite happen under it.
	mu  sync.Mutex
	db  *gorm.DB
	raw *sqlx.DB

	ready        atomic.Bool
	persistCount atomic.Int64
	lastPersist  atomic.Int64
}

// New returns an unloaded store for path. An empty path keeps the data in memory only.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger.With("component", "store")}
}

// OpenMemory returns a loaded store that never touches the filesystem.
func OpenMemory(ctx context.Context, logger *slog.Logger) (*Store, error) {
	s := New("", logger)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load builds the in-memory database, applies the schema and restores the
// file contents when the file exists. A missing file is created.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready.Load() {
		return nil
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("open memory database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql handle: %w", err)
	}
	// every connection to ":memory:" is a separate database, so keep exactly one.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("migrate memory database: %w", err)
	}

	s.db = db
	s.raw = sqlx.NewDb(sqlDB, "sqlite3")

	if s.path != "" {
		if _, statErr := os.Stat(s.path); statErr == nil {
			if err := s.restore(ctx); err != nil {
				_ = sqlDB.Close()
				s.db, s.raw = nil, nil
				return fmt.Errorf("restore %s: %w", s.path, err)
			}
			s.logger.Info("database loaded from file", "path", s.path)
		} else if errors.Is(statErr, os.ErrNotExist) {
			if err := s.persistLocked(ctx); err != nil {
				_ = sqlDB.Close()
				s.db, s.raw = nil, nil
				return fmt.Errorf("create %s: %w", s.path, err)
			}
			s.logger.Info("database file created", "path", s.path)
		} else {
			_ = sqlDB.Close()
			s.db, s.raw = nil, nil
			return fmt.Errorf("stat %s: %w", s.path, statErr)
		}
	}

	s.ready.Store(true)
	return nil
}

// Ready reports whether Load succeeded and the store has not been closed.
func (s *Store) Ready() bool {
	return s.ready.Load()
}

// Read runs fn against the current database.
func (s *Store) Read(ctx context.Context, fn func(db *gorm.DB) error) error {
	if !s.Ready() {
		return ErrNotReady
	}
	return fn(s.db.WithContext(ctx))
}

// Mutate runs fn in one transaction and rewrites the file when it commits.
// Writers are serialised, so a check-then-insert inside fn cannot race.
func (s *Store) Mutate(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if !s.Ready() {
		return ErrNotReady
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.WithContext(ctx).Transaction(fn); err != nil {
		return err
	}

	// the transaction is committed; finish the file write even if the request goes away.
	if err := s.persistLocked(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("persist after commit failed", "error", err)
		return err
	}
	return nil
}

// Persist rewrites the database file from the in-memory copy.
func (s *Store) Persist(ctx context.Context) error {
	if !s.Ready() {
		return ErrNotReady
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Store) Stats() Stats {
	st := Stats{
		Path:         s.path,
		Ready:        s.Ready(),
		PersistCount: s.persistCount.Load(),
	}
	if ns := s.lastPersist.Load(); ns > 0 {
		st.LastPersistedAt = time.Unix(0, ns).UTC()
	}
	return st
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Ready() {
		return ErrNotReady
	}
	return s.raw.PingContext(ctx)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready.Swap(false) {
		return nil
	}
	return s.raw.Close()
}

func (s *Store) persistLocked(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale snapshot: %w", err)
	}

	if _, err := s.raw.ExecContext(ctx, "VACUUM INTO "+quote(tmp)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace database file: %w", err)
	}

	s.persistCount.Add(1)
	s.lastPersist.Store(time.Now().UnixNano())
	s.logger.Debug("database persisted", "path", s.path, "count", s.persistCount.Load())
	return nil
}

// restore brings the file schema up to date and copies its rows into memory.
func (s *Store) restore(ctx context.Context) error {
	disk, err := sqlx.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	if err := migrate(ctx, disk.DB); err != nil {
		_ = disk.Close()
		return fmt.Errorf("migrate file: %w", err)
	}
	if err := disk.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	conn, err := s.raw.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "ATTACH DATABASE "+quote(s.path)+" AS disk"); err != nil {
		return fmt.Errorf("attach: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(context.WithoutCancel(ctx), "DETACH DATABASE disk"); err != nil {
			s.logger.Warn("detach failed", "error", err)
		}
	}()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, table := range Tables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("INSERT INTO main.%s SELECT * FROM disk.%s", table, table)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("copy %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// migrate applies the embedded schema. Every statement is guarded with
// IF NOT EXISTS and goose records applied versions, so it runs on every boot.
func migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func quote(path string) string {
	return "'" + strings.ReplaceAll(path, "'", "''") + "'"
}
