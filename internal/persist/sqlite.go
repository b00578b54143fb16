package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/postit-dev/postit/internal/model"

	_ "modernc.org/sqlite"
)

// MemoryDSN is the SQLite target for a private in-memory database.
const MemoryDSN = ":memory:"

// defaultTable is used when no table name can be derived from the target.
const defaultTable = "tasks"

// SQLite stores a task list in one table of a SQLite database file.
type SQLite struct {
	path   string
	table  string
	logger *log.Logger
	db     *sqlx.DB
}

// NewSQLite returns a persister for the table named after the stem of path.
// The database is not opened until first use.
func NewSQLite(path string, logger *log.Logger) *SQLite {
	return &SQLite{path: path, table: TableName(path), logger: orDiscard(logger)}
}

// TableName derives a table name from a database path: the file stem with
// every character outside [A-Za-z0-9_] replaced by an underscore.
func TableName(path string) string {
	if path == MemoryDSN || path == "" {
		return defaultTable
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return defaultTable
	}

	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name[0] >= '0' && name[0] <= '9' {
		name = "t_" + name
	}
	return name
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Table returns the table holding the tasks.
func (s *SQLite) Table() string { return s.table }

func (s *SQLite) Kind() Kind { return KindSQLite }

func (s *SQLite) String() string {
	return fmt.Sprintf("%s (table %s)", s.path, s.table)
}

// Close releases the database connection if one was opened.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return opError("close", s, err)
	}
	return nil
}

func (s *SQLite) inMemory() bool {
	return s.path == MemoryDSN
}

// fileExists reports whether the database file is present. In-memory
// databases always exist.
func (s *SQLite) fileExists() (bool, error) {
	if s.inMemory() {
		return true, nil
	}
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", s.path)
	}
	return true, nil
}

func (s *SQLite) open(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	if !s.inMemory() {
		if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps an in-memory database alive between statements
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	s.logger.Debug("opened database", "path", s.path)
	s.db = db
	return nil
}

func (s *SQLite) tableExists(ctx context.Context) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", s.table)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLite) createTable(ctx context.Context, exec sqlx.ExecerContext) error {
	_, err := exec.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %q (
			id       INTEGER PRIMARY KEY,
			content  TEXT NOT NULL,
			priority TEXT NOT NULL,
			checked  BOOLEAN NOT NULL CHECK (checked IN (0, 1))
		)`, s.table))
	return err
}

// Exists reports whether the task table exists. It never creates the
// database file.
func (s *SQLite) Exists(ctx context.Context) (bool, error) {
	ok, err := s.fileExists()
	if err != nil {
		return false, opError("access", s, err)
	}
	if !ok {
		return false, nil
	}
	if err := s.open(ctx); err != nil {
		return false, opError("open", s, err)
	}
	ok, err = s.tableExists(ctx)
	if err != nil {
		return false, opError("access", s, err)
	}
	return ok, nil
}

// Read loads every row ordered by id. A missing file or table reads as an
// empty list.
func (s *SQLite) Read(ctx context.Context) (*model.TaskList, error) {
	ok, err := s.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Debug("table missing, reading empty list", "table", s.table)
		return model.NewTaskList(), nil
	}

	var tasks []model.Task
	query := fmt.Sprintf("SELECT id, content, priority, checked FROM %q ORDER BY id", s.table)
	if err := s.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, opError("read", s, err)
	}

	l := model.NewTaskList(tasks...)
	if err := l.Validate(); err != nil {
		return nil, opError("read", s, err)
	}

	s.logger.Debug("read tasks", "table", s.table, "count", l.Len())
	return l, nil
}

// Save replaces every row with the tasks in l inside one transaction.
func (s *SQLite) Save(ctx context.Context, l *model.TaskList) error {
	if err := s.open(ctx); err != nil {
		return opError("open", s, err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return opError("save", s, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	if err := s.createTable(ctx, tx); err != nil {
		return opError("save", s, fmt.Errorf("failed to create table: %w", err))
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %q", s.table)); err != nil {
		return opError("save", s, fmt.Errorf("failed to clear table: %w", err))
	}

	insert := fmt.Sprintf("INSERT INTO %q (id, content, priority, checked) VALUES (?, ?, ?, ?)", s.table)
	for _, t := range l.Tasks {
		if _, err := tx.ExecContext(ctx, insert, t.ID, t.Content, string(t.Priority), t.Checked); err != nil {
			return opError("save", s, fmt.Errorf("failed to insert task %d: %w", t.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return opError("save", s, fmt.Errorf("failed to commit: %w", err))
	}

	s.logger.Debug("saved tasks", "table", s.table, "count", l.Len())
	return nil
}

// Clean deletes every row but keeps the table, creating it if needed.
func (s *SQLite) Clean(ctx context.Context) error {
	if err := s.open(ctx); err != nil {
		return opError("open", s, err)
	}
	if err := s.createTable(ctx, s.db); err != nil {
		return opError("clean", s, err)
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %q", s.table)); err != nil {
		return opError("clean", s, err)
	}
	s.logger.Debug("cleaned table", "table", s.table)
	return nil
}

// Remove drops the task table. A missing database file is not an error.
func (s *SQLite) Remove(ctx context.Context) error {
	ok, err := s.fileExists()
	if err != nil {
		return opError("remove", s, err)
	}
	if !ok {
		return nil
	}
	if err := s.open(ctx); err != nil {
		return opError("open", s, err)
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %q", s.table)); err != nil {
		return opError("remove", s, err)
	}
	s.logger.Debug("dropped table", "table", s.table)
	return nil
}
