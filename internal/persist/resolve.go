package persist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/postit-dev/postit/internal/codec"
)

var sqliteExtensions = []string{".db", ".sqlite", ".sqlite3"}

// SupportedTargets lists the target forms Resolve accepts.
func SupportedTargets() []string {
	var targets []string
	for _, ext := range codec.Extensions() {
		targets = append(targets, "*"+ext)
	}
	for _, ext := range sqliteExtensions {
		targets = append(targets, "*"+ext)
	}
	return append(targets, "sqlite://PATH", MemoryDSN, "mongodb://HOST[/DB]", "mongodb+srv://HOST[/DB]")
}

// IsDatabaseTarget reports whether target names a database rather than a
// file. It performs no validation.
func IsDatabaseTarget(target string) bool {
	target = strings.TrimSpace(target)
	return strings.Contains(target, "://") || target == MemoryDSN || isSQLitePath(target)
}

func isSQLitePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range sqliteExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Resolve maps a file path or connection string to a Persister:
//
//	*.csv, *.json, *.xml, *.yaml, *.yml   file persister with matching codec
//	*.db, *.sqlite, *.sqlite3, sqlite://  SQLite table named after the file stem
//	:memory:                              in-memory SQLite
//	mongodb://, mongodb+srv://            MongoDB collection
//
// Anything else yields an *UnsupportedError. Resolve never touches the
// filesystem or the network.
func Resolve(target string, opts ...Option) (Persister, error) {
	o := buildOptions(opts)
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, &UnsupportedError{Target: target, Reason: "empty target"}
	}

	if scheme, rest, ok := strings.Cut(target, "://"); ok {
		switch strings.ToLower(scheme) {
		case "mongodb", "mongodb+srv":
			m, err := NewMongo(target, o.logger)
			if err != nil {
				return nil, err
			}
			return m, nil
		case "sqlite":
			if rest == "" {
				return nil, &UnsupportedError{Target: target, Reason: "missing database path"}
			}
			if rest == MemoryDSN {
				return NewSQLite(MemoryDSN, o.logger), nil
			}
			return NewSQLite(o.path(rest), o.logger), nil
		default:
			return nil, &UnsupportedError{Target: target, Reason: fmt.Sprintf("unknown scheme %q", scheme)}
		}
	}

	if target == MemoryDSN {
		return NewSQLite(MemoryDSN, o.logger), nil
	}

	ext := filepath.Ext(target)
	if ext == "" {
		return nil, &UnsupportedError{Target: target, Reason: "missing file extension"}
	}
	if isSQLitePath(target) {
		return NewSQLite(o.path(target), o.logger), nil
	}
	if c, ok := codec.ForExtension(ext); ok {
		return NewFile(o.path(target), c, o.logger), nil
	}
	return nil, &UnsupportedError{Target: target, Reason: fmt.Sprintf("unknown extension %q", ext)}
}

// path places relative paths under the configured root.
func (o resolveOptions) path(p string) string {
	if o.root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(o.root, p)
}

// SameTarget reports whether a and b address the same storage.
func SameTarget(a, b Persister) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *File:
		y, ok := b.(*File)
		return ok && samePath(x.path, y.path)
	case *SQLite:
		y, ok := b.(*SQLite)
		if !ok {
			return false
		}
		if x.inMemory() || y.inMemory() {
			return x == y
		}
		return samePath(x.path, y.path) && x.table == y.table
	case *Mongo:
		y, ok := b.(*Mongo)
		return ok && x.uri == y.uri && x.database == y.database && x.collection == y.collection
	}
	return a == b
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
