package database

import (
	"database/sql"
	"regexp"
	"strconv"

	migratedb "github.com/golang-migrate/migrate/v4/database"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// Name identifies the dialect in logs and backups
	Name() string

	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// IgnoreConflicts turns a plain "INSERT INTO ..." into one that skips rows
	// violating a unique or primary key constraint
	IgnoreConflicts(insert string) string

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// MigrationDriver wraps an open connection for golang-migrate
	MigrationDriver(db *sql.DB) (migratedb.Driver, error)
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders not inside quotes
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// replaceInsertKeyword swaps the leading INSERT keyword for prefix
func replaceInsertKeyword(insert, prefix string) string {
	const kw = "INSERT"
	for i := 0; i+len(kw) <= len(insert); i++ {
		if insert[i] == ' ' || insert[i] == '\t' || insert[i] == '\n' {
			continue
		}
		if insert[i:i+len(kw)] == kw {
			return insert[:i] + prefix + insert[i+len(kw):]
		}
		break
	}
	return insert
}
