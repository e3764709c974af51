package database

import (
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("DSN", func(t *testing.T) {
		result := dialect.DSN(DialectConfig{Path: "/tmp/q.db"})
		expected := "file:/tmp/q.db?_busy_timeout=5000&_foreign_keys=on"
		if result != expected {
			t.Errorf("DSN() = %v, want %v", result, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "sqlite"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "postgres"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "mysql"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})

	t.Run("DSN adds required options", func(t *testing.T) {
		tests := []struct {
			url  string
			want string
		}{
			{"u:p@tcp(db:3306)/quest", "u:p@tcp(db:3306)/quest?multiStatements=true&parseTime=true"},
			{"u:p@tcp(db:3306)/quest?charset=utf8mb4", "u:p@tcp(db:3306)/quest?charset=utf8mb4&multiStatements=true&parseTime=true"},
			{"u:p@tcp(db:3306)/quest?parseTime=true", "u:p@tcp(db:3306)/quest?parseTime=true&multiStatements=true"},
		}
		for _, tt := range tests {
			if got := dialect.DSN(DialectConfig{URL: tt.url}); got != tt.want {
				t.Errorf("DSN(%q) = %v, want %v", tt.url, got, tt.want)
			}
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM progressions WHERE user_id = ?",
			expected: "SELECT * FROM progressions WHERE user_id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM progressions WHERE user_id = ?",
			expected: "SELECT * FROM progressions WHERE user_id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "UPDATE progressions SET xp = ? WHERE user_id = ? AND version = ?",
			expected: "UPDATE progressions SET xp = $1 WHERE user_id = $2 AND version = $3",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE profiles SET display_name = ?, email = ? WHERE user_id = ?",
			expected: "UPDATE profiles SET display_name = ?, email = ? WHERE user_id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestIgnoreConflicts(t *testing.T) {
	const insert = "INSERT INTO completed_quests (user_id, quest_id) VALUES (?, ?)"

	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{"SQLite", NewSQLiteDialect(), insert, "INSERT OR IGNORE INTO completed_quests (user_id, quest_id) VALUES (?, ?)"},
		{"PostgreSQL", NewPostgresDialect(), insert + ";", insert + " ON CONFLICT DO NOTHING"},
		{"MySQL", NewMySQLDialect(), insert, "INSERT IGNORE INTO completed_quests (user_id, quest_id) VALUES (?, ?)"},
		{"leading whitespace", NewSQLiteDialect(), "\n\t" + insert, "\n\tINSERT OR IGNORE INTO completed_quests (user_id, quest_id) VALUES (?, ?)"},
		{"not an insert", NewMySQLDialect(), "UPDATE x SET y = 1", "UPDATE x SET y = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.dialect.IgnoreConflicts(tt.query); result != tt.expected {
				t.Errorf("IgnoreConflicts() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		dbType  string
		want    string
		wantErr bool
	}{
		{"", "sqlite", false},
		{"sqlite3", "sqlite", false},
		{"PostgreSQL", "postgres", false},
		{"mysql", "mysql", false},
		{"oracle", "", true},
	}
	for _, tt := range tests {
		d, _, err := DialectFor(tt.dbType, "q.db", "url")
		if (err != nil) != tt.wantErr {
			t.Fatalf("DialectFor(%q) error = %v, wantErr %v", tt.dbType, err, tt.wantErr)
		}
		if err == nil && d.Name() != tt.want {
			t.Errorf("DialectFor(%q) = %v, want %v", tt.dbType, d.Name(), tt.want)
		}
	}
}
