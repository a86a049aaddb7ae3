package storage

import (
	"context"
	"io/fs"
	"regexp"
	"strings"
	"testing"

	coachtip "github.com/claude/coachtip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createTableRe = regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS (\w+) \((.*?)\n\);`)

// migrationColumns reads the column names of every table created by the
// PostgreSQL migrations.
func migrationColumns(t *testing.T) map[string][]string {
	t.Helper()
	files, err := fs.Glob(coachtip.MigrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	tables := make(map[string][]string)
	for _, f := range files {
		data, err := fs.ReadFile(coachtip.MigrationsFS, f)
		require.NoError(t, err)
		for _, m := range createTableRe.FindAllStringSubmatch(string(data), -1) {
			for _, line := range strings.Split(m[2], "\n") {
				fields := strings.Fields(line)
				if len(fields) == 0 {
					continue
				}
				tables[m[1]] = append(tables[m[1]], fields[0])
			}
		}
	}
	return tables
}

// TestSQLiteSchemaMatchesMigrations verifies the embedded SQLite schema has
// the same tables and columns as the PostgreSQL migrations.
func TestSQLiteSchemaMatchesMigrations(t *testing.T) {
	s := openTestSQLite(t)
	want := migrationColumns(t)
	require.Len(t, want, 3)

	for table, cols := range want {
		rows, err := s.db.QueryContext(context.Background(), `SELECT name FROM pragma_table_info(?)`, table)
		require.NoError(t, err)

		var got []string
		for rows.Next() {
			var name string
			require.NoError(t, rows.Scan(&name))
			got = append(got, name)
		}
		require.NoError(t, rows.Err())
		rows.Close()

		assert.ElementsMatch(t, cols, got, "table %s", table)
	}
}
