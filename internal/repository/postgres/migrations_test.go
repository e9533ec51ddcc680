package postgres_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../../db/migrations"

// Deleting a document must never cascade to, or be blocked by, the documents derived from it.
func TestMigrations_SourceDocumentHasNoForeignKey(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	column := regexp.MustCompile(`(?im)^\s*source_document_id\s+(.*)$`)
	selfRef := regexp.MustCompile(`(?is)CREATE TABLE\s+(?:IF NOT EXISTS\s+)?documents\s*\([^;]*REFERENCES\s+documents\b`)

	var declared bool
	for _, file := range files {
		raw, err := os.ReadFile(file)
		require.NoError(t, err)
		sql := string(raw)

		for _, m := range column.FindAllStringSubmatch(sql, -1) {
			declared = true
			assert.NotContains(t, strings.ToUpper(m[1]), "REFERENCES", "%s: source_document_id must stay a plain column", filepath.Base(file))
		}
		assert.False(t, selfRef.MatchString(sql), "%s: documents must not reference itself", filepath.Base(file))
	}
	assert.True(t, declared, "source_document_id column not found in any migration")
}
