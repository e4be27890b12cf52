package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "universe.spec")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesSectionsRecordsAndConfigs(t *testing.T) {
	path := writeSpec(t, `
# universe
[faculties]
CS | Computer Science Faculty
EE | Electrical Engineering Faculty

[accounts]
admin_username: root
base_url: https://cdn.example.edu/profiles
11111111-0000-0000-0000-000000000001 | student | Nguyen Van Test
`)

	store, err := Load(path)
	require.NoError(t, err)

	faculties := store.Records("faculties")
	require.Len(t, faculties, 2)
	assert.Equal(t, "CS", faculties[0].Field(0))
	assert.Equal(t, "Computer Science Faculty", faculties[0].Field(1))

	cfg := store.Config("accounts")
	require.NotNil(t, cfg)
	assert.Equal(t, "root", cfg["admin_username"])

	// URL-shaped lines stay whole record lines, not config entries.
	accounts := store.Records("accounts")
	require.Len(t, accounts, 2)
	assert.Equal(t, "base_url: https://cdn.example.edu/profiles", accounts[0].Field(0))
	assert.Equal(t, "student", accounts[1].Field(1))

	assert.Equal(t, []string{"faculties", "accounts"}, store.Sections())
}

func TestLoadWarnsOnStrayLines(t *testing.T) {
	path := writeSpec(t, `stray before section
[subjects]
not a record or config
MATH101 | Calculus I | 3 | 30 | 15 | general
`)

	store, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, store.Warnings(), 2)
	assert.Len(t, store.Records("subjects"), 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.spec"))
	require.Error(t, err)
}

func TestRequireSection(t *testing.T) {
	path := writeSpec(t, "[faculties]\nCS | Computer Science\n")
	store, err := Load(path)
	require.NoError(t, err)

	_, err = store.RequireSection("faculties")
	assert.NoError(t, err)

	_, err = store.RequireSection("departments")
	assert.Error(t, err)
}

func TestFieldOutOfRange(t *testing.T) {
	rec := Record{"a", "b"}
	assert.Equal(t, "", rec.Field(5))
	assert.Equal(t, "", rec.Field(-1))
}
