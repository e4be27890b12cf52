package media

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMediaDir(t *testing.T, withOptional bool) string {
	t.Helper()
	dir := t.TempDir()
	layout := map[string][]string{
		"profile_pics":       {"p1.jpg", "p2.jpg"},
		"course_docs/pdf":    {"syllabus.pdf"},
		"course_docs/images": {"diagram.png"},
		"course_docs/excel":  {"grades.xlsx"},
	}
	if withOptional {
		layout["room_pics"] = []string{"room1.jpg"}
		layout["regulations"] = []string{"rules.pdf"}
	}
	for sub, names := range layout {
		full := filepath.Join(dir, filepath.FromSlash(sub))
		require.NoError(t, os.MkdirAll(full, 0o755))
		for _, n := range names {
			require.NoError(t, os.WriteFile(filepath.Join(full, n), []byte("x"), 0o644))
		}
	}
	return dir
}

func TestScanRequiresMandatoryFolders(t *testing.T) {
	dir := t.TempDir()
	_, err := Scan(dir, "https://cdn.example.edu", "edu-media", rand.New(rand.NewSource(1)))
	require.Error(t, err)
}

func TestScanWarnsOnMissingOptionalFolders(t *testing.T) {
	dir := seedMediaDir(t, false)
	cat, err := Scan(dir, "https://cdn.example.edu", "edu-media", rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, cat.Warnings(), 2)
	assert.Equal(t, "", cat.Pick(RoomPics))
}

func TestPickAndURL(t *testing.T) {
	dir := seedMediaDir(t, true)
	cat, err := Scan(dir, "https://cdn.example.edu", "edu-media", rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	name := cat.Pick(ProfilePics)
	assert.Contains(t, []string{"p1.jpg", "p2.jpg"}, name)
	assert.Equal(t, "https://cdn.example.edu/edu-media/syllabus.pdf", cat.URL("syllabus.pdf"))

	url := cat.PickURL(CourseDocPDF)
	assert.Equal(t, "https://cdn.example.edu/edu-media/syllabus.pdf", url)
}
