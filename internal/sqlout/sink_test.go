package sqlout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRendering(t *testing.T) {
	score := 7.5
	when := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2025, 11, 15, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{"O'Brien", "N'O''Brien'"},
		{true, "1"},
		{false, "0"},
		{42, "42"},
		{int64(600000), "600000"},
		{7.5, "7.5"},
		{&score, "7.5"},
		{(*float64)(nil), "NULL"},
		{when, "'2025-11-15'"},
		{stamp, "'2025-11-15 09:30:00'"},
		{(*time.Time)(nil), "NULL"},
		{time.Time{}, "NULL"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Value(tc.in))
	}
}

func TestInsertChunksRows(t *testing.T) {
	sink := NewSink(2)
	rows := [][]any{{1, "a"}, {2, "b"}, {3, "c"}}
	require.NoError(t, sink.Insert("things", []string{"id", "name"}, rows))

	stmts := sink.Statements()
	require.Len(t, stmts, 2)
	head := "INSERT INTO things (id, name) VALUES"
	require.True(t, strings.HasPrefix(stmts[0], head))
	require.True(t, strings.HasPrefix(stmts[1], head))
	assert.Equal(t, 2, strings.Count(strings.TrimPrefix(stmts[0], head), "("))
	assert.Equal(t, 1, strings.Count(strings.TrimPrefix(stmts[1], head), "("))
}

func TestInsertEmptyRowsFails(t *testing.T) {
	sink := NewSink(0)
	err := sink.Insert("things", []string{"id"}, nil)
	require.Error(t, err)
}

func TestRenderHeaderAndWarnings(t *testing.T) {
	sink := NewSink(0)
	sink.Comment("phase: roles")
	sink.Warningf("no conflict-free slot for section %s", "CC-1")

	out := sink.Render()
	assert.True(t, strings.HasPrefix(out, "USE EduManagement;\nGO\n"))
	assert.Contains(t, out, "-- phase: roles")
	assert.Contains(t, out, "-- WARNING: no conflict-free slot for section CC-1")
	assert.Equal(t, 1, sink.WarningCount())
}

func TestAppendSnippets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.sql"), []byte("UPDATE x SET y = 1;\n"), 0o644))

	sink := NewSink(0)
	sink.AppendSnippets(dir, "extra.sql", "missing.sql")

	out := sink.Render()
	assert.Contains(t, out, "UPDATE x SET y = 1;")
	assert.Contains(t, out, "-- snippet missing.sql not found, skipped")
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "data.sql")
	sink := NewSink(0)
	sink.Comment("v1")
	require.NoError(t, sink.WriteFile(path))

	sink2 := NewSink(0)
	sink2.Comment("v2")
	require.NoError(t, sink2.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- v2")
	assert.NotContains(t, string(data), "-- v1")
}
