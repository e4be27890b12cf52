// Package sqlout renders entity rows into an ordered T-SQL script of
// chunked INSERT statements.
package sqlout

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/noah-isme/edu-fixtures/pkg/errors"
)

const defaultChunkSize = 1000

// Sink accumulates an ordered list of SQL statements and comments.
type Sink struct {
	stmts     []string
	chunkSize int
	warnings  int
}

// NewSink creates a sink with the given INSERT chunk size (≤0 uses 1000 rows).
func NewSink(chunkSize int) *Sink {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Sink{chunkSize: chunkSize}
}

// Comment appends a -- comment line.
func (s *Sink) Comment(text string) {
	s.stmts = append(s.stmts, "-- "+text)
}

// Warningf appends a -- WARNING: comment line.
func (s *Sink) Warningf(format string, args ...any) {
	s.warnings++
	s.stmts = append(s.stmts, "-- WARNING: "+fmt.Sprintf(format, args...))
}

// Raw appends a statement verbatim.
func (s *Sink) Raw(stmt string) {
	s.stmts = append(s.stmts, stmt)
}

// Insert appends chunked INSERT statements for the rows. An empty row set is
// a precondition violation; optional tables must be guarded by the caller.
func (s *Sink) Insert(table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return appErrors.Clone(appErrors.ErrPrecondition, fmt.Sprintf("no rows to insert into %s", table))
	}
	head := fmt.Sprintf("INSERT INTO %s (%s) VALUES", table, strings.Join(columns, ", "))
	for start := 0; start < len(rows); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		values := make([]string, 0, end-start)
		for _, row := range rows[start:end] {
			rendered := make([]string, len(row))
			for i, v := range row {
				rendered[i] = Value(v)
			}
			values = append(values, "("+strings.Join(rendered, ", ")+")")
		}
		s.stmts = append(s.stmts, head+"\n"+strings.Join(values, ",\n")+";")
	}
	return nil
}

// Value renders a Go value as a T-SQL literal.
func Value(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quote(t)
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case *float64:
		if t == nil {
			return "NULL"
		}
		return strconv.FormatFloat(*t, 'f', -1, 64)
	case time.Time:
		if t.IsZero() {
			return "NULL"
		}
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return "'" + t.Format("2006-01-02") + "'"
		}
		return "'" + t.Format("2006-01-02 15:04:05") + "'"
	case *time.Time:
		if t == nil {
			return "NULL"
		}
		return Value(*t)
	default:
		return quote(fmt.Sprintf("%v", t))
	}
}

func quote(s string) string {
	return "N'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// AppendSnippets concatenates hand-written SQL files at the script tail.
// Missing or unreadable files degrade to comments.
func (s *Sink) AppendSnippets(dir string, names ...string) {
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				s.Comment(fmt.Sprintf("snippet %s not found, skipped", name))
			} else {
				s.Comment(fmt.Sprintf("snippet %s unreadable, skipped: %v", name, err))
			}
			continue
		}
		s.Comment("begin snippet " + name)
		s.stmts = append(s.stmts, strings.TrimRight(string(data), "\n"))
		s.Comment("end snippet " + name)
	}
}

// Statements exposes the accumulated statement list.
func (s *Sink) Statements() []string {
	return s.stmts
}

// WarningCount reports how many warnings were embedded.
func (s *Sink) WarningCount() int {
	return s.warnings
}

// Render assembles the full script.
func (s *Sink) Render() string {
	var b strings.Builder
	b.WriteString("USE EduManagement;\nGO\n\n")
	for _, stmt := range s.stmts {
		b.WriteString(stmt)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFile overwrites path with the rendered script.
func (s *Sink) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Severity, "cannot create output directory")
		}
	}
	if err := os.WriteFile(path, []byte(s.Render()), 0o644); err != nil {
		return appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Severity, "cannot write output file")
	}
	return nil
}
