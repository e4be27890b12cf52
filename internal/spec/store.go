// Package spec loads the plain-text universe specification file that
// describes the generated institution.
package spec

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	appErrors "github.com/noah-isme/edu-fixtures/pkg/errors"
)

// Record is one parsed record line, split on '|' with fields trimmed.
type Record []string

// Field returns the i-th field or the empty string when absent.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Store holds the parsed sections and per-section config maps of a spec file.
type Store struct {
	sections map[string][]Record
	configs  map[string]map[string]string
	order    []string
	warnings []string
}

// Load reads and parses the spec file at path.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Severity, fmt.Sprintf("spec file %s not readable", path))
	}
	defer f.Close()

	s := &Store{
		sections: make(map[string][]Record),
		configs:  make(map[string]map[string]string),
	}

	current := ""
	lineNo := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = strings.TrimSpace(line[1 : len(line)-1])
			if _, seen := s.sections[current]; !seen {
				s.sections[current] = nil
				s.order = append(s.order, current)
			}
			continue
		}
		if current == "" {
			s.warnings = append(s.warnings, fmt.Sprintf("line %d outside any section: %q", lineNo, line))
			continue
		}
		switch {
		case strings.Contains(line, "|"):
			s.sections[current] = append(s.sections[current], splitRecord(line))
		case strings.Contains(line, "://"):
			// URL-shaped lines stay record lines even though they contain ':'.
			s.sections[current] = append(s.sections[current], Record{line})
		case strings.Contains(line, ":"):
			key, value, _ := strings.Cut(line, ":")
			cfg := s.configs[current]
			if cfg == nil {
				cfg = make(map[string]string)
				s.configs[current] = cfg
			}
			cfg[strings.TrimSpace(key)] = strings.TrimSpace(value)
		default:
			s.warnings = append(s.warnings, fmt.Sprintf("line %d in [%s] is neither record nor config: %q", lineNo, current, line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Severity, fmt.Sprintf("failed reading spec file %s", path))
	}
	return s, nil
}

func splitRecord(line string) Record {
	parts := strings.Split(line, "|")
	rec := make(Record, len(parts))
	for i, p := range parts {
		rec[i] = strings.TrimSpace(p)
	}
	return rec
}

// Records returns the record lines of a section (nil when absent).
func (s *Store) Records(section string) []Record {
	return s.sections[section]
}

// Config returns the key/value entries attached to a section.
func (s *Store) Config(section string) map[string]string {
	return s.configs[section]
}

// RequireSection returns the records of a section, failing when the section
// is missing or empty.
func (s *Store) RequireSection(section string) ([]Record, error) {
	recs, ok := s.sections[section]
	if !ok || len(recs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("required spec section [%s] is missing or empty", section))
	}
	return recs, nil
}

// Sections lists section names in file order.
func (s *Store) Sections() []string {
	return s.order
}

// Warnings lists parse anomalies to be surfaced as output comments.
func (s *Store) Warnings() []string {
	return s.warnings
}
