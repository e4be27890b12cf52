// Command script_diff compares two generated SQL scripts statement by
// statement. Useful when checking that a seed or spec change only moves
// the data it was supposed to move.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
)

type stats struct {
	Matched   int
	Changed   int
	OnlyLeft  int
	OnlyRight int
}

func main() {
	var (
		maxShown     int
		skipComments bool
	)
	flag.IntVar(&maxShown, "max-shown", 20, "maximum differing statements to print")
	flag.BoolVar(&skipComments, "skip-comments", true, "ignore comment lines when comparing")
	flag.Parse()

	if flag.NArg() != 2 {
		log.Fatalf("usage: script_diff [flags] <left.sql> <right.sql>")
	}

	left, err := loadStatements(flag.Arg(0), skipComments)
	if err != nil {
		log.Fatalf("failed to read %s: %v", flag.Arg(0), err)
	}
	right, err := loadStatements(flag.Arg(1), skipComments)
	if err != nil {
		log.Fatalf("failed to read %s: %v", flag.Arg(1), err)
	}

	var st stats
	shown := 0
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(left):
			st.OnlyRight++
		case i >= len(right):
			st.OnlyLeft++
		case left[i] == right[i]:
			st.Matched++
			continue
		default:
			st.Changed++
		}
		if shown < maxShown {
			fmt.Printf("--- statement %d\n", i+1)
			if i < len(left) {
				fmt.Printf("  left:  %s\n", truncate(left[i], 120))
			}
			if i < len(right) {
				fmt.Printf("  right: %s\n", truncate(right[i], 120))
			}
			shown++
		}
	}

	fmt.Printf("\nmatched %d, changed %d, only-left %d, only-right %d\n",
		st.Matched, st.Changed, st.OnlyLeft, st.OnlyRight)
	if st.Changed+st.OnlyLeft+st.OnlyRight > 0 {
		os.Exit(1)
	}
}

// loadStatements splits a script on statement boundaries. Generated scripts
// terminate every statement with ";" at end of line.
func loadStatements(path string, skipComments bool) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var stmts []string
	var current []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "GO" {
			continue
		}
		if skipComments && strings.HasPrefix(trimmed, "--") {
			continue
		}
		current = append(current, trimmed)
		if strings.HasSuffix(trimmed, ";") {
			stmts = append(stmts, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		stmts = append(stmts, strings.Join(current, " "))
	}
	return stmts, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
