package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// SplitTerms parses a comma separated search-term list, dropping blanks and
// duplicates while preserving order.
func SplitTerms(s string) []string {
	var terms []string

	seen := map[string]bool{}

	for _, raw := range strings.Split(s, ",") {
		term := strings.TrimSpace(raw)
		if term == "" {
			continue
		}

		key := strings.ToLower(term)
		if seen[key] {
			continue
		}

		seen[key] = true
		terms = append(terms, term)
	}

	return terms
}

// ReadTerms reads search terms from a reader, one per line. Blank lines and
// lines starting with # are skipped.
func ReadTerms(r io.Reader) ([]string, error) {
	var terms []string

	seen := map[string]bool{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term == "" || strings.HasPrefix(term, "#") {
			continue
		}

		key := strings.ToLower(term)
		if seen[key] {
			continue
		}

		seen[key] = true
		terms = append(terms, term)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read terms: %w", err)
	}

	return terms, nil
}

// LoadTerms resolves the effective search-term list from the configuration:
// inline terms first, then the terms file.
func (c *Config) LoadTerms() ([]string, error) {
	terms := append([]string(nil), c.SearchTerms...)

	if c.TermsFile != "" {
		f, err := os.Open(c.TermsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open terms file: %w", err)
		}
		defer f.Close()

		fromFile, err := ReadTerms(f)
		if err != nil {
			return nil, err
		}

		terms = append(terms, fromFile...)
	}

	if len(terms) == 0 {
		return nil, fmt.Errorf("at least one search term is required")
	}

	return terms, nil
}
