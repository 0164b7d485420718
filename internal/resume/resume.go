// Package resume reads the candidate's résumé and distills it into the
// keyword list the relevance scorer compares job descriptions against.
package resume

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

const (
	// maxKeywords caps the list handed to the scorer
	maxKeywords = 30

	minTokenLength = 3
)

// ReadText extracts plain text from a résumé file. PDF files go through the
// PDF text extractor; anything else is read as plain text.
func ReadText(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("resume path is empty")
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}

	return string(b), nil
}

func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to buffer PDF text: %w", err)
	}

	return buf.String(), nil
}

// ExtractKeywords tokenizes the résumé text and returns the most frequent
// meaningful terms, most frequent first. It returns an empty slice when the
// text carries no signal.
func ExtractKeywords(text string) []string {
	counts := map[string]int{}

	for _, token := range tokenize(text) {
		if len(token) < minTokenLength {
			continue
		}

		if stopwords[token] {
			continue
		}

		if isNumeric(token) {
			continue
		}

		counts[token]++
	}

	if len(counts) == 0 {
		return nil
	}

	keywords := make([]string, 0, len(counts))
	for token := range counts {
		keywords = append(keywords, token)
	}

	// frequency desc, then alphabetical for a stable order
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}

		return keywords[i] < keywords[j]
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}

	return keywords
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// stopwords are common résumé filler terms that carry no matching signal
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"that": true, "this": true, "was": true, "were": true, "are": true,
	"has": true, "have": true, "had": true, "but": true, "not": true,
	"all": true, "any": true, "can": true, "will": true, "our": true,
	"their": true, "your": true, "its": true, "into": true, "over": true,
	"more": true, "than": true, "also": true, "such": true, "per": true,
	"using": true, "used": true, "use": true, "via": true, "etc": true,
	"work": true, "worked": true, "working": true, "experience": true,
	"years": true, "year": true, "team": true, "teams": true,
	"responsible": true, "responsibilities": true, "including": true,
	"developed": true, "managed": true, "various": true, "multiple": true,
}
