package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Valid terms",
			input:    "QA, Test Automation,SDET",
			expected: []string{"QA", "Test Automation", "SDET"},
		},
		{
			name:     "Duplicates dropped case-insensitively",
			input:    "QA,qa, QA ",
			expected: []string{"QA"},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "Only separators",
			input:    ", ,,",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitTerms(tt.input))
		})
	}
}

func TestReadTerms(t *testing.T) {
	input := "QA Engineer\n\n# comment line\nSDET\nqa engineer\n"

	terms, err := ReadTerms(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"QA Engineer", "SDET"}, terms)
}

func TestLoadTermsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.txt")
	require.NoError(t, os.WriteFile(path, []byte("QA\nSDET\n"), 0o644))

	cfg := &Config{TermsFile: path}

	terms, err := cfg.LoadTerms()

	require.NoError(t, err)
	assert.Equal(t, []string{"QA", "SDET"}, terms)
}

func TestLoadTermsCombinesInlineAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.txt")
	require.NoError(t, os.WriteFile(path, []byte("Backend\n"), 0o644))

	cfg := &Config{SearchTerms: []string{"QA"}, TermsFile: path}

	terms, err := cfg.LoadTerms()

	require.NoError(t, err)
	assert.Equal(t, []string{"QA", "Backend"}, terms)
}

func TestLoadTermsEmpty(t *testing.T) {
	cfg := &Config{}

	_, err := cfg.LoadTerms()

	assert.Error(t, err)
}
