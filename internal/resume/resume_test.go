package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	text := `Senior QA Engineer with experience in Selenium, Selenium Grid and
	Playwright. Built test automation in Go and Python. Selenium expert.
	Worked with CI pipelines, Docker and Kubernetes since 2019.`

	keywords := ExtractKeywords(text)

	require.NotEmpty(t, keywords)
	assert.Equal(t, "selenium", keywords[0], "most frequent term first")
	assert.Contains(t, keywords, "playwright")
	assert.Contains(t, keywords, "docker")
	assert.NotContains(t, keywords, "with", "stopwords filtered")
	assert.NotContains(t, keywords, "experience", "filler filtered")
	assert.NotContains(t, keywords, "2019", "numbers filtered")
	assert.NotContains(t, keywords, "qa", "tokens below minimum length filtered")
}

func TestExtractKeywordsEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
	assert.Empty(t, ExtractKeywords("a an it 123 42"))
}

func TestExtractKeywordsCapped(t *testing.T) {
	var text string
	for i := 0; i < 200; i++ {
		text += " keyword" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}

	keywords := ExtractKeywords(text)

	assert.LessOrEqual(t, len(keywords), maxKeywords)
}

func TestExtractKeywordsKeepsTechTokens(t *testing.T) {
	keywords := ExtractKeywords("c++ c++ c# golang golang golang")

	assert.Contains(t, keywords, "c++")
	assert.Contains(t, keywords, "golang")
}

func TestReadTextPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Go developer"), 0o644))

	text, err := ReadText(path)

	require.NoError(t, err)
	assert.Equal(t, "Go developer", text)
}

func TestReadTextMissingFile(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "missing.txt"))

	assert.Error(t, err)
}

func TestReadTextEmptyPath(t *testing.T) {
	_, err := ReadText("")

	assert.Error(t, err)
}
