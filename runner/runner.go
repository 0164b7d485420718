package runner

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/sadewadee/job-applier/tlmt"
	"github.com/sadewadee/job-applier/tlmt/gonoop"
	"github.com/sadewadee/job-applier/tlmt/goposthog"
)

const (
	RunModeApply = iota + 1
	RunModeInstallPlaywright
)

var (
	ErrInvalidRunMode = errors.New("invalid run mode")
)

// Runner is one of the application's run modes
type Runner interface {
	Run(context.Context) error
	Close(context.Context) error
}

// Config is the process configuration, read from flags with environment
// fallbacks. A .env file in the working directory is honored.
type Config struct {
	RunMode int

	// Board access
	BaseURL  string
	Email    string
	Password string
	Headful  bool

	// Search
	SearchTerms []string
	TermsFile   string
	MaxPages    int

	// Batch processing
	Concurrency     int
	InterCardDelay  time.Duration
	InterBatchDelay time.Duration
	NavRetries      int

	// Relevance scoring
	OpenAIKey   string
	OpenAIModel string
	ResumePath  string

	// Output
	ResultsFile string
	DBPath      string
	FlushEvery  int

	// Selector overrides
	SelectorsFile string

	// Cross-run dedup
	RedisAddr string
	RedisPass string
	RedisDB   int

	DryRun           bool
	DisableTelemetry bool
}

// ParseConfig parses flags and environment into a Config
func ParseConfig() *Config {
	// best effort, absence of a .env file is fine
	_ = godotenv.Load()

	cfg := Config{}

	if os.Getenv("PLAYWRIGHT_INSTALL_ONLY") == "1" {
		cfg.RunMode = RunModeInstallPlaywright

		return &cfg
	}

	var (
		terms   string
		install bool
	)

	flag.StringVar(&cfg.BaseURL, "base-url", "https://www.linkedin.com", "job board base URL")
	flag.StringVar(&cfg.Email, "email", "", "board login email [env: JOBBOARD_EMAIL]")
	flag.StringVar(&cfg.Password, "password", "", "board login password [env: JOBBOARD_PASSWORD]")
	flag.BoolVar(&cfg.Headful, "headful", false, "open a visible browser window")
	flag.StringVar(&terms, "terms", "", "comma separated search terms")
	flag.StringVar(&cfg.TermsFile, "terms-file", "", "path to a file with search terms (one per line)")
	flag.IntVar(&cfg.MaxPages, "max-pages", 3, "maximum result pages per search term")
	flag.IntVar(&cfg.Concurrency, "c", 2, "cards processed concurrently per group")
	flag.DurationVar(&cfg.InterCardDelay, "card-delay", 3*time.Second, "stagger between tab openings inside a group")
	flag.DurationVar(&cfg.InterBatchDelay, "batch-delay", 5*time.Second, "sleep between concurrency groups")
	flag.IntVar(&cfg.NavRetries, "nav-retries", 2, "extra attempts per page load")
	flag.StringVar(&cfg.OpenAIModel, "model", "", "OpenAI model for relevance scoring")
	flag.StringVar(&cfg.ResumePath, "resume", "", "path to the resume file (PDF or plain text)")
	flag.StringVar(&cfg.ResultsFile, "results", "results.xlsx", "path to the XLSX results file")
	flag.StringVar(&cfg.DBPath, "db", "job-applier.db", "path to the SQLite database")
	flag.IntVar(&cfg.FlushEvery, "flush-every", 10, "persist the results file every N outcomes")
	flag.StringVar(&cfg.SelectorsFile, "selectors", "", "path to a YAML selector override file")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", "", "Redis address (host:port) for cross-run deduplication")
	flag.StringVar(&cfg.RedisPass, "redis-pass", "", "Redis password")
	flag.IntVar(&cfg.RedisDB, "redis-db", 0, "Redis database number")
	flag.BoolVar(&cfg.DryRun, "dry-run", false, "run the pipeline but never click apply")
	flag.BoolVar(&install, "install", false, "install playwright browsers and exit")

	flag.Parse()

	if cfg.Email == "" {
		cfg.Email = os.Getenv("JOBBOARD_EMAIL")
	}

	if cfg.Password == "" {
		cfg.Password = os.Getenv("JOBBOARD_PASSWORD")
	}

	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	if terms != "" {
		cfg.SearchTerms = SplitTerms(terms)
	}

	if install {
		cfg.RunMode = RunModeInstallPlaywright

		return &cfg
	}

	if cfg.Email == "" || cfg.Password == "" {
		panic("board credentials are required (flags -email/-password or JOBBOARD_EMAIL/JOBBOARD_PASSWORD)")
	}

	if len(cfg.SearchTerms) == 0 && cfg.TermsFile == "" {
		panic("at least one search term is required (-terms or -terms-file)")
	}

	if cfg.Concurrency < 1 {
		panic("Concurrency must be greater than 0")
	}

	if cfg.MaxPages < 1 {
		panic("MaxPages must be greater than 0")
	}

	cfg.RunMode = RunModeApply

	return &cfg
}

var (
	telemetryOnce sync.Once
	telemetry     tlmt.Telemetry
)

// Telemetry returns the process-wide telemetry client
func Telemetry() tlmt.Telemetry {
	telemetryOnce.Do(func() {
		if os.Getenv("DISABLE_TELEMETRY") == "1" {
			telemetry = gonoop.New()

			return
		}

		apiKey := os.Getenv("POSTHOG_API_KEY")
		if apiKey == "" {
			telemetry = gonoop.New()

			return
		}

		val, err := goposthog.New(apiKey, "https://eu.i.posthog.com")
		if err != nil || val == nil {
			telemetry = gonoop.New()

			return
		}

		telemetry = val
	})

	return telemetry
}

func wrapText(text string, width int) []string {
	var lines []string

	currentLine := ""
	currentWidth := 0

	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width {
			lines = append(lines, currentLine)
			currentLine = string(r)
			currentWidth = runeWidth
		} else {
			currentLine += string(r)
			currentWidth += runeWidth
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

func banner(messages []string, width int) string {
	if width <= 0 {
		var err error

		width, _, err = term.GetSize(0)
		if err != nil {
			width = 80
		}
	}

	if width < 20 {
		width = 20
	}

	contentWidth := width - 4

	var wrappedLines []string
	for _, message := range messages {
		wrappedLines = append(wrappedLines, wrapText(message, contentWidth)...)
	}

	var builder strings.Builder

	builder.WriteString("╔" + strings.Repeat("═", width-2) + "╗\n")

	for _, line := range wrappedLines {
		lineWidth := runewidth.StringWidth(line)
		paddingRight := contentWidth - lineWidth

		if paddingRight < 0 {
			paddingRight = 0
		}

		builder.WriteString(fmt.Sprintf("║ %s%s ║\n", line, strings.Repeat(" ", paddingRight)))
	}

	builder.WriteString("╚" + strings.Repeat("═", width-2) + "╝\n")

	return builder.String()
}

// Banner prints the startup banner to stderr
func Banner() {
	message1 := "🤖 Job Applier - automated job-board applications"
	message2 := fmt.Sprintf("v%s (%s)", Version, BuildDate)

	fmt.Fprintln(os.Stderr, banner([]string{message1, message2}, 0))
}
