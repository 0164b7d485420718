package runner

var (
	// Version is injected at build time via -ldflags
	Version = "dev"

	// BuildDate is injected at build time via -ldflags
	BuildDate = "unknown"

	// Commit is injected at build time via -ldflags
	Commit = "none"
)
