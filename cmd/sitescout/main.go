package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sitescout/sitescout"
	"github.com/sitescout/sitescout/gemini"
	"github.com/sitescout/sitescout/goquery"
	"github.com/sitescout/sitescout/htmltomarkdown"
	scouthttp "github.com/sitescout/sitescout/http"
	"github.com/sitescout/sitescout/readability"
	"github.com/sitescout/sitescout/research"
	scoutslog "github.com/sitescout/sitescout/slog"
	"github.com/sitescout/sitescout/sqlite"
	"github.com/sitescout/sitescout/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Empty means no persistence. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Generator override for end-to-end testing. When nil, Run connects
	// to the Gemini API.
	Generator gemini.Generator
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: os.Getenv("SITESCOUT_DB"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitescout"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitescout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// Open database when a path is configured
	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	if m.DBPath != "" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SITESCOUT_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Records = sqlite.NewRecordService(m.DB)
	}

	gen := m.Generator
	if gen == nil {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		limiter := research.NewCallLimiter(cli.CallsPerMinute)
		gen = gemini.NewClient(client, cli.Model, limiter)
	}

	deps.Researcher = newAgent(gen, logger)
	deps.Batch = &research.Batch{
		Researcher:  deps.Researcher,
		Concurrency: cli.Concurrency,
	}

	return kongCtx.Run(deps)
}

// newAgent wires the full pipeline behind a single Researcher.
func newAgent(gen gemini.Generator, logger *slog.Logger) *research.Agent {
	direct := scouthttp.NewFetcher()
	content := &scouthttp.ContentFetcher{
		Direct: direct,
		Reader: scouthttp.NewReaderClient(),
		Extractor: &fallbackExtractor{
			primary:  trafilatura.NewExtractor(),
			fallback: readability.NewExtractor(),
		},
		Converter: htmltomarkdown.NewConverter(),
	}
	analyzer := &goquery.Analyzer{
		Fetcher:  direct,
		Sitemaps: scouthttp.NewSitemapService(nil),
	}

	return &research.Agent{
		Analyzer:  scoutslog.NewLoggingAnalyzer(analyzer, logger),
		Locator:   scoutslog.NewLoggingLocator(gemini.NewLocator(gen), logger),
		Fetcher:   scoutslog.NewLoggingContentFetcher(content, logger),
		Extractor: scoutslog.NewLoggingExtractor(gemini.NewExtractor(gen), logger),
		Cache:     research.NewCache(),
	}
}

// fallbackExtractor tries the primary HTML extractor and falls back to the
// secondary when the primary fails or finds no content.
type fallbackExtractor struct {
	primary  sitescout.HTMLExtractor
	fallback sitescout.HTMLExtractor
}

func (e *fallbackExtractor) Extract(html string) (*sitescout.ExtractResult, error) {
	result, err := e.primary.Extract(html)
	if err == nil && result.ContentHTML != "" {
		return result, nil
	}
	return e.fallback.Extract(html)
}
