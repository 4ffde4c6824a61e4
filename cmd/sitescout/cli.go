package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/sitescout/sitescout"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Researcher sitescout.Researcher
	Batch      sitescout.BatchRunner
	Records    sitescout.RecordStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Model          string  `default:"gemini-2.5-flash" help:"Gemini model to use"`
	CallsPerMinute float64 `default:"50" help:"Inference call budget per minute"`
	Concurrency    int     `short:"c" default:"4" help:"Concurrent domain limit for batches"`
	DB             string  `help:"SQLite database path for persisting results"`
	Verbose        bool    `short:"v" help:"Log pipeline steps to stderr"`

	Research ResearchCmd `cmd:"" help:"Research one question against one company domain"`
	Batch    BatchCmd    `cmd:"" help:"Research queries against companies from a CSV file"`
	Serve    ServeCmd    `cmd:"" help:"Serve the research pipeline over HTTP"`
}

// ResearchCmd is the "research" subcommand.
type ResearchCmd struct {
	Domain string `arg:"" help:"Company domain, e.g. acme.com"`
	Query  string `arg:"" help:"Research question"`
	Format string `short:"f" default:"" help:"Output format: boolean, list, text or structured"`
	JSON   bool   `help:"Print the full result record as JSON"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Input   string   `arg:"" type:"existingfile" help:"Input CSV with company_name,domain rows"`
	Query   []string `short:"q" required:"" help:"Research query (repeatable)"`
	Format  string   `short:"f" default:"" help:"Output format: boolean, list, text or structured"`
	Output  string   `short:"o" help:"Output CSV path (default stdout)"`
	JSONOut string   `name:"json-out" help:"Also export full records as JSON to this path"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address"`
}
