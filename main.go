// Package main provides the sitemap CLI entrypoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Wicoco/sitemap/checker"
	"github.com/Wicoco/sitemap/result"
	"github.com/Wicoco/sitemap/sitemap"
	"github.com/Wicoco/sitemap/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	check := flag.Bool("check", false, "check availability of every URL")
	out := flag.String("out", "", "write a sitemap XML document to this file")
	concurrency := flag.Int("concurrency", checker.DefaultConcurrency, "upper bound on simultaneous checks")
	timeout := flag.Duration("timeout", checker.DefaultTimeout, "per-attempt request timeout")
	retries := flag.Int("retries", checker.DefaultMaxRetries, "retries for transient failures")
	retryDelay := flag.Duration("retry-delay", checker.DefaultRetryDelay, "base delay between retries")
	chunkPause := flag.Duration("chunk-pause", checker.DefaultChunkPause, "pause between chunks of checks")
	rateLimit := flag.Int("rate-limit", 0, "requests per second, 0 = unlimited")
	userAgent := flag.String("user-agent", checker.DefaultUserAgent, "user agent string")
	respectRobots := flag.Bool("respect-robots", false, "skip URLs disallowed by robots.txt")
	format := flag.String("format", "text", "report format: text, json, or csv")
	noTUI := flag.Bool("no-tui", false, "plain progress output instead of the interactive UI")
	slowThreshold := flag.Duration("slow-threshold", result.DefaultSlowThreshold, "working responses above this count as slow")

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sitemap [flags] <input-file>")
		fmt.Fprintln(os.Stderr, "Flags:")
		flag.PrintDefaults()
		return 1
	}

	records, warnings, err := sitemap.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s line %d: %s: %q\n", flag.Arg(0), w.Line, w.Reason, w.Text)
	}

	if *out != "" {
		if err := writeSitemap(*out, records); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "wrote %d URLs to %s\n", len(records), *out)
		if !*check {
			return 0
		}
	}

	if !*check {
		fmt.Fprintf(os.Stderr, "loaded %d URLs from %s (pass -check or -out to do something with them)\n", len(records), flag.Arg(0))
		return 0
	}

	switch *format {
	case "text", "json", "csv":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		return 1
	}

	cfg := checker.Config{
		Concurrency:   *concurrency,
		Timeout:       *timeout,
		MaxRetries:    *retries,
		RetryDelay:    *retryDelay,
		ChunkPause:    *chunkPause,
		RateLimit:     *rateLimit,
		UserAgent:     *userAgent,
		RespectRobots: *respectRobots,
		SlowThreshold: *slowThreshold,
	}

	// JSON and CSV go to stdout, so progress must stay off it.
	if *noTUI || *format != "text" {
		return runHeadless(cfg, records, *format)
	}
	return runTUI(cfg, records)
}

func runTUI(cfg checker.Config, records []sitemap.URLRecord) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan checker.Event, 100)
	chk := checker.New(cfg, events)

	program := tea.NewProgram(tui.NewModel(ctx, cancel, chk, records, events))
	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if finalModel.(tui.Model).Succeeded() {
		return 0
	}
	return 1
}

func runHeadless(cfg checker.Config, records []sitemap.URLRecord, format string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	events := make(chan checker.Event, 100)
	chk := checker.New(cfg, events)

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for evt := range events {
			fmt.Fprint(os.Stderr, glyph(evt.Bucket))
			if evt.Marker {
				fmt.Fprintf(os.Stderr, " %d/%d\n", evt.Processed, evt.Total)
			}
		}
	}()

	rs := chk.Run(ctx, records)
	close(events)
	<-drained
	fmt.Fprintln(os.Stderr)

	rep := result.BuildReport(rs, cfg.SlowThreshold)

	switch format {
	case "json":
		if err := result.WriteJSON(os.Stdout, rs, rep); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	case "csv":
		if err := result.WriteCSV(os.Stdout, rs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	default:
		result.PrintReport(os.Stdout, rs, rep)
	}

	if rep.Success {
		return 0
	}
	return 1
}

func glyph(bucket result.Bucket) string {
	switch bucket {
	case result.BucketWorking:
		return "."
	case result.BucketWarnings:
		return "R"
	case result.BucketTimeouts:
		return "T"
	default:
		return "E"
	}
}

func writeSitemap(path string, records []sitemap.URLRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := sitemap.WriteXML(f, records); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
