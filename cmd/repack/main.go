// Command repack converts a ZIP archive on disk into a deduplicated,
// compressed tar archive.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rsuregar/repack"
)

type config struct {
	algorithm string
	level     int
	output    string
	noDedup   bool
	noVerify  bool
	quiet     bool
	verbose   bool
}

func parseFlags() (config, string) {
	var cfg config
	flag.StringVar(&cfg.algorithm, "algorithm", "gzip", "compression codec: gzip, bzip2, brotli, xz")
	flag.IntVar(&cfg.level, "level", 6, "compression level, 1 (fastest) to 9 (best)")
	flag.StringVar(&cfg.output, "o", "", "output path (default: input name with codec extension)")
	flag.BoolVar(&cfg.noDedup, "no-dedup", false, "store duplicate members instead of collapsing them")
	flag.BoolVar(&cfg.noVerify, "no-verify", false, "skip the compressed-output checksum")
	flag.BoolVar(&cfg.quiet, "q", false, "suppress progress output")
	flag.BoolVar(&cfg.verbose, "v", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] input.zip\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	return cfg, flag.Arg(0)
}

func main() {
	cfg, input := parseFlags()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	if cfg.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	algo, err := repack.ParseAlgorithm(cfg.algorithm)
	if err != nil {
		log.Fatal(err)
	}

	opts := []repack.Option{
		repack.WithAlgorithm(algo),
		repack.WithLevel(cfg.level),
		repack.WithDeduplication(!cfg.noDedup),
		repack.WithIntegrityCheck(!cfg.noVerify),
		repack.WithLogger(logger),
	}
	if !cfg.quiet {
		opts = append(opts, repack.WithProgress(func(ev repack.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "\r%-13s %3.0f%%", ev.Stage, ev.Percent)
		}))
	}

	c, err := repack.New(opts...)
	if err != nil {
		log.Fatal(err)
	}

	src, err := os.ReadFile(input)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := c.Convert(ctx, src)
	if !cfg.quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		log.Fatal(err)
	}

	output := cfg.output
	if output == "" {
		output = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + algo.Extension()
	}
	if err := os.WriteFile(output, res.Compressed, 0o644); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %d -> %d bytes (%.1f%% saved, %s level %d, %s)\n",
		output, res.OriginalSize, res.CompressedSize, res.Ratio,
		res.Algorithm, cfg.level, res.Elapsed.Round(time.Millisecond))
	for _, s := range res.DuplicateSummaries {
		fmt.Printf("  deduplicated: %s\n", s)
	}
	if res.CompressedChecksum != "" {
		fmt.Printf("  sha256: %s\n", res.CompressedChecksum)
	}
}
