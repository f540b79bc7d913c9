// Package cli is the batch front end for the DTF print optimizer: it parses
// flags and environment defaults, fans input images out over a bounded worker
// pool and writes the optimized PNGs next to the sources (or wherever -out
// points).
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkforge/dtfopt/pkg/optimize"
)

// Version is the build version, overridden at link time.
var Version = "0.1.0"

// Run executes the command line and returns the process exit code.
func Run(args []string) int {
	// .env is optional; fall through silently when absent
	_ = godotenv.Load()

	if len(args) > 0 && args[0] == "update" {
		if err := CheckForUpdates(); err != nil {
			fmt.Fprintf(os.Stderr, "dtfopt: %v\n", err)
			return 1
		}
		return 0
	}

	fs := flag.NewFlagSet("dtfopt", flag.ContinueOnError)
	substrateFlag := fs.String("substrate", envOr("DTFOPT_SUBSTRATE", "white"), "target substrate color: black, white, grey or color")
	styleFlag := fs.String("style", envOr("DTFOPT_STYLE", "clean"), "texture style: clean, halftone or grunge")
	outFlag := fs.String("out", "", "output file (single input) or directory (multiple inputs)")
	workersFlag := fs.Int("workers", envIntOr("DTFOPT_WORKERS", runtime.GOMAXPROCS(0)), "number of images processed in parallel")
	timeoutFlag := fs.Duration("timeout", 30*time.Second, "per-image wall clock budget, fetch included")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: dtfopt [flags] <image-or-url> [more inputs...]\n")
		fmt.Fprintf(fs.Output(), "       dtfopt update\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		fs.Usage()
		return 2
	}

	substrate, err := optimize.ParseSubstrate(*substrateFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dtfopt: %v\n", err)
		return 2
	}
	style, err := optimize.ParseStyle(*styleFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dtfopt: %v\n", err)
		return 2
	}
	opts := optimize.Options{Substrate: substrate, Style: style}

	engine := optimize.New()

	workers := *workersFlag
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	// Processing is CPU-bound per image with no shared state, so images run
	// fully in parallel; the pool bound keeps memory proportional to the
	// worker count rather than the batch size.
	jobs := make(chan string, len(inputs))
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for in := range jobs {
				if err := processOne(engine, in, *outFlag, len(inputs) > 1, opts, *timeoutFlag); err != nil {
					fmt.Fprintf(os.Stderr, "dtfopt: %s: %v\n", in, err)
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}
		}()
	}
	for _, in := range inputs {
		jobs <- in
	}
	close(jobs)
	wg.Wait()

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "dtfopt: %d of %d inputs failed\n", failed, len(inputs))
		return 1
	}
	return 0
}

func processOne(engine *optimize.Engine, in, out string, multi bool, opts optimize.Options, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	data, err := engine.Optimize(ctx, in, opts)
	if err != nil {
		return err
	}
	path, err := outputPath(in, out, multi)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("%s -> %s (%d bytes)\n", in, path, len(data))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
