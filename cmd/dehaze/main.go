// Package main provides the dehaze command.
//
// Usage:
//
//	dehaze -weights dehazer.safetensors -out result/ [-workers N] [-suffix _dehazed] img1.png img2.jpg ...
//
// Each input is written to <out>/<name><suffix><ext>. Failures are logged and
// the remaining images are still processed; the exit status is 1 if any image
// failed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/born-ml/dehaze/backend/cpu"
	"github.com/born-ml/dehaze/dehaze"
)

const version = "v0.1.0"

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := log.New(os.Stderr, "dehaze: ", 0)
	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		if !errors.Is(err, errUsage) {
			logger.Print(err)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("dehaze", flag.ContinueOnError)
	fs.SetOutput(logger.Writer())
	weights := fs.String("weights", "dehazer.safetensors", "SafeTensors file with e_conv1..e_conv5 weights")
	outDir := fs.String("out", "result", "Directory for dehazed images")
	workers := fs.Int("workers", 1, "Images processed concurrently")
	suffix := fs.String("suffix", dehaze.DefaultSuffix, "Suffix appended to output file names")
	showVersion := fs.Bool("version", false, "Print version and exit")
	verbose := fs.Bool("v", false, "Print the network architecture")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: dehaze [flags] image...\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *showVersion {
		fmt.Fprintf(stdout, "dehaze %s\n", version)
		return nil
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	store, err := dehaze.LoadWeights(*weights)
	if err != nil {
		return err
	}
	net, err := dehaze.NewModel(store, cpu.New())
	if err != nil {
		return err
	}
	if *verbose {
		fmt.Fprintln(stdout, net)
	}

	opts := dehaze.DefaultOptions()
	opts.Workers = *workers
	opts.Suffix = *suffix
	d := dehaze.New(net, opts)

	start := time.Now()
	results := d.ProcessFiles(ctx, fs.Args(), *outDir)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Printf("%s: %v", r.Input, r.Err)
			continue
		}
		fmt.Fprintf(stdout, "%s -> %s (%v)\n", r.Input, r.Output, r.Elapsed.Round(time.Millisecond))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(results))
	}
	fmt.Fprintf(stdout, "dehazed %d images in %v\n", len(results), time.Since(start).Round(time.Millisecond))
	return nil
}
