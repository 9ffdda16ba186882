package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/qcatools/qcamap.go/contrib/qcamapctl"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: %s [flags] <command> [args]

Commands:
  merge <base> <other>...    move all markers of the other categories to base
  duplicate <base> <name>    create category name with copies of base's markers
  sort                       renumber categories alphabetically
  dump                       export the project as JSON
  stats                      print marker counts per category

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	// Create config with defaults
	config := qcamapctl.NewConfig()

	flag.Usage = usage
	flag.StringVar(&config.Location, "location", "", "Coding view address or path, /projects/<id>/rq/<id>/coding (required)")
	flag.StringVar(&config.BaseURL, "url", config.BaseURL, "Service base URL used for bare locations")
	flag.StringVar(&config.Token, "token", config.Token, "Bearer token")
	flag.DurationVar(&config.Timeout, "timeout", config.Timeout, "Timeout per request")
	flag.StringVar(&config.RenameMerged, "rename-merged", "", "After merge, rename emptied categories with this format, e.g. \"%s (merged)\"")
	flag.IntVar(&config.WriteConcurrency, "write-concurrency", 0, "Maximum concurrent marker writes (0 means unlimited)")
	flag.StringVar(&config.Output, "output", "", "Dump output file (default stdout)")
	flag.BoolVar(&config.Verbose, "verbose", false, "Enable verbose logging")
	flag.StringVar(&config.LogFile, "log-file", "", "Write logs to this file")

	flag.Parse()

	if flag.NArg() > 0 {
		config.Command = flag.Arg(0)
		config.Args = flag.Args()[1:]
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := qcamapctl.Do(ctx, config, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
