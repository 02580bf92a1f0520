package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/Brownie44l1/doodle-api/pkg/client"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8000", "base URL of the doodle API")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] image...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	c := client.New(*serverURL, *timeout)

	failed := false
	for _, path := range flag.Args() {
		if err := classify(c, path); err != nil {
			log.Error("Prediction failed", zap.String("file", path), zap.Error(err))
			failed = true
		}
	}
	if failed {
		_ = log.Sync()
		os.Exit(1)
	}
}

func classify(c *client.Client, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := c.Predict(context.Background(), filepath.Base(path), f)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s (%.2f%%)\n", path, result.Prediction, result.Confidence)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, p := range result.Top5 {
		fmt.Fprintf(w, "  %d.\t%s\t%.2f%%\n", i+1, p.Class, p.Confidence)
	}
	return w.Flush()
}
