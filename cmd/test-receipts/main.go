package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/tally/internal/testreceipts"
	"github.com/okian/tally/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumReceipts      = 10000
	defaultWorkerMultiplier = 2
	defaultTimeout          = 30 * time.Second
	defaultTestTimeout      = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numReceipts = flag.Int("receipts", defaultNumReceipts, "Number of receipts to generate and submit")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg := &testreceipts.Config{
		BaseURL:     *baseURL,
		NumReceipts: *numReceipts,
		Workers:     *workers,
		Timeout:     *timeout,
		Verbose:     *verbose,
	}

	if err := testreceipts.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "receipt test failed", logger.Error(err))
		os.Exit(1)
	}
}
