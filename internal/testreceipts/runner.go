package testreceipts

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/okian/tally/pkg/logger"
)

const percentageMultiplier = 100.0

// Run executes the complete receipt round-trip test: health check,
// generation, concurrent submission, then per-id points verification.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting tally receipt test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("receipts", config.NumReceipts),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	receipts, err := generateReceipts(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("receipt generation failed: %w", err)
	}

	if err := submitReceipts(ctx, config, receipts, stats); err != nil {
		return fmt.Errorf("receipt submission failed: %w", err)
	}

	if err := verifyPoints(ctx, config, receipts, stats); err != nil {
		return fmt.Errorf("points verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if stats.PointsMismatched > 0 {
		return fmt.Errorf("%d receipts returned unexpected point totals", stats.PointsMismatched)
	}

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// submitReceipts POSTs all receipts through a bounded worker pool,
// recording the identifier each accepted receipt comes back with.
func submitReceipts(ctx context.Context, config *Config, receipts []TestReceipt, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/receipts/process"

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		jobs = make(chan int)
	)

	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				resp, err := client.Post(ctx, url, receipts[i].Receipt)

				mu.Lock()
				stats.ReceiptsSubmitted++
				mu.Unlock()

				if err != nil {
					mu.Lock()
					stats.ReceiptsFailed++
					mu.Unlock()
					continue
				}
				if resp.StatusCode != http.StatusOK {
					_ = resp.Body.Close()
					mu.Lock()
					stats.ReceiptsFailed++
					mu.Unlock()
					continue
				}

				var ack ProcessResponse
				if err := decodeJSON(resp, &ack); err != nil || ack.ID == "" {
					mu.Lock()
					stats.ReceiptsFailed++
					mu.Unlock()
					continue
				}

				mu.Lock()
				receipts[i].ID = ack.ID
				stats.ReceiptsAccepted++
				mu.Unlock()

				if config.Verbose {
					logger.Get().Info(ctx, "receipt accepted",
						logger.String("id", ack.ID),
						logger.Int64("expected", receipts[i].Expected),
					)
				}
			}
		}()
	}

	for i := range receipts {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

// verifyPoints GETs every accepted receipt's points and compares them to
// the locally computed expectation.
func verifyPoints(ctx context.Context, config *Config, receipts []TestReceipt, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	for i := range receipts {
		if receipts[i].ID == "" {
			continue
		}
		url := fmt.Sprintf("%s/receipts/%s/points", config.BaseURL, receipts[i].ID)

		resp, err := client.Get(ctx, url)
		if err != nil {
			return fmt.Errorf("points lookup failed for %s: %w", receipts[i].ID, err)
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return fmt.Errorf("points lookup for %s returned status %d", receipts[i].ID, resp.StatusCode)
		}

		var body PointsResponse
		if err := decodeJSON(resp, &body); err != nil {
			return err
		}

		if body.Points == receipts[i].Expected {
			stats.PointsVerified++
		} else {
			stats.PointsMismatched++
			logger.Get().Warn(ctx, "points mismatch",
				logger.String("id", receipts[i].ID),
				logger.Int64("expected", receipts[i].Expected),
				logger.Int64("actual", body.Points),
			)
		}
	}
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, receiptsPerSecond float64
	if stats.ReceiptsSubmitted > 0 {
		successRate = float64(stats.ReceiptsAccepted) / float64(stats.ReceiptsSubmitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		receiptsPerSecond = float64(stats.ReceiptsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("receiptsGenerated", stats.ReceiptsGenerated),
		logger.Int("receiptsSubmitted", stats.ReceiptsSubmitted),
		logger.Int("receiptsAccepted", stats.ReceiptsAccepted),
		logger.Int("receiptsFailed", stats.ReceiptsFailed),
		logger.Int("pointsVerified", stats.PointsVerified),
		logger.Int("pointsMismatched", stats.PointsMismatched),
		logger.String("duration", stats.Duration.String()),
		logger.Any("successRate", successRate),
		logger.Any("receiptsPerSecond", receiptsPerSecond),
	)
}
