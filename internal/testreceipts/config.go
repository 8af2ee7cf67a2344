// Package testreceipts drives the live service end to end: it submits
// generated receipts and verifies the returned points against a locally
// computed expected total.
package testreceipts

import (
	"time"

	"github.com/okian/tally/internal/domain/receipt"
)

// Config holds configuration for the receipt test.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumReceipts int           // Number of receipts to generate
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	Verbose     bool          // Enable verbose logging
}

// TestReceipt pairs a generated receipt with the point total the local
// calculator awards it.
type TestReceipt struct {
	Receipt  receipt.Receipt
	Expected int64

	// ID is filled in after a successful submission.
	ID string
}

// ProcessResponse mirrors the response from POST /receipts/process.
type ProcessResponse struct {
	ID string `json:"id"`
}

// PointsResponse mirrors the response from GET /receipts/{id}/points.
type PointsResponse struct {
	Points int64 `json:"points"`
}

// Stats holds test statistics.
type Stats struct {
	ReceiptsGenerated int
	ReceiptsSubmitted int
	ReceiptsAccepted  int
	ReceiptsFailed    int
	PointsVerified    int
	PointsMismatched  int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
