// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	"github.com/okian/tally/internal/adapters/repository"
	"github.com/okian/tally/internal/domain/points"
	"github.com/okian/tally/internal/domain/receipt"
	"github.com/okian/tally/pkg/logger"
	"github.com/okian/tally/pkg/metrics"
)

// Service orchestrates receipt processing: structural validation, point
// calculation, and identifier-keyed storage. Each call is a single-shot
// transaction with no intermediate visible state.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	validator  *receipt.Validator
	calculator points.Calculator

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a points store, replacing the in-memory default.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCalculator injects a points calculator.
func WithCalculator(c points.Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.calculator = c
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.calculator == nil {
		s.calculator = points.NewRuleCalculator()
	}
	s.validator = receipt.NewValidator()

	s.started = true
	s.logger.Info(ctx, "receipt service started")
	return nil
}

// Stop shuts the service down. The store is in-memory, so there is
// nothing to flush; the flag only prevents double starts.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "receipt service stopped")
}

// ProcessReceipt validates r, computes its points, stores them under a
// fresh identifier, and returns that identifier. Structural validation
// failures and unparsable field text both surface as receipt.ErrInvalid;
// the caller cannot and need not tell them apart.
func (s *Service) ProcessReceipt(ctx context.Context, r *receipt.Receipt) (string, error) {
	if !s.running() {
		return "", ErrNotStarted
	}
	if err := s.validator.Validate(r); err != nil {
		metrics.RecordReceiptRejected()
		s.logger.Debug(ctx, "receipt rejected", logger.Error(err))
		return "", err
	}

	pts, err := s.calculator.Calculate(ctx, r)
	if err != nil {
		metrics.RecordReceiptRejected()
		s.logger.Debug(ctx, "receipt rejected", logger.Error(err))
		return "", err
	}

	id, err := s.store.Insert(ctx, pts)
	if err != nil {
		return "", err
	}

	metrics.RecordReceiptProcessed()
	metrics.RecordPointsAwarded(float64(pts))
	s.logger.Info(ctx, "receipt processed",
		logger.String("id", id),
		logger.Int64("points", pts),
	)
	return id, nil
}

// Points returns the stored total for id. Unknown identifiers surface
// as repository.ErrNotFound.
func (s *Service) Points(ctx context.Context, id string) (int64, error) {
	if !s.running() {
		return 0, ErrNotStarted
	}
	pts, err := s.store.Points(ctx, id)
	if err != nil {
		metrics.RecordLookupMiss()
		return 0, err
	}
	metrics.RecordLookup()
	return pts, nil
}

func (s *Service) running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.started {
		count := s.store.Count(context.Background())
		stats["receipts"] = count
		metrics.UpdateStoredReceipts(count)
	}
	return stats
}
