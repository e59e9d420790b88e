package scraper

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blumenauautomacao/storefront-backend/internal/extractor"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
	"github.com/blumenauautomacao/storefront-backend/pkg/metrics"
)

// MaxBatchSize bounds the fan-out of one batch probe call.
const MaxBatchSize = 10

// CheckResult is the price/stock probe outcome for one URL. Failures are
// reported per-URL, not as request errors.
type CheckResult struct {
	Success   bool      `json:"success"`
	URL       string    `json:"url"`
	Supplier  string    `json:"supplier,omitempty"`
	Price     *float64  `json:"price,omitempty"`
	InStock   bool      `json:"inStock"`
	Quantity  *int      `json:"quantity,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

// DescribeResult is the full structured extraction for one URL.
type DescribeResult struct {
	Success    bool           `json:"success"`
	URL        string         `json:"url"`
	Supplier   string         `json:"supplier"`
	HasContent bool           `json:"hasContent"`
	Info       extractor.Info `json:"info"`
	CheckedAt  time.Time      `json:"checkedAt"`
}

// Service runs supplier page probes. Each call is request-scoped: no state
// is shared between requests.
type Service struct {
	registry *Registry
	fetcher  Fetcher
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger
}

// NewService builds a scraper service.
func NewService(registry *Registry, fetcher Fetcher, m *metrics.StorefrontMetrics, logg *logger.Logger) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	return &Service{registry: registry, fetcher: fetcher, metrics: m, logg: logg}, nil
}

// CheckURL probes one product URL for price and stock. A URL outside the
// supplier allow-list is a validation error; a fetch failure is reported in
// the result itself.
func (s *Service) CheckURL(ctx context.Context, rawURL string) (CheckResult, error) {
	supplier, err := s.registry.Match(rawURL, "")
	if err != nil {
		return CheckResult{}, err
	}
	return s.probe(ctx, rawURL, supplier), nil
}

// CheckBatch probes up to MaxBatchSize URLs concurrently. Workers never
// cancel each other: every URL reports its own success or failure.
func (s *Service) CheckBatch(ctx context.Context, urls []string) ([]CheckResult, error) {
	if len(urls) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "urls is required")
	}
	if len(urls) > MaxBatchSize {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("at most %d urls per batch", MaxBatchSize))
	}

	results := make([]CheckResult, len(urls))
	group := &errgroup.Group{}
	group.SetLimit(MaxBatchSize)

	for i, rawURL := range urls {
		group.Go(func() error {
			supplier, err := s.registry.Match(rawURL, "")
			if err != nil {
				results[i] = CheckResult{
					URL:       rawURL,
					Error:     pkgerrors.As(err).Message(),
					CheckedAt: time.Now().UTC(),
				}
				return nil
			}
			results[i] = s.probe(ctx, rawURL, supplier)
			return nil
		})
	}

	// workers always return nil; Wait only joins them
	_ = group.Wait()
	return results, nil
}

// Describe fetches a product page and runs the full extraction, restricted
// to the named supplier.
func (s *Service) Describe(ctx context.Context, rawURL, supplierName string) (*DescribeResult, error) {
	supplier, err := s.registry.Match(rawURL, supplierName)
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		ctx = s.logg.WithSupplier(ctx, supplier.Name)
	}

	started := time.Now()
	html, err := s.fetcher.Fetch(ctx, rawURL)
	s.metrics.ObserveScrape(supplier.Name, time.Since(started))
	if err != nil {
		s.metrics.IncScrape(supplier.Name, "error")
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "url", rawURL), "supplier fetch failed")
		}
		return nil, err
	}
	s.metrics.IncScrape(supplier.Name, "ok")

	info := extractor.Extract(html)
	return &DescribeResult{
		Success:    true,
		URL:        rawURL,
		Supplier:   supplier.Name,
		HasContent: info.HasContent(),
		Info:       info,
		CheckedAt:  time.Now().UTC(),
	}, nil
}

func (s *Service) probe(ctx context.Context, rawURL string, supplier *Supplier) CheckResult {
	if s.logg != nil {
		ctx = s.logg.WithSupplier(ctx, supplier.Name)
	}

	started := time.Now()
	html, err := s.fetcher.Fetch(ctx, rawURL)
	s.metrics.ObserveScrape(supplier.Name, time.Since(started))
	if err != nil {
		s.metrics.IncScrape(supplier.Name, "error")
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "url", rawURL), "supplier fetch failed")
		}
		return CheckResult{
			URL:       rawURL,
			Supplier:  supplier.Name,
			Error:     "failed to fetch supplier page",
			CheckedAt: time.Now().UTC(),
		}
	}
	s.metrics.IncScrape(supplier.Name, "ok")

	info := extractor.Extract(html)
	return CheckResult{
		Success:   true,
		URL:       rawURL,
		Supplier:  supplier.Name,
		Price:     info.Price,
		InStock:   info.InStock,
		Quantity:  info.Quantity,
		CheckedAt: time.Now().UTC(),
	}
}
