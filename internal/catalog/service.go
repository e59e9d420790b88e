package catalog

import (
	"context"

	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	"github.com/blumenauautomacao/storefront-backend/pkg/db/models"
)

// Service exposes catalog reads and the export feeds built from them.
type Service struct {
	repo  *Repository
	store config.StoreConfig
}

// NewService builds a catalog service.
func NewService(repo *Repository, store config.StoreConfig) *Service {
	return &Service{repo: repo, store: store}
}

// List returns products matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]models.Product, error) {
	return s.repo.List(ctx, filter)
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// GoogleFeed renders the filtered catalog as a Google Merchant RSS feed.
func (s *Service) GoogleFeed(ctx context.Context, filter Filter) ([]byte, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return renderGoogleFeed(s.store, products)
}

// CSVFeed renders the filtered catalog as a spreadsheet export.
func (s *Service) CSVFeed(ctx context.Context, filter Filter) ([]byte, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return renderCSV(products)
}
