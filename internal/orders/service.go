package orders

import (
	"context"
	"strings"

	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
)

// Service exposes order reads for the storefront and for reporting.
type Service struct {
	repo *Repository
}

// NewService builds an orders service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Get looks an order up by its external reference.
func (s *Service) Get(ctx context.Context, reference string) (*OrderResponse, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference is required")
	}

	order, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// DailyRevenue returns the approved-order revenue report.
func (s *Service) DailyRevenue(ctx context.Context) ([]DailyRevenueRow, error) {
	return s.repo.DailyRevenue(ctx)
}
