package shipping

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
	"github.com/blumenauautomacao/storefront-backend/pkg/freight"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// CartItem is one cart line for an estimate. Only the identifier and the
// quantity matter here; prices never travel with shipping requests.
type CartItem struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// Option is one ranked shipping choice returned to the storefront.
type Option struct {
	Name         string          `json:"name"`
	Carrier      string          `json:"carrier,omitempty"`
	Price        decimal.Decimal `json:"price"`
	DeliveryDays int             `json:"delivery_days"`
}

// Estimate is the full response for one postal code and cart.
type Estimate struct {
	CEP        string   `json:"cep"`
	IsFreeZone bool     `json:"is_free_zone"`
	Options    []Option `json:"options"`
}

// Quoter is the carrier rate source. *freight.Client satisfies it.
type Quoter interface {
	Quotes(ctx context.Context, req freight.QuoteRequest) ([]freight.Quote, error)
}

// Service ranks shipping options for a destination CEP.
type Service struct {
	cfg    config.ShippingConfig
	quoter Quoter
	logg   *logger.Logger
}

// NewService builds a shipping estimator. quoter may be nil when no carrier
// integration is configured; the fixed-rate table then covers every region.
func NewService(cfg config.ShippingConfig, quoter Quoter, logg *logger.Logger) *Service {
	return &Service{cfg: cfg, quoter: quoter, logg: logg}
}

// Estimate validates the destination CEP and assembles the ranked option
// list. Carrier failures are logged and degrade to the fallback table only.
func (s *Service) Estimate(ctx context.Context, rawCEP string, items []CartItem) (*Estimate, error) {
	cep := nonDigitRe.ReplaceAllString(rawCEP, "")
	if len(cep) != 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cep must have exactly 8 digits")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items is required")
	}
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("items[%d].id is required", i))
		}
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("items[%d].quantity must be at least 1", i))
		}
	}

	estimate := &Estimate{CEP: cep, IsFreeZone: s.isFreeZone(cep)}

	var ranked []Option
	if quotes := s.carrierQuotes(ctx, cep, items[0]); len(quotes) > 0 {
		ranked = quotes
	} else {
		ranked = s.fallbackOptions(cep)
	}

	// stable keeps ingestion order among equal prices
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price.LessThan(ranked[j].Price)
	})

	if estimate.IsFreeZone {
		free := Option{
			Name:         "Entrega local gratuita",
			Price:        decimal.Zero,
			DeliveryDays: s.cfg.FreeZoneLeadDays,
		}
		ranked = append([]Option{free}, ranked...)
	}

	estimate.Options = ranked
	return estimate, nil
}

func (s *Service) isFreeZone(cep string) bool {
	for _, prefix := range s.cfg.FreeZonePrefixes {
		prefix = strings.TrimSpace(prefix)
		if prefix != "" && strings.HasPrefix(cep, prefix) {
			return true
		}
	}
	return false
}

func (s *Service) carrierQuotes(ctx context.Context, cep string, first CartItem) []Option {
	if s.quoter == nil {
		return nil
	}

	if s.cfg.QuoteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.QuoteTimeout)
		defer cancel()
	}

	quotes, err := s.quoter.Quotes(ctx, freight.QuoteRequest{
		OriginCEP:      s.cfg.OriginCEP,
		DestinationCEP: cep,
		ProductID:      first.ID,
		Quantity:       first.Quantity,
	})
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "cep", cep), "carrier quote failed, using fallback rates")
		}
		return nil
	}

	options := make([]Option, 0, len(quotes))
	for _, quote := range quotes {
		options = append(options, Option{
			Name:         quote.Service,
			Carrier:      quote.Carrier,
			Price:        quote.Price,
			DeliveryDays: quote.DeliveryDays,
		})
	}
	return options
}

// fallbackOptions is the fixed-rate table used when no carrier rates are
// available, keyed by broad region.
func (s *Service) fallbackOptions(cep string) []Option {
	if s.cfg.SameStatePrefix != "" && strings.HasPrefix(cep, s.cfg.SameStatePrefix) {
		return []Option{
			{Name: "Sedex", Carrier: "Correios", Price: decimal.NewFromFloat(25.90), DeliveryDays: 2},
			{Name: "PAC", Carrier: "Correios", Price: decimal.NewFromFloat(18.90), DeliveryDays: 5},
		}
	}
	return []Option{
		{Name: "Sedex", Carrier: "Correios", Price: decimal.NewFromFloat(45.90), DeliveryDays: 4},
		{Name: "PAC", Carrier: "Correios", Price: decimal.NewFromFloat(32.90), DeliveryDays: 9},
	}
}
