package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/blumenauautomacao/storefront-backend/internal/shipping"
	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	"github.com/blumenauautomacao/storefront-backend/pkg/db/models"
	"github.com/blumenauautomacao/storefront-backend/pkg/enums"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
	"github.com/blumenauautomacao/storefront-backend/pkg/mercadopago"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productFinder interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
}

type shippingEstimator interface {
	Estimate(ctx context.Context, cep string, items []shipping.CartItem) (*shipping.Estimate, error)
}

type preferenceCreator interface {
	CreatePreference(ctx context.Context, req mercadopago.PreferenceRequest) (*mercadopago.Preference, error)
}

// Service runs the checkout flow: validate, re-price, persist, and open a
// payment session.
type Service struct {
	catalog  productFinder
	shipper  shippingEstimator
	repo     *Repository
	tx       txRunner
	payments preferenceCreator
	mpCfg    config.MercadoPagoConfig
	store    config.StoreConfig
	logg     *logger.Logger
}

// NewService builds a checkout service.
func NewService(
	catalog productFinder,
	shipper shippingEstimator,
	repo *Repository,
	tx txRunner,
	payments preferenceCreator,
	mpCfg config.MercadoPagoConfig,
	store config.StoreConfig,
	logg *logger.Logger,
) *Service {
	return &Service{
		catalog:  catalog,
		shipper:  shipper,
		repo:     repo,
		tx:       tx,
		payments: payments,
		mpCfg:    mpCfg,
		store:    store,
		logg:     logg,
	}
}

// pricedLine is one cart line after catalog re-pricing.
type pricedLine struct {
	product  models.Product
	quantity int
	total    decimal.Decimal
}

// Create runs the whole checkout. Customer upsert, order insert, and the
// payment session all commit or roll back together, so a processor failure
// never leaves a payable order behind.
func (s *Service) Create(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	if problems := validateRequest(req); len(problems) > 0 {
		return nil, validationError(problems)
	}

	lines, problems, err := s.priceCart(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if len(problems) > 0 {
		return nil, validationError(problems)
	}

	shippingCost, err := s.shippingCost(ctx, req)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.total)
	}
	total := subtotal.Add(shippingCost)

	reference := uuid.NewString()
	if s.logg != nil {
		ctx = s.logg.WithOrderReference(ctx, reference)
	}

	var initPoint string
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		customer, err := repo.UpsertCustomer(ctx, req.Customer)
		if err != nil {
			return err
		}

		order := buildOrder(reference, customer, req, lines, subtotal, shippingCost, total)
		if err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}

		pref, err := s.payments.CreatePreference(ctx, s.preferenceRequest(reference, req, lines, shippingCost))
		if err != nil {
			return err
		}
		initPoint = pref.InitPoint
		return repo.SetPreference(ctx, order.ID, pref.ID)
	})
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "checkout failed", err)
		}
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(ctx, "order created")
	}

	return &CheckoutResponse{
		ExternalReference: reference,
		InitPoint:         initPoint,
		Subtotal:          subtotal,
		ShippingCost:      shippingCost,
		Total:             total,
		Status:            enums.OrderStatusPending.String(),
	}, nil
}

// priceCart revalidates every line against the catalog. All line problems
// are accumulated; any one of them fails the checkout.
func (s *Service) priceCart(ctx context.Context, items []CheckoutItem) ([]pricedLine, []string, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	byID, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	var (
		lines    []pricedLine
		problems []string
	)
	for i, item := range items {
		product, ok := byID[item.ID]
		if !ok {
			problems = append(problems, fmt.Sprintf("items[%d]: product %q not found", i, item.ID))
			continue
		}
		if !product.InStock {
			problems = append(problems, fmt.Sprintf("items[%d]: product %q is out of stock", i, item.ID))
			continue
		}
		if product.Stock != nil && *product.Stock < item.Quantity {
			problems = append(problems, fmt.Sprintf("items[%d]: only %d of product %q in stock", i, *product.Stock, item.ID))
			continue
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		lines = append(lines, pricedLine{
			product:  product,
			quantity: item.Quantity,
			total:    product.Price.Mul(qty),
		})
	}
	return lines, problems, nil
}

func (s *Service) shippingCost(ctx context.Context, req CheckoutRequest) (decimal.Decimal, error) {
	cartItems := make([]shipping.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		cartItems = append(cartItems, shipping.CartItem{ID: item.ID, Quantity: item.Quantity})
	}

	estimate, err := s.shipper.Estimate(ctx, req.Shipping.CEP, cartItems)
	if err != nil {
		return decimal.Zero, err
	}
	if len(estimate.Options) == 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "no shipping options for this address")
	}

	if selected := strings.TrimSpace(req.Shipping.SelectedOption); selected != "" {
		for _, option := range estimate.Options {
			if strings.EqualFold(option.Name, selected) {
				return option.Price, nil
			}
		}
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("shipping option %q is not available for this address", selected))
	}
	return estimate.Options[0].Price, nil
}

func buildOrder(
	reference string,
	customer *models.Customer,
	req CheckoutRequest,
	lines []pricedLine,
	subtotal, shippingCost, total decimal.Decimal,
) *models.Order {
	orderID := uuid.New()
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   line.product.ID,
			ProductName: line.product.Name,
			SKU:         line.product.SKU,
			Image:       line.product.Image,
			UnitPrice:   line.product.Price,
			Quantity:    line.quantity,
			TotalPrice:  line.total,
		})
	}

	return &models.Order{
		ID:                orderID,
		ExternalReference: reference,
		CustomerID:        customer.ID,
		CustomerName:      customer.Name,
		CustomerEmail:     customer.Email,
		CustomerPhone:     customer.Phone,
		CustomerTaxID:     customer.TaxID,
		ShippingStreet:    req.Shipping.Street,
		ShippingNumber:    req.Shipping.Number,
		ShippingExtra:     req.Shipping.Extra,
		ShippingDistrict:  req.Shipping.District,
		ShippingCity:      req.Shipping.City,
		ShippingState:     req.Shipping.State,
		ShippingCEP:       req.Shipping.CEP,
		Subtotal:          subtotal,
		ShippingCost:      shippingCost,
		Discount:          decimal.Zero,
		Total:             total,
		Status:            enums.OrderStatusPending,
		Items:             items,
	}
}

func (s *Service) preferenceRequest(
	reference string,
	req CheckoutRequest,
	lines []pricedLine,
	shippingCost decimal.Decimal,
) mercadopago.PreferenceRequest {
	items := make([]mercadopago.PreferenceItem, 0, len(lines))
	for _, line := range lines {
		item := mercadopago.PreferenceItem{
			ID:         line.product.ID,
			Title:      line.product.Name,
			Quantity:   line.quantity,
			UnitPrice:  line.product.Price,
			CurrencyID: s.store.Currency,
		}
		if line.product.Image != nil {
			item.PictureURL = *line.product.Image
		}
		items = append(items, item)
	}

	payer := mercadopago.PreferencePayer{
		Name:  req.Customer.Name,
		Email: req.Customer.Email,
	}
	payer.Phone.Number = req.Customer.Phone

	shipment := &mercadopago.PreferenceShipment{Cost: shippingCost}
	shipment.ReceiverAddress.ZipCode = req.Shipping.CEP
	shipment.ReceiverAddress.StreetName = req.Shipping.Street
	shipment.ReceiverAddress.StreetNumber = req.Shipping.Number
	shipment.ReceiverAddress.CityName = req.Shipping.City
	shipment.ReceiverAddress.StateName = req.Shipping.State

	pref := mercadopago.PreferenceRequest{
		Items:               items,
		Payer:               payer,
		Shipments:           shipment,
		NotificationURL:     s.mpCfg.NotificationURL,
		ExternalReference:   reference,
		StatementDescriptor: s.store.Name,
	}

	if s.mpCfg.SuccessURL != "" || s.mpCfg.FailureURL != "" || s.mpCfg.PendingURL != "" {
		pref.BackURLs = &mercadopago.PreferenceBackURLs{
			Success: s.mpCfg.SuccessURL,
			Failure: s.mpCfg.FailureURL,
			Pending: s.mpCfg.PendingURL,
		}
		if s.mpCfg.SuccessURL != "" {
			pref.AutoReturn = "approved"
		}
	}
	return pref
}

func validationError(problems []string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "checkout validation failed").
		WithDetails(map[string]any{"errors": problems})
}
