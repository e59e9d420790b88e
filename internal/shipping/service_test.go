package shipping

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
	"github.com/blumenauautomacao/storefront-backend/pkg/freight"
)

type stubQuoter struct {
	quotes []freight.Quote
	err    error
	last   freight.QuoteRequest
}

func (q *stubQuoter) Quotes(_ context.Context, req freight.QuoteRequest) ([]freight.Quote, error) {
	q.last = req
	return q.quotes, q.err
}

func testConfig() config.ShippingConfig {
	return config.ShippingConfig{
		FreeZonePrefixes: []string{"890", "891"},
		SameStatePrefix:  "88",
		OriginCEP:        "89010000",
		FreeZoneLeadDays: 2,
	}
}

func TestEstimateValidatesCEP(t *testing.T) {
	svc := NewService(testConfig(), nil, nil)
	items := []CartItem{{ID: "p-1", Quantity: 1}}

	for _, cep := range []string{"", "1234", "123456789", "abcdefgh"} {
		_, err := svc.Estimate(context.Background(), cep, items)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "cep %q", cep)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}

	// punctuation is stripped before the length check
	est, err := svc.Estimate(context.Background(), "89010-000", items)
	require.NoError(t, err)
	assert.Equal(t, "89010000", est.CEP)
}

func TestEstimateRequiresItems(t *testing.T) {
	svc := NewService(testConfig(), nil, nil)

	_, err := svc.Estimate(context.Background(), "89010000", nil)
	require.Error(t, err)

	_, err = svc.Estimate(context.Background(), "89010000", []CartItem{{ID: "p-1", Quantity: 0}})
	require.Error(t, err)
}

func TestEstimateFreeZone(t *testing.T) {
	svc := NewService(testConfig(), nil, nil)

	est, err := svc.Estimate(context.Background(), "89010-000", []CartItem{{ID: "p-1", Quantity: 2}})
	require.NoError(t, err)
	assert.True(t, est.IsFreeZone)
	require.NotEmpty(t, est.Options)
	assert.True(t, est.Options[0].Price.IsZero())
	assert.Equal(t, 2, est.Options[0].DeliveryDays)
	// paid fallback tiers still follow the free local option
	assert.Greater(t, len(est.Options), 1)
}

func TestEstimateOutsideFreeZoneNeverFree(t *testing.T) {
	svc := NewService(testConfig(), nil, nil)

	est, err := svc.Estimate(context.Background(), "01310100", []CartItem{{ID: "p-1", Quantity: 1}})
	require.NoError(t, err)
	assert.False(t, est.IsFreeZone)
	for _, opt := range est.Options {
		assert.True(t, opt.Price.GreaterThan(decimal.Zero))
	}
}

func TestEstimateCarrierQuotesSortedAscending(t *testing.T) {
	quoter := &stubQuoter{quotes: []freight.Quote{
		{Carrier: "Jadlog", Service: "Economico", Price: decimal.NewFromFloat(31.50), DeliveryDays: 7},
		{Carrier: "Jadlog", Service: "Expresso", Price: decimal.NewFromFloat(22.00), DeliveryDays: 3},
	}}
	svc := NewService(testConfig(), quoter, nil)

	est, err := svc.Estimate(context.Background(), "01310100", []CartItem{{ID: "p-9", Quantity: 3}})
	require.NoError(t, err)
	require.Len(t, est.Options, 2)
	assert.Equal(t, "Expresso", est.Options[0].Name)
	assert.Equal(t, "Economico", est.Options[1].Name)

	// only the first cart line is quoted
	assert.Equal(t, "p-9", quoter.last.ProductID)
	assert.Equal(t, 3, quoter.last.Quantity)
	assert.Equal(t, "89010000", quoter.last.OriginCEP)
	assert.Equal(t, "01310100", quoter.last.DestinationCEP)
}

func TestEstimateCarrierFailureFallsBack(t *testing.T) {
	quoter := &stubQuoter{err: pkgerrors.New(pkgerrors.CodeDependency, "carrier quote service responded 500")}
	svc := NewService(testConfig(), quoter, nil)

	est, err := svc.Estimate(context.Background(), "88015600", []CartItem{{ID: "p-1", Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, est.Options, 2)
	// same-state fallback tier, cheapest first
	assert.Equal(t, "PAC", est.Options[0].Name)
	assert.True(t, est.Options[0].Price.Equal(decimal.NewFromFloat(18.90)))
	assert.Equal(t, "Sedex", est.Options[1].Name)
}

type deadlineQuoter struct {
	hadDeadline bool
}

func (q *deadlineQuoter) Quotes(ctx context.Context, _ freight.QuoteRequest) ([]freight.Quote, error) {
	_, q.hadDeadline = ctx.Deadline()
	return nil, nil
}

func TestEstimateQuoteTimeoutApplied(t *testing.T) {
	cfg := testConfig()
	cfg.QuoteTimeout = 2 * time.Second
	quoter := &deadlineQuoter{}
	svc := NewService(cfg, quoter, nil)

	_, err := svc.Estimate(context.Background(), "01310100", []CartItem{{ID: "p-1", Quantity: 1}})
	require.NoError(t, err)
	assert.True(t, quoter.hadDeadline)
}

func TestEstimateFallbackRegionTiers(t *testing.T) {
	svc := NewService(testConfig(), nil, nil)

	sameState, err := svc.Estimate(context.Background(), "88015600", []CartItem{{ID: "p-1", Quantity: 1}})
	require.NoError(t, err)
	other, err := svc.Estimate(context.Background(), "01310100", []CartItem{{ID: "p-1", Quantity: 1}})
	require.NoError(t, err)

	assert.True(t, sameState.Options[0].Price.LessThan(other.Options[0].Price))
}
