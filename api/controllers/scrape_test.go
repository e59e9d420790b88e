package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blumenauautomacao/storefront-backend/internal/scraper"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
	"github.com/blumenauautomacao/storefront-backend/pkg/types"
)

type stubFetcher struct {
	pages map[string]string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	page, ok := f.pages[url]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "supplier responded 503")
	}
	return page, nil
}

func newScraperService(t *testing.T, pages map[string]string) *scraper.Service {
	t.Helper()
	svc, err := scraper.NewService(scraper.NewRegistry(nil), &stubFetcher{pages: pages}, nil, nil)
	require.NoError(t, err)
	return svc
}

func TestCheckProductMissingURL(t *testing.T) {
	svc := newScraperService(t, nil)
	rec := httptest.NewRecorder()

	CheckProduct(svc, nil)(rec, httptest.NewRequest("GET", "/check", nil))
	assert.Equal(t, 400, rec.Code)
}

func TestCheckProductUnknownSupplier(t *testing.T) {
	svc := newScraperService(t, nil)
	rec := httptest.NewRecorder()

	CheckProduct(svc, nil)(rec, httptest.NewRequest("GET", "/check?url=https://www.amazon.com.br/x", nil))
	assert.Equal(t, 400, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestCheckProductSuccess(t *testing.T) {
	url := "https://www.proesi.com.br/clp"
	svc := newScraperService(t, map[string]string{
		url: `<span class="price-value">R$ 99,90</span>`,
	})
	rec := httptest.NewRecorder()

	CheckProduct(svc, nil)(rec, httptest.NewRequest("GET", "/check?url="+url, nil))
	require.Equal(t, 200, rec.Code)

	var envelope struct {
		Data scraper.CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Success)
	require.NotNil(t, envelope.Data.Price)
	assert.InDelta(t, 99.90, *envelope.Data.Price, 0.0001)
}

func TestCheckBatchTooManyURLs(t *testing.T) {
	svc := newScraperService(t, nil)
	urls := make([]string, scraper.MaxBatchSize+1)
	for i := range urls {
		urls[i] = "https://www.proesi.com.br/p"
	}
	body, err := json.Marshal(map[string]any{"urls": urls})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/check-batch", strings.NewReader(string(body)))
	CheckBatch(svc, nil)(rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestProductDescriptionSupplierFilter(t *testing.T) {
	url := "https://www.proesi.com.br/clp"
	svc := newScraperService(t, map[string]string{
		url: `<div class="product-description"><p>CLP compacto</p></div>`,
	})

	rec := httptest.NewRecorder()
	ProductDescription(svc, scraper.SupplierProesi, nil)(rec, httptest.NewRequest("GET", "/product-description?url="+url, nil))
	require.Equal(t, 200, rec.Code)

	// same URL through the other supplier's endpoint is rejected
	rec = httptest.NewRecorder()
	ProductDescription(svc, scraper.SupplierLojaVale, nil)(rec, httptest.NewRequest("GET", "/lojavale-description?url="+url, nil))
	assert.Equal(t, 400, rec.Code)
}
