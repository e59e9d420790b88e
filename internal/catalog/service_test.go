package catalog

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	"github.com/blumenauautomacao/storefront-backend/pkg/db/models"
	dbtypes "github.com/blumenauautomacao/storefront-backend/pkg/db/types"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func seedCatalog(t *testing.T, conn *gorm.DB) {
	t.Helper()

	products := []models.Product{
		{
			ID:           "clp-s7-1200",
			SKU:          "CLP-S7-1200",
			Name:         "CLP Siemens S7-1200",
			Slug:         "clp-siemens-s7-1200",
			Brand:        strPtr("Siemens"),
			Price:        decimal.NewFromFloat(1899.90),
			Stock:        intPtr(5),
			InStock:      true,
			Description:  strPtr("Controlador lógico programável\ncompacto."),
			Category:     "CLPs",
			CategoryPath: dbtypes.StringList{"Automação", "CLPs"},
			Image:        strPtr("https://cdn.example.com/clp.jpg"),
			SourceURL:    "https://www.proesi.com.br/clp-s7-1200",
		},
		{
			ID:        "inv-cfw500",
			SKU:       "INV-CFW500",
			Name:      "Inversor WEG CFW500",
			Slug:      "inversor-weg-cfw500",
			Brand:     strPtr("WEG"),
			Price:     decimal.NewFromFloat(2450.00),
			InStock:   false,
			Category:  "Inversores",
			Image:     strPtr("https://cdn.example.com/cfw500.jpg"),
			SourceURL: "https://www.lojavale.com.br/inversor-cfw500",
		},
		{
			// no image, excluded from the google feed
			ID:        "rele-frio",
			SKU:       "RELE-01",
			Name:      "Relé térmico",
			Slug:      "rele-termico",
			Price:     decimal.NewFromFloat(89.90),
			InStock:   true,
			Category:  "Relés",
			SourceURL: "https://www.proesi.com.br/rele",
		},
	}
	for i := range products {
		require.NoError(t, conn.Create(&products[i]).Error)
	}
}

func newCatalogService(t *testing.T) *Service {
	t.Helper()
	conn := openTestDB(t)
	seedCatalog(t, conn)
	return NewService(NewRepository(conn), config.StoreConfig{
		Name:     "Blumenau Automação",
		BaseURL:  "https://www.blumenauautomacao.com.br",
		Currency: "BRL",
	})
}

func TestListFilters(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	all, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCategory, err := svc.List(ctx, Filter{Category: "CLPs"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "clp-s7-1200", byCategory[0].ID)

	inStock := true
	stocked, err := svc.List(ctx, Filter{InStock: &inStock})
	require.NoError(t, err)
	assert.Len(t, stocked, 2)

	byID, err := svc.List(ctx, Filter{ID: "inv-cfw500"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Inversor WEG CFW500", byID[0].Name)
}

func TestGetNotFound(t *testing.T) {
	svc := newCatalogService(t)

	_, err := svc.Get(context.Background(), "missing")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGoogleFeed(t *testing.T) {
	svc := newCatalogService(t)

	body, err := svc.GoogleFeed(context.Background(), Filter{})
	require.NoError(t, err)
	feed := string(body)

	assert.Contains(t, feed, `<rss version="2.0" xmlns:g="http://base.google.com/ns/1.0">`)
	assert.Contains(t, feed, "<g:id>clp-s7-1200</g:id>")
	assert.Contains(t, feed, "<g:price>1899.90 BRL</g:price>")
	assert.Contains(t, feed, "<g:availability>in_stock</g:availability>")
	assert.Contains(t, feed, "<g:availability>out_of_stock</g:availability>")
	assert.Contains(t, feed, "<g:link>https://www.blumenauautomacao.com.br/produto.html?slug=clp-siemens-s7-1200</g:link>")
	assert.Contains(t, feed, "<g:condition>new</g:condition>")
	assert.Contains(t, feed, "<g:product_type>Automação &gt; CLPs</g:product_type>")

	// imageless product cannot be listed
	assert.NotContains(t, feed, "rele-frio")

	// newlines never survive into feed descriptions
	assert.Contains(t, feed, "Controlador lógico programável compacto.")
}

func TestCSVFeed(t *testing.T) {
	svc := newCatalogService(t)

	body, err := svc.CSVFeed(context.Background(), Filter{})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, csvColumns, records[0])

	// rows follow name ordering from the listing
	assert.Equal(t, "clp-s7-1200", records[1][0])
	assert.Equal(t, "1899.90", records[1][4])
	assert.Equal(t, "5", records[1][5])
	assert.Equal(t, "true", records[1][6])
	assert.Equal(t, "Automação > CLPs", records[1][8])
}
