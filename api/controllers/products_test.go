package controllers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/blumenauautomacao/storefront-backend/internal/catalog"
	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	"github.com/blumenauautomacao/storefront-backend/pkg/db/models"
)

func catalogTestService(t *testing.T) *catalog.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))

	image := "https://cdn.example.com/clp.jpg"
	stock := 5
	require.NoError(t, conn.Create(&models.Product{
		ID:        "clp-s7-1200",
		SKU:       "CLP-S7-1200",
		Name:      "CLP Siemens S7-1200",
		Slug:      "clp-siemens-s7-1200",
		Price:     decimal.NewFromFloat(1899.90),
		Stock:     &stock,
		InStock:   true,
		Category:  "CLPs",
		Image:     &image,
		SourceURL: "https://www.proesi.com.br/clp-s7-1200",
	}).Error)

	return catalog.NewService(catalog.NewRepository(conn), config.StoreConfig{
		Name:     "Blumenau Automação",
		BaseURL:  "https://www.blumenauautomacao.com.br",
		Currency: "BRL",
	})
}

func TestProductsInvalidFormat(t *testing.T) {
	handler := Products(catalogTestService(t), nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/products?format=yaml", nil))

	assert.Equal(t, 400, rec.Code)
}

func TestProductsDefaultJSON(t *testing.T) {
	handler := Products(catalogTestService(t), nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/products", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var envelope struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "clp-s7-1200", envelope.Data[0].ID)
}

func TestProductsGoogleFeed(t *testing.T) {
	handler := Products(catalogTestService(t), nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/products?format=google", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, rec.Body.String(), `xmlns:g="http://base.google.com/ns/1.0"`)
	assert.Contains(t, rec.Body.String(), "<g:id>clp-s7-1200</g:id>")
}

func TestProductsCSVFeed(t *testing.T) {
	handler := Products(catalogTestService(t), nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/products?format=csv", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, `attachment; filename="products.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "id,sku,name")
}

func TestProductsBadBoolFilter(t *testing.T) {
	handler := Products(catalogTestService(t), nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/products?inStock=maybe", nil))

	assert.Equal(t, 400, rec.Code)
}
