package catalog

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	"github.com/blumenauautomacao/storefront-backend/pkg/db/models"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
)

const (
	feedTitleLimit       = 150
	feedDescriptionLimit = 5000
	feedBrandLimit       = 70
	defaultBrand         = "Importado"
)

// csvColumns is the fixed export column order. Spreadsheet consumers key on
// position, so new columns only go at the end.
var csvColumns = []string{
	"id", "sku", "name", "brand", "price", "stock", "in_stock",
	"category", "category_path", "image", "datasheet", "source_url",
}

type googleFeed struct {
	XMLName xml.Name      `xml:"rss"`
	Version string        `xml:"version,attr"`
	NSG     string        `xml:"xmlns:g,attr"`
	Channel googleChannel `xml:"channel"`
}

type googleChannel struct {
	Title       string       `xml:"title"`
	Link        string       `xml:"link"`
	Description string       `xml:"description"`
	Items       []googleItem `xml:"item"`
}

type googleItem struct {
	ID               string `xml:"g:id"`
	Title            string `xml:"g:title"`
	Description      string `xml:"g:description"`
	Link             string `xml:"g:link"`
	ImageLink        string `xml:"g:image_link"`
	Availability     string `xml:"g:availability"`
	Price            string `xml:"g:price"`
	Brand            string `xml:"g:brand"`
	Condition        string `xml:"g:condition"`
	IdentifierExists string `xml:"g:identifier_exists"`
	ProductType      string `xml:"g:product_type,omitempty"`
}

// renderGoogleFeed builds the Merchant Center feed. Products without a
// positive price, an image, or a slug cannot be listed and are skipped.
func renderGoogleFeed(store config.StoreConfig, products []models.Product) ([]byte, error) {
	items := make([]googleItem, 0, len(products))
	for _, product := range products {
		if !product.Price.IsPositive() {
			continue
		}
		if product.Image == nil || *product.Image == "" {
			continue
		}
		if product.Slug == "" {
			continue
		}

		title := cleanFeedText(product.Name, feedTitleLimit)
		description := ""
		if product.Description != nil {
			description = cleanFeedText(*product.Description, feedDescriptionLimit)
		}
		if description == "" {
			description = title
		}

		brand := ""
		if product.Brand != nil {
			brand = cleanFeedText(*product.Brand, feedBrandLimit)
		}
		switch strings.ToLower(brand) {
		case "", "importado", "genérico", "generico":
			brand = defaultBrand
		}

		availability := "out_of_stock"
		if product.InStock {
			availability = "in_stock"
		}

		items = append(items, googleItem{
			ID:               product.ID,
			Title:            title,
			Description:      description,
			Link:             fmt.Sprintf("%s/produto.html?slug=%s", strings.TrimSuffix(store.BaseURL, "/"), product.Slug),
			ImageLink:        *product.Image,
			Availability:     availability,
			Price:            fmt.Sprintf("%s %s", product.Price.StringFixed(2), store.Currency),
			Brand:            brand,
			Condition:        "new",
			IdentifierExists: "false",
			ProductType:      strings.Join(product.CategoryPath, " > "),
		})
	}

	feed := googleFeed{
		Version: "2.0",
		NSG:     "http://base.google.com/ns/1.0",
		Channel: googleChannel{
			Title:       store.Name,
			Link:        store.BaseURL,
			Description: fmt.Sprintf("Catálogo de produtos %s", store.Name),
			Items:       items,
		},
	}

	body, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode google feed")
	}
	return append([]byte(xml.Header), body...), nil
}

func renderCSV(products []models.Product) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvColumns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}

	for _, product := range products {
		stock := ""
		if product.Stock != nil {
			stock = fmt.Sprintf("%d", *product.Stock)
		}
		row := []string{
			product.ID,
			product.SKU,
			cleanFeedText(product.Name, 0),
			derefOr(product.Brand, ""),
			product.Price.StringFixed(2),
			stock,
			fmt.Sprintf("%t", product.InStock),
			product.Category,
			strings.Join(product.CategoryPath, " > "),
			derefOr(product.Image, ""),
			derefOr(product.Datasheet, ""),
			product.SourceURL,
		}
		if err := writer.Write(row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return buf.Bytes(), nil
}

// cleanFeedText collapses whitespace so multi-line descriptions stay on one
// feed row. maxLen 0 means unlimited.
func cleanFeedText(text string, maxLen int) string {
	text = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(text)
	text = strings.Join(strings.Fields(text), " ")
	if maxLen > 0 {
		if runes := []rune(text); len(runes) > maxLen {
			text = string(runes[:maxLen-3]) + "..."
		}
	}
	return text
}

func derefOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
