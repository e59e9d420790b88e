package freight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
)

func TestQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quotes", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req QuoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "01310100", req.DestinationCEP)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quotes":[
			{"carrier":"Correios","service":"SEDEX","price":"32.90","delivery_days":3},
			{"carrier":"Correios","service":"PAC","price":"19.50","delivery_days":8}
		]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "tok")
	require.NoError(t, err)

	quotes, err := client.Quotes(context.Background(), QuoteRequest{
		OriginCEP:      "89010000",
		DestinationCEP: "01310100",
		ProductID:      "p-1",
		Quantity:       1,
	})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "SEDEX", quotes[0].Service)
	assert.Equal(t, "32.9", quotes[0].Price.String())
}

func TestQuotesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "")
	require.NoError(t, err)

	_, err = client.Quotes(context.Background(), QuoteRequest{DestinationCEP: "01310100"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("", "tok")
	assert.Error(t, err)
}
