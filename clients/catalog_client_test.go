package clients_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront/clients"
)

func TestGetProductsBatch_SingleRequestWithAllIDs(t *testing.T) {
	var requests int
	var sentIDs []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/products/batch", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &sentIDs) //nolint:errcheck
		w.Write([]byte(`{"products": [{"id": "A", "name": "Vintage Camera", "priceUsd": {"units": 1, "nanos": 990000000}}]}`))
	}))
	defer srv.Close()

	client := clients.NewCatalogClient(srv.URL, time.Second)
	products, err := client.GetProductsBatch(context.Background(), []string{"A", "B"})

	assert.Nil(t, err)
	assert.Equal(t, 1, requests)
	assert.Equal(t, []string{"A", "B"}, sentIDs)
	assert.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].PriceUsd.Units)
}

func TestGetProductsBatch_AcceptsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "A", "name": "Vintage Camera", "priceUsd": {"units": 1, "nanos": 990000000}}]`))
	}))
	defer srv.Close()

	client := clients.NewCatalogClient(srv.URL, time.Second)
	products, err := client.GetProductsBatch(context.Background(), []string{"A"})

	assert.Nil(t, err)
	assert.Len(t, products, 1)
}

func TestGetProducts_AcceptsWrappedList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(`{"products": [{"id": "A"}, {"id": "B"}]}`))
	}))
	defer srv.Close()

	client := clients.NewCatalogClient(srv.URL, time.Second)
	products, err := client.GetProducts(context.Background())

	assert.Nil(t, err)
	assert.Len(t, products, 2)
}

func TestGetProduct_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	client := clients.NewCatalogClient(srv.URL, time.Second)
	_, err := client.GetProduct(context.Background(), "ghost")

	assert.NotNil(t, err)
}

func TestSearch_PassesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "camera", r.URL.Query().Get("q"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := clients.NewCatalogClient(srv.URL, time.Second)
	products, err := client.Search(context.Background(), "camera")

	assert.Nil(t, err)
	assert.Empty(t, products)
}
