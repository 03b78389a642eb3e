package clients_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront/clients"
)

func TestGetCart_UnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/carts/u1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"message": "ok",
			"data": {"userId": "u1", "items": [{"productId": "A", "quantity": 2}]}
		}`))
	}))
	defer srv.Close()

	client := clients.NewCartClient(srv.URL, time.Second)
	cart, err := client.GetCart(context.Background(), "u1")

	assert.Nil(t, err)
	assert.Equal(t, "u1", cart.UserID)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "A", cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestGetCart_NotFoundIsEmptyCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no cart", http.StatusNotFound)
	}))
	defer srv.Close()

	client := clients.NewCartClient(srv.URL, time.Second)
	cart, err := client.GetCart(context.Background(), "u1")

	assert.Nil(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestGetCart_ServerErrorIsEmptyCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := clients.NewCartClient(srv.URL, time.Second)
	cart, err := client.GetCart(context.Background(), "u1")

	assert.Nil(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestGetCart_UnsuccessfulEnvelopeIsEmptyCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "nope"}`))
	}))
	defer srv.Close()

	client := clients.NewCartClient(srv.URL, time.Second)
	cart, err := client.GetCart(context.Background(), "u1")

	assert.Nil(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestGetCart_TransportFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := clients.NewCartClient(srv.URL, time.Second)
	_, err := client.GetCart(context.Background(), "u1")

	assert.NotNil(t, err)
}

func TestAddItem_SendsQueryParamsAndUnwraps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/carts/u1/items", r.URL.Path)
		assert.Equal(t, "A", r.URL.Query().Get("productId"))
		assert.Equal(t, "2", r.URL.Query().Get("quantity"))
		w.Write([]byte(`{
			"success": true,
			"data": {"userId": "u1", "items": [{"productId": "A", "quantity": 2}]}
		}`))
	}))
	defer srv.Close()

	client := clients.NewCartClient(srv.URL, time.Second)
	cart, err := client.AddItem(context.Background(), "u1", "A", 2)

	assert.Nil(t, err)
	assert.Equal(t, 2, cart.TotalQuantity())
}

func TestEmptyCart_DeletesCart(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := clients.NewCartClient(srv.URL, time.Second)
	err := client.EmptyCart(context.Background(), "u1")

	assert.Nil(t, err)
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/carts/u1", path)
}
