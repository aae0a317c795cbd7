package web

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
)

func newTestServer(products []catalog.Product) *Server {
	svc := catalog.NewService(catalog.NewInMemoryRepository(products), zerolog.Nop())
	return New(svc, zerolog.Nop())
}

func TestHealth(t *testing.T) {
	srv := newTestServer(nil)
	resp, err := srv.App().Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "OK" {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestStatusPage(t *testing.T) {
	srv := newTestServer(nil)
	resp, err := srv.App().Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestProducts(t *testing.T) {
	srv := newTestServer([]catalog.Product{
		{Name: "Potion", Price: 50, Emoji: "🧪", Category: "item"},
		{Name: "Sword", Price: 300, Emoji: "🗡️", Category: "weapon"},
	})

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/products", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var products []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
}

func TestProductsFilteredByCategory(t *testing.T) {
	srv := newTestServer([]catalog.Product{
		{Name: "Potion", Price: 50, Emoji: "🧪", Category: "item"},
		{Name: "Sword", Price: 300, Emoji: "🗡️", Category: "weapon"},
	})

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/products?category=weapon", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var products []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Sword" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestProductsInvalidCategory(t *testing.T) {
	srv := newTestServer(nil)
	resp, err := srv.App().Test(httptest.NewRequest("GET", "/products?category=groceries", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["categories"] == "" {
		t.Fatalf("expected a category hint in the response: %+v", body)
	}
}
