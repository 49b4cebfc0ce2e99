package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchPlatPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/plats/price/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"price":4.20}`))
	}))
	defer srv.Close()

	c := NewPlatsClient(srv.URL, srv.Client())
	price, err := c.FetchPlatPrice(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchPlatPrice: %v", err)
	}
	if price != 4.20 {
		t.Fatalf("price = %v, want 4.20", price)
	}
}

func TestFetchPlatPrice_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewPlatsClient(srv.URL, srv.Client())
	if _, err := c.FetchPlatPrice(context.Background(), 99); !errors.Is(err, ErrPlatNotFound) {
		t.Fatalf("err = %v, want ErrPlatNotFound", err)
	}
}

func TestFetchPlatPrice_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewPlatsClient(srv.URL, srv.Client())
	price, err := c.FetchPlatPrice(context.Background(), 7)
	if err == nil {
		t.Fatal("expected an error on a 500 response")
	}
	// An unavailable price must never read as zero-and-no-error.
	if price != 0 {
		t.Fatalf("price = %v on error, want 0", price)
	}
}

func TestFetchPlatPrice_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed immediately: connection refused

	c := NewPlatsClient(srv.URL, nil)
	if _, err := c.FetchPlatPrice(context.Background(), 7); err == nil {
		t.Fatal("expected an error when the plats service is unreachable")
	}
}

func TestFetchPlat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/plats/12" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":12,"name":"Ratatouille","description":"vegetables","price":8.50}`))
	}))
	defer srv.Close()

	c := NewPlatsClient(srv.URL, srv.Client())
	p, err := c.FetchPlat(context.Background(), 12)
	if err != nil {
		t.Fatalf("FetchPlat: %v", err)
	}
	if p.ID != 12 || p.Name != "Ratatouille" || p.Price != 8.50 {
		t.Fatalf("unexpected plat %+v", p)
	}
}

func TestFetchPlat_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewPlatsClient(srv.URL, srv.Client())
	if _, err := c.FetchPlat(context.Background(), 99); !errors.Is(err, ErrPlatNotFound) {
		t.Fatalf("err = %v, want ErrPlatNotFound", err)
	}
}

func TestFetchPlat_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewPlatsClient(srv.URL, srv.Client())
	if _, err := c.FetchPlat(context.Background(), 1); err == nil {
		t.Fatal("expected a decode error")
	}
}
