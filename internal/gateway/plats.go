// Package gateway contains the HTTP client used to reach the external plats
// service.  It is the only place in the application that talks to that
// service, so both the price-only lookup used by association mutations and
// the full lookup used for read-path hydration live here.
package gateway

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "strings"
)

// ErrPlatNotFound is returned when the plats service has no plat for the
// requested id.  Callers on the hydration path drop the plat from the
// response; callers on the mutation path abort the operation.
var ErrPlatNotFound = errors.New("plat not found")

// Plat is the dish DTO as served by the external plats service.
type Plat struct {
    ID          int     `json:"id"`
    Name        string  `json:"name"`
    Description string  `json:"description"`
    Price       float64 `json:"price"`
}

// PlatsClient issues lookups against the plats service over plain HTTP.  A
// zero timeout on the underlying client is never used; the caller supplies
// one at construction time.  Keep-alives are disabled so every outbound call
// opens a fresh connection, keeping the client free of pooled state.
type PlatsClient struct {
    baseURL string
    http    *http.Client
}

// NewPlatsClient builds a client for the plats service rooted at baseURL.
func NewPlatsClient(baseURL string, httpClient *http.Client) *PlatsClient {
    if httpClient == nil {
        httpClient = &http.Client{
            Transport: &http.Transport{DisableKeepAlives: true},
        }
    }
    return &PlatsClient{
        baseURL: strings.TrimRight(baseURL, "/"),
        http:    httpClient,
    }
}

// FetchPlatPrice retrieves the current price of a plat via the price-only
// endpoint GET {base}/plats/price/{id}.  Any transport failure or non-2xx
// status is surfaced as an error: a price that cannot be fetched must never
// be mistaken for a price of zero, because the caller feeds the result
// straight into a menu's denormalized price.
func (c *PlatsClient) FetchPlatPrice(ctx context.Context, idPlat int) (float64, error) {
    url := fmt.Sprintf("%s/plats/price/%d", c.baseURL, idPlat)
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
    if err != nil {
        return 0, err
    }
    req.Header.Set("Accept", "application/json")

    resp, err := c.http.Do(req)
    if err != nil {
        return 0, fmt.Errorf("plats service: %w", err)
    }
    defer resp.Body.Close()

    if resp.StatusCode == http.StatusNotFound {
        return 0, ErrPlatNotFound
    }
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return 0, fmt.Errorf("plats service: unexpected status %d for plat %d", resp.StatusCode, idPlat)
    }

    var body struct {
        Price float64 `json:"price"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
        return 0, fmt.Errorf("plats service: decode price: %w", err)
    }
    return body.Price, nil
}

// FetchPlat retrieves the full plat DTO via GET {base}/plats/{id}.  A
// non-success status maps to ErrPlatNotFound so the hydration path can omit
// the plat without failing the whole response.
func (c *PlatsClient) FetchPlat(ctx context.Context, idPlat int) (*Plat, error) {
    url := fmt.Sprintf("%s/plats/%d", c.baseURL, idPlat)
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
    if err != nil {
        return nil, err
    }
    req.Header.Set("Accept", "application/json")

    resp, err := c.http.Do(req)
    if err != nil {
        return nil, fmt.Errorf("plats service: %w", err)
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return nil, ErrPlatNotFound
    }

    var p Plat
    if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
        return nil, fmt.Errorf("plats service: decode plat: %w", err)
    }
    return &p, nil
}
