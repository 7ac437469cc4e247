package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

// upstreamProduct is the wire shape of the external catalog API.
type upstreamProduct struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// Client fetches products from the external catalog. One attempt per call,
// no retry; callers re-invoke on user action.
type Client struct {
	baseURL      string
	currencyRate float64
	httpClient   *http.Client
}

func NewClient(baseURL string, currencyRate float64) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		currencyRate: currencyRate,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchAll retrieves the full product list. Transport failures and non-2xx
// statuses surface as ErrCatalogUnavailable.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var items []upstreamProduct
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrCatalogUnavailable, err)
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, c.mapProduct(item))
	}
	return products, nil
}

// FetchByID retrieves a single product. A miss upstream is ErrNotFound.
func (c *Client) FetchByID(ctx context.Context, id string) (domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/"+id, nil)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Product{}, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var item upstreamProduct
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return domain.Product{}, fmt.Errorf("%w: decode: %v", domain.ErrCatalogUnavailable, err)
	}
	// The upstream answers 200 with an empty body for unknown ids.
	if item.ID == 0 {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return c.mapProduct(item), nil
}

func (c *Client) mapProduct(item upstreamProduct) domain.Product {
	return domain.Product{
		ID:          strconv.Itoa(item.ID),
		Name:        item.Title,
		Price:       int64(math.Round(item.Price * c.currencyRate)),
		Description: item.Description,
		ImageURL:    item.Image,
		Category:    normalizeCategory(item.Category),
	}
}

// normalizeCategory maps raw upstream category strings onto the storefront's
// fixed shelf set. Anything unmatched lands in Home.
func normalizeCategory(raw string) domain.Category {
	switch {
	case strings.Contains(raw, "electronics"):
		return domain.CategoryTech
	case strings.Contains(raw, "clothing"):
		return domain.CategoryFashion
	case strings.Contains(raw, "jewelery"):
		return domain.CategoryWellness
	default:
		return domain.CategoryHome
	}
}
