package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// ItemQuery holds optional catalog search parameters.
type ItemQuery struct {
	Search  string
	Limit   int
	Offset  int
	OrderBy string
}

// ItemList is a page of catalog search results.
type ItemList struct {
	Items  []domain.ItemWithPrice `json:"items"`
	Total  int                    `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

// ListItems searches the catalog.
func (c *Client) ListItems(ctx context.Context, q ItemQuery) (*ItemList, error) {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	setInt(v, "limit", q.Limit)
	setInt(v, "offset", q.Offset)
	if q.OrderBy != "" {
		v.Set("order_by", q.OrderBy)
	}

	var res ItemList
	if err := c.get(ctx, "/api/v1/items", v, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetItem returns one item with its latest price.
func (c *Client) GetItem(ctx context.Context, id int) (*domain.ItemWithPrice, error) {
	var it domain.ItemWithPrice
	if err := c.get(ctx, "/api/v1/items/"+strconv.Itoa(id), nil, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// ItemsInPriceRange returns items priced within [lo, hi].
func (c *Client) ItemsInPriceRange(ctx context.Context, lo, hi float64, limit int) ([]domain.ItemWithPrice, error) {
	v := url.Values{}
	v.Set("min", strconv.FormatFloat(lo, 'f', -1, 64))
	v.Set("max", strconv.FormatFloat(hi, 'f', -1, 64))
	setInt(v, "limit", limit)

	var items []domain.ItemWithPrice
	if err := c.get(ctx, "/api/v1/items/price-range", v, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MostExpensive returns the items with the highest current price.
func (c *Client) MostExpensive(ctx context.Context, limit int) ([]domain.ItemWithPrice, error) {
	return c.ranking(ctx, "/api/v1/items/most-expensive", limit)
}

// MostTraded returns the items with the highest trading volume.
func (c *Client) MostTraded(ctx context.Context, limit int) ([]domain.ItemWithPrice, error) {
	return c.ranking(ctx, "/api/v1/items/most-traded", limit)
}

func (c *Client) ranking(ctx context.Context, path string, limit int) ([]domain.ItemWithPrice, error) {
	v := url.Values{}
	setInt(v, "limit", limit)

	var items []domain.ItemWithPrice
	if err := c.get(ctx, path, v, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func setInt(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}
