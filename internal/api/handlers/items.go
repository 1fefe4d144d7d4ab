package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/osrs-price-tracker/internal/store"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

const (
	defaultRankingLimit = 10
	defaultRangeLimit   = 100
)

// ItemsHandler serves catalog and price queries.
type ItemsHandler struct {
	store store.Store
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(s store.Store) *ItemsHandler {
	return &ItemsHandler{store: s}
}

// --- Input/Output types ---

// ListItemsInput is the input for searching the catalog.
type ListItemsInput struct {
	Query   string `query:"q"        doc:"Case-insensitive name substring"`
	Limit   int    `query:"limit"    doc:"Number of results (default 50)" minimum:"1" maximum:"500"`
	Offset  int    `query:"offset"   doc:"Pagination offset"              minimum:"0"`
	OrderBy string `query:"order_by" doc:"Sort field"                     enum:"name,price,volume,"`
}

// ListItemsOutput is the response for catalog searches.
type ListItemsOutput struct {
	Body struct {
		Items  []domain.ItemWithPrice `json:"items"`
		Total  int                    `json:"total"`
		Limit  int                    `json:"limit"`
		Offset int                    `json:"offset"`
	}
}

// GetItemInput is the input for getting a single item.
type GetItemInput struct {
	ID int `path:"id" doc:"Catalog item id" minimum:"0"`
}

// GetItemOutput is the response for getting a single item.
type GetItemOutput struct {
	Body domain.ItemWithPrice
}

// ListPricesOutput is the response for listing every price snapshot.
type ListPricesOutput struct {
	Body []domain.PriceSnapshot
}

// PriceRangeInput is the input for the price range query.
type PriceRangeInput struct {
	Min   float64 `query:"min"   doc:"Minimum current price" minimum:"0" required:"true"`
	Max   float64 `query:"max"   doc:"Maximum current price" minimum:"0" required:"true"`
	Limit int     `query:"limit" doc:"Number of results (default 100)" minimum:"1" maximum:"500"`
}

// RankingInput is the input for the most expensive and most traded queries.
type RankingInput struct {
	Limit int `query:"limit" doc:"Number of results (default 10)" minimum:"1" maximum:"500"`
}

// ItemListOutput is a bare list of items.
type ItemListOutput struct {
	Body []domain.ItemWithPrice
}

// --- Handlers ---

// ListItems searches the catalog by name with pagination.
func (h *ItemsHandler) ListItems(
	ctx context.Context,
	input *ListItemsInput,
) (*ListItemsOutput, error) {
	q := &store.ItemQuery{
		Limit:   input.Limit,
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}
	if input.Query != "" {
		q.Search = &input.Query
	}

	items, total, err := h.store.ListItems(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("item query failed: " + err.Error())
	}
	if items == nil {
		items = []domain.ItemWithPrice{}
	}

	resp := &ListItemsOutput{}
	resp.Body.Items = items
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset

	return resp, nil
}

// GetItem returns one item with its latest price.
func (h *ItemsHandler) GetItem(
	ctx context.Context,
	input *GetItemInput,
) (*GetItemOutput, error) {
	item, err := h.store.GetItem(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound(fmt.Sprintf("item %d not found", input.ID))
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("item lookup failed: " + err.Error())
	}

	return &GetItemOutput{Body: *item}, nil
}

// ListPrices returns every stored price snapshot.
func (h *ItemsHandler) ListPrices(
	ctx context.Context,
	_ *struct{},
) (*ListPricesOutput, error) {
	prices, err := h.store.ListPrices(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing prices failed: " + err.Error())
	}
	if prices == nil {
		prices = []domain.PriceSnapshot{}
	}

	return &ListPricesOutput{Body: prices}, nil
}

// PriceRange returns items whose current price lies within [min, max], most
// expensive first.
func (h *ItemsHandler) PriceRange(
	ctx context.Context,
	input *PriceRangeInput,
) (*ItemListOutput, error) {
	if input.Min > input.Max {
		return nil, huma.Error400BadRequest("min must not exceed max")
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultRangeLimit
	}

	return h.list(ctx, &store.ItemQuery{
		MinPrice: &input.Min,
		MaxPrice: &input.Max,
		Limit:    limit,
		OrderBy:  "price",
	})
}

// MostExpensive returns the priced items with the highest current price.
func (h *ItemsHandler) MostExpensive(
	ctx context.Context,
	input *RankingInput,
) (*ItemListOutput, error) {
	return h.list(ctx, &store.ItemQuery{
		Priced:  true,
		Limit:   rankingLimit(input.Limit),
		OrderBy: "price",
	})
}

// MostTraded returns the priced items with the highest trading volume.
func (h *ItemsHandler) MostTraded(
	ctx context.Context,
	input *RankingInput,
) (*ItemListOutput, error) {
	return h.list(ctx, &store.ItemQuery{
		Priced:  true,
		Limit:   rankingLimit(input.Limit),
		OrderBy: "volume",
	})
}

func (h *ItemsHandler) list(ctx context.Context, q *store.ItemQuery) (*ItemListOutput, error) {
	items, _, err := h.store.ListItems(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("item query failed: " + err.Error())
	}
	if items == nil {
		items = []domain.ItemWithPrice{}
	}
	return &ItemListOutput{Body: items}, nil
}

func rankingLimit(n int) int {
	if n == 0 {
		return defaultRankingLimit
	}
	return n
}

// RegisterItemRoutes registers catalog and price endpoints with the Huma API.
func RegisterItemRoutes(api huma.API, h *ItemsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-items",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "Search items",
		Description: "Returns catalog items joined with their latest price, filtered by name.",
		Tags:        []string{"items"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListItems)

	// Fixed paths are registered before /items/{id}.
	huma.Register(api, huma.Operation{
		OperationID: "list-prices",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/prices",
		Summary:     "List price snapshots",
		Description: "Returns the latest price snapshot of every priced item.",
		Tags:        []string{"items"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListPrices)

	huma.Register(api, huma.Operation{
		OperationID: "items-price-range",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/price-range",
		Summary:     "Items within a price range",
		Description: "Returns items whose current price lies within [min, max], most expensive first.",
		Tags:        []string{"items"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.PriceRange)

	huma.Register(api, huma.Operation{
		OperationID: "items-most-expensive",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/most-expensive",
		Summary:     "Most expensive items",
		Tags:        []string{"items"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.MostExpensive)

	huma.Register(api, huma.Operation{
		OperationID: "items-most-traded",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/most-traded",
		Summary:     "Most traded items",
		Tags:        []string{"items"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.MostTraded)

	huma.Register(api, huma.Operation{
		OperationID: "get-item",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get an item by id",
		Description: "Returns one catalog item with its latest price.",
		Tags:        []string{"items"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetItem)
}
