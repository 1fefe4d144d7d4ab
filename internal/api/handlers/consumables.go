package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/osrs-price-tracker/internal/store"
	"github.com/donaldgifford/osrs-price-tracker/internal/views"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// ConsumablesHandler serves consumable effect queries.
type ConsumablesHandler struct {
	store store.Store
}

// NewConsumablesHandler creates a new ConsumablesHandler.
func NewConsumablesHandler(s store.Store) *ConsumablesHandler {
	return &ConsumablesHandler{store: s}
}

// --- Input/Output types ---

// ListConsumablesOutput is the response for every priced consumable.
type ListConsumablesOutput struct {
	Body []views.ConsumableSummary
}

// EffectTypeInput selects the effect type to rank.
type EffectTypeInput struct {
	EffectType string `path:"effect_type" doc:"Effect type (heal, delayed_heal, boost, restore)"`
}

// EffectTypeOutput is the ranking for one effect type.
type EffectTypeOutput struct {
	Body []views.EffectRanking
}

// TopHealingInput is the input for the top healing foods query.
type TopHealingInput struct {
	Limit int `query:"limit" doc:"Number of results (default 10, capped at 50)" minimum:"1"`
}

// TopHealingOutput is the ranking of heal effects.
type TopHealingOutput struct {
	Body []views.HealingFood
}

// SearchConsumablesInput is the input for searching consumables by name.
type SearchConsumablesInput struct {
	Name string `query:"name" doc:"Case-insensitive name substring" required:"true" minLength:"1"`
}

// SearchConsumablesOutput is the response for consumable searches.
type SearchConsumablesOutput struct {
	Body []views.ConsumableMatch
}

// --- Handlers ---

// ListConsumables returns every priced consumable with its effects grouped.
func (h *ConsumablesHandler) ListConsumables(
	ctx context.Context,
	_ *struct{},
) (*ListConsumablesOutput, error) {
	rows, err := h.store.ListConsumables(ctx, store.ConsumableQuery{Priced: true})
	if err != nil {
		return nil, huma.Error500InternalServerError("listing consumables failed: " + err.Error())
	}

	out := views.GroupConsumables(rows)
	if out == nil {
		out = []views.ConsumableSummary{}
	}

	return &ListConsumablesOutput{Body: out}, nil
}

// ByEffectType ranks the effects of one type by amount per coin.
func (h *ConsumablesHandler) ByEffectType(
	ctx context.Context,
	input *EffectTypeInput,
) (*EffectTypeOutput, error) {
	et := domain.EffectType(input.EffectType)
	if !et.Valid() {
		return nil, huma.Error400BadRequest("invalid effect type " + input.EffectType)
	}

	rows, err := h.store.ListConsumables(ctx, store.ConsumableQuery{EffectType: &et, Priced: true})
	if err != nil {
		return nil, huma.Error500InternalServerError("listing consumables failed: " + err.Error())
	}

	return &EffectTypeOutput{Body: views.RankEffects(rows)}, nil
}

// TopHealing returns the heal effects with the most hitpoints per coin.
func (h *ConsumablesHandler) TopHealing(
	ctx context.Context,
	input *TopHealingInput,
) (*TopHealingOutput, error) {
	heal := domain.EffectHeal
	rows, err := h.store.ListConsumables(ctx, store.ConsumableQuery{EffectType: &heal, Priced: true})
	if err != nil {
		return nil, huma.Error500InternalServerError("listing healing foods failed: " + err.Error())
	}

	out := views.TopHealing(rows, input.Limit)
	if out == nil {
		out = []views.HealingFood{}
	}

	return &TopHealingOutput{Body: out}, nil
}

// Search finds consumables by name and returns each with all its effects.
func (h *ConsumablesHandler) Search(
	ctx context.Context,
	input *SearchConsumablesInput,
) (*SearchConsumablesOutput, error) {
	rows, err := h.store.ListConsumables(ctx, store.ConsumableQuery{Name: &input.Name})
	if err != nil {
		return nil, huma.Error500InternalServerError("searching consumables failed: " + err.Error())
	}

	out := views.SearchConsumables(rows)
	if out == nil {
		out = []views.ConsumableMatch{}
	}

	return &SearchConsumablesOutput{Body: out}, nil
}

// RegisterConsumableRoutes registers consumable endpoints with the Huma API.
func RegisterConsumableRoutes(api huma.API, h *ConsumablesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-consumables",
		Method:      http.MethodGet,
		Path:        "/api/v1/consumables",
		Summary:     "List consumables",
		Description: "Returns every priced consumable with its effects, value per coin and amount per bite.",
		Tags:        []string{"consumables"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListConsumables)

	huma.Register(api, huma.Operation{
		OperationID: "consumables-by-effect",
		Method:      http.MethodGet,
		Path:        "/api/v1/consumables/effect/{effect_type}",
		Summary:     "Consumables by effect type",
		Description: "Ranks the effects of one type by amount per coin.",
		Tags:        []string{"consumables"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.ByEffectType)

	huma.Register(api, huma.Operation{
		OperationID: "top-healing-foods",
		Method:      http.MethodGet,
		Path:        "/api/v1/consumables/healing/top",
		Summary:     "Top healing foods",
		Description: "Returns the foods with the most hitpoints healed per coin.",
		Tags:        []string{"consumables"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.TopHealing)

	huma.Register(api, huma.Operation{
		OperationID: "search-consumables",
		Method:      http.MethodGet,
		Path:        "/api/v1/consumables/search",
		Summary:     "Search consumables",
		Description: "Finds consumables by name and returns each with its price and every effect.",
		Tags:        []string{"consumables"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Search)
}
