package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/osrs-price-tracker/internal/store"
	"github.com/donaldgifford/osrs-price-tracker/internal/views"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// OptimalHandler serves equipment efficiency rankings.
type OptimalHandler struct {
	store store.Store
}

// NewOptimalHandler creates a new OptimalHandler.
func NewOptimalHandler(s store.Store) *OptimalHandler {
	return &OptimalHandler{store: s}
}

// AllEquipmentOutput is the response for every priced equipment row.
type AllEquipmentOutput struct {
	Body []views.EquipmentEfficiency
}

// OptimalEquipmentInput selects the stat to rank by.
type OptimalEquipmentInput struct {
	Attribute string `path:"attribute" doc:"Stat to rank by (e.g. slash_def, prayer_bonus)"`
	Limit     int    `query:"limit"    doc:"Items per slot (default 5)"                      minimum:"1" maximum:"100"`
}

// OptimalEquipmentOutput is the per-slot ranking for one stat.
type OptimalEquipmentOutput struct {
	Body []views.OptimalEquipment
}

// AllEquipment returns every priced equipment row with per-stat efficiencies.
func (h *OptimalHandler) AllEquipment(
	ctx context.Context,
	_ *struct{},
) (*AllEquipmentOutput, error) {
	rows, err := h.store.ListEquipment(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing equipment failed: " + err.Error())
	}

	return &AllEquipmentOutput{Body: views.AllEquipment(rows)}, nil
}

// OptimalEquipment returns the best items per slot by stat per coin.
func (h *OptimalHandler) OptimalEquipment(
	ctx context.Context,
	input *OptimalEquipmentInput,
) (*OptimalEquipmentOutput, error) {
	if !domain.IsRankableStat(input.Attribute) {
		return nil, huma.Error400BadRequest(
			"invalid attribute " + input.Attribute + ", valid: " + strings.Join(domain.RankableStats, ", "),
		)
	}

	rows, err := h.store.ListEquipment(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing equipment failed: " + err.Error())
	}

	ranked, err := views.OptimalBySlot(rows, input.Attribute, input.Limit)
	if errors.Is(err, views.ErrUnknownAttribute) {
		return nil, huma.Error400BadRequest(err.Error())
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("ranking equipment failed: " + err.Error())
	}
	if ranked == nil {
		ranked = []views.OptimalEquipment{}
	}

	return &OptimalEquipmentOutput{Body: ranked}, nil
}

// RegisterOptimalRoutes registers equipment ranking endpoints with the Huma API.
func RegisterOptimalRoutes(api huma.API, h *OptimalHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "all-equipment",
		Method:      http.MethodGet,
		Path:        "/api/v1/optimal/equipment",
		Summary:     "All equipment with efficiencies",
		Description: "Returns every priced equipment row with each stat paired with its value per coin. " +
			"Weight and speed report coins per unit.",
		Tags:   []string{"optimal"},
		Errors: []int{http.StatusInternalServerError},
	}, h.AllEquipment)

	huma.Register(api, huma.Operation{
		OperationID: "optimal-equipment",
		Method:      http.MethodGet,
		Path:        "/api/v1/optimal/equipment/{attribute}",
		Summary:     "Best equipment per slot",
		Description: "Returns the top items of each slot ranked by the chosen stat per coin.",
		Tags:        []string{"optimal"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.OptimalEquipment)
}
