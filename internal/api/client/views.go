package client

import (
	"context"
	"net/url"

	"github.com/donaldgifford/osrs-price-tracker/internal/views"
)

// AllEquipment returns every priced equipment row with per-stat efficiencies.
func (c *Client) AllEquipment(ctx context.Context) ([]views.EquipmentEfficiency, error) {
	var out []views.EquipmentEfficiency
	if err := c.get(ctx, "/api/v1/optimal/equipment", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OptimalEquipment returns the best items per slot for one stat.
func (c *Client) OptimalEquipment(ctx context.Context, attribute string, limit int) ([]views.OptimalEquipment, error) {
	v := url.Values{}
	setInt(v, "limit", limit)

	var out []views.OptimalEquipment
	if err := c.get(ctx, "/api/v1/optimal/equipment/"+url.PathEscape(attribute), v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListConsumables returns every priced consumable with grouped effects.
func (c *Client) ListConsumables(ctx context.Context) ([]views.ConsumableSummary, error) {
	var out []views.ConsumableSummary
	if err := c.get(ctx, "/api/v1/consumables", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConsumablesByEffect ranks the effects of one type by amount per coin.
func (c *Client) ConsumablesByEffect(ctx context.Context, effectType string) ([]views.EffectRanking, error) {
	var out []views.EffectRanking
	if err := c.get(ctx, "/api/v1/consumables/effect/"+url.PathEscape(effectType), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TopHealing returns the foods with the most hitpoints per coin.
func (c *Client) TopHealing(ctx context.Context, limit int) ([]views.HealingFood, error) {
	v := url.Values{}
	setInt(v, "limit", limit)

	var out []views.HealingFood
	if err := c.get(ctx, "/api/v1/consumables/healing/top", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchConsumables finds consumables by name.
func (c *Client) SearchConsumables(ctx context.Context, name string) ([]views.ConsumableMatch, error) {
	v := url.Values{}
	v.Set("name", name)

	var out []views.ConsumableMatch
	if err := c.get(ctx, "/api/v1/consumables/search", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}
