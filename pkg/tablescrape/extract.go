package tablescrape

import (
	"strings"

	"github.com/donaldgifford/osrs-price-tracker/pkg/normalize"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// Column layout of the equipment slot tables and the food table.
const (
	nameColumn        = 1
	firstStatColumn   = 3
	speedColumn       = 18
	minEquipmentCells = 18
	healingColumn     = 2
	minFoodCells      = 3
)

// mediaPrefix marks image links that wiki tables put in their icon columns.
const mediaPrefix = "File:"

// CellName resolves the item name a cell refers to. Wiki anchors carry the
// canonical name in their title, which can differ from the display text for
// disambiguated variants.
func CellName(c Cell) string {
	for _, s := range []string{c.AnchorTitle, c.AnchorText, c.Text} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func usableName(name string) bool {
	return name != "" && !strings.Contains(name, mediaPrefix)
}

// ExtractEquipment reads an equipment slot table. Only data cells count
// toward the column layout; rows shorter than the stat block or without a
// usable name are skipped.
func ExtractEquipment(r Reader, slot domain.Slot) []domain.EquipmentRow {
	var out []domain.EquipmentRow
	for _, table := range r.Tables() {
		for _, row := range table {
			if er, ok := equipmentRow(row.dataCells(), slot); ok {
				out = append(out, er)
			}
		}
	}
	return out
}

func equipmentRow(cells Row, slot domain.Slot) (domain.EquipmentRow, bool) {
	if len(cells) < minEquipmentCells {
		return domain.EquipmentRow{}, false
	}

	name := CellName(cells[nameColumn])
	if !usableName(name) {
		return domain.EquipmentRow{}, false
	}

	er := domain.EquipmentRow{
		ScrapedRow: domain.ScrapedRow{
			DisplayName: name,
			RawFields:   make(map[string]string, len(domain.StatColumns)),
		},
		Slot: slot,
	}

	for i, stat := range domain.StatColumns {
		col := firstStatColumn + i
		if col >= len(cells) {
			// Speed is only present on tables with the trailing column.
			break
		}
		text := cells[col].Text
		er.RawFields[stat] = text
		er.Stats.Set(stat, normalize.NumberPtr(text))
	}

	return er, true
}

// ExtractConsumables reads the food tables. Header and data cells both count
// toward the layout; rows whose healing notation carries no digits are
// dropped.
func ExtractConsumables(r Reader) []domain.ConsumableRow {
	var out []domain.ConsumableRow
	for _, table := range r.Tables() {
		for _, row := range table {
			if cr, ok := consumableRow(row); ok {
				out = append(out, cr)
			}
		}
	}
	return out
}

func consumableRow(cells Row) (domain.ConsumableRow, bool) {
	if len(cells) < minFoodCells {
		return domain.ConsumableRow{}, false
	}

	name := CellName(cells[nameColumn])
	if !usableName(name) {
		return domain.ConsumableRow{}, false
	}

	text := strings.TrimSpace(cells[healingColumn].Text)
	healing, ok := normalize.ParseHealing(text)
	if !ok {
		return domain.ConsumableRow{}, false
	}

	return domain.ConsumableRow{
		ScrapedRow: domain.ScrapedRow{
			DisplayName: name,
			RawFields:   map[string]string{"healing": text},
		},
		Healing: healing,
	}, true
}
