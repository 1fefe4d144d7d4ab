package tablescrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

const slotPage = `<html><body>
<table class="wikitable sortable">
<tbody>
<tr><th></th><th>Name</th><th>Members</th><th>Stab</th></tr>
<tr>
<td><a href="/w/File:Rune_sword.png" class="image"><img src="x.png"></a></td>
<td><a href="/w/Rune_sword" title="Rune sword">Rune sword</a></td>
<td>No</td>
<td>+38</td><td>+26</td><td>-2</td><td>0</td><td>0</td>
<td>0</td><td>+2</td><td>+1</td><td>0</td><td>0</td>
<td>+39</td><td>0</td><td>0</td><td>0</td><td>1.8</td>
<td>4</td>
</tr>
<tr><td>too</td><td>short</td></tr>
</tbody>
</table>
<table class="other"><tbody><tr><td>ignored</td></tr></tbody></table>
</body></html>`

func TestFromHTML_EquipmentPage(t *testing.T) {
	t.Parallel()

	doc, err := FromHTML(strings.NewReader(slotPage), "")
	require.NoError(t, err)
	require.Len(t, doc, 1, "only wikitables are read")
	assert.Equal(t, 3, doc.RowCount())

	header := doc[0][0]
	require.NotEmpty(t, header)
	assert.True(t, header[0].Header)

	rows := ExtractEquipment(doc, domain.SlotWeapon)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "Rune sword", r.DisplayName)
	require.NotNil(t, r.Stats.StabAcc)
	assert.InDelta(t, 38.0, *r.Stats.StabAcc, 0)
	require.NotNil(t, r.Stats.CrushAcc)
	assert.InDelta(t, -2.0, *r.Stats.CrushAcc, 0)
	require.NotNil(t, r.Stats.MeleeStrength)
	assert.InDelta(t, 39.0, *r.Stats.MeleeStrength, 0)
	require.NotNil(t, r.Stats.Weight)
	assert.InDelta(t, 1.8, *r.Stats.Weight, 1e-9)
	require.NotNil(t, r.Stats.Speed)
	assert.InDelta(t, 4.0, *r.Stats.Speed, 0)
}

const foodPage = `<html><body>
<table class="wikitable">
<tr><th></th><th>Food</th><th>Heals</th></tr>
<tr><th><a href="/w/File:Shark.png" title="File:Shark.png"></a></th><td><a href="/w/Shark" title="Shark">Shark</a></td><td>20</td></tr>
<tr><th></th><td><a href="/w/Cake">Cake</a></td><td>4 × 3</td></tr>
</table>
</body></html>`

func TestFromHTML_FoodPage(t *testing.T) {
	t.Parallel()

	doc, err := FromHTML(strings.NewReader(foodPage), DefaultTableSelector)
	require.NoError(t, err)

	rows := ExtractConsumables(doc)
	require.Len(t, rows, 2)
	assert.Equal(t, "Shark", rows[0].DisplayName)
	assert.Equal(t, 20, rows[0].Healing.Amount)
	assert.Equal(t, "Cake", rows[1].DisplayName, "anchor text used when the title is missing")
	assert.Equal(t, 3, rows[1].Healing.Bites)
}

func TestFromHTML_NoTables(t *testing.T) {
	t.Parallel()

	doc, err := FromHTML(strings.NewReader("<p>nothing here</p>"), "")
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestFromHTML_NoBreakSpaceHealing(t *testing.T) {
	t.Parallel()

	const page = `<table class="wikitable">
<tr><th>Item</th><th>Heals</th><th>Price</th></tr>
<tr><td><a href="/w/Kebab" title="Kebab">Kebab</a></td><td>(3&nbsp;-&nbsp;13)&nbsp;&times;&nbsp;4</td><td>20</td></tr>
<tr><td><a href="/w/Spicy_stew" title="Spicy stew">Spicy stew</a></td><td>12&nbsp;+&nbsp;9</td><td>1</td></tr>
<tr><td><a href="/w/Cake" title="Cake">Cake</a></td><td>4&nbsp;&times;&nbsp;3</td><td>50</td></tr>
</table>`

	doc, err := FromHTML(strings.NewReader(page), DefaultTableSelector)
	require.NoError(t, err)

	rows := ExtractConsumables(doc)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.Healing{Amount: 0, Bites: 4}, rows[0].Healing)
	assert.Equal(t, domain.Healing{Amount: 12, Delayed: 9, Bites: 1}, rows[1].Healing)
	assert.Equal(t, domain.Healing{Amount: 4, Bites: 3}, rows[2].Healing)
}
