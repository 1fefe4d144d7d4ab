// Package domain defines the core business types for the OSRS price tracker.
package domain

import (
	"slices"
	"time"
)

// Trend is the price direction reported by the pricing API.
type Trend string

// Trend constants.
const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
	TrendNeutral  Trend = "neutral"
)

// ParseTrend maps a raw API trend to a Trend. Unknown values are neutral.
func ParseTrend(raw string) Trend {
	switch Trend(raw) {
	case TrendPositive, TrendNegative:
		return Trend(raw)
	default:
		return TrendNeutral
	}
}

// Slot is the equipment slot a piece of gear occupies.
type Slot string

// Slot constants.
const (
	SlotAmmunition Slot = "ammunition"
	SlotBody       Slot = "body"
	SlotCape       Slot = "cape"
	SlotFeet       Slot = "feet"
	SlotHands      Slot = "hands"
	SlotHead       Slot = "head"
	SlotLegs       Slot = "legs"
	SlotNeck       Slot = "neck"
	SlotRing       Slot = "ring"
	SlotShield     Slot = "shield"
	SlotTwoHanded  Slot = "two_handed"
	SlotWeapon     Slot = "weapon"
)

// AllSlots lists every slot in scrape order.
var AllSlots = []Slot{
	SlotAmmunition, SlotBody, SlotCape, SlotFeet, SlotHands, SlotHead,
	SlotLegs, SlotNeck, SlotRing, SlotShield, SlotTwoHanded, SlotWeapon,
}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	return slices.Contains(AllSlots, s)
}

// EffectType is the kind of effect a consumable applies.
type EffectType string

// Effect type constants.
const (
	EffectHeal        EffectType = "heal"
	EffectDelayedHeal EffectType = "delayed_heal"
	EffectBoost       EffectType = "boost"
	EffectRestore     EffectType = "restore"
)

// AllEffectTypes lists every effect type.
var AllEffectTypes = []EffectType{EffectHeal, EffectDelayedHeal, EffectBoost, EffectRestore}

// Valid reports whether e is a known effect type.
func (e EffectType) Valid() bool {
	return slices.Contains(AllEffectTypes, e)
}

// SkillHitpoints is the skill every scraped healing effect applies to.
const SkillHitpoints = "hitpoints"

// Item is the canonical catalog record all scraped data is attached to.
type Item struct {
	ID         int      `json:"id"                 db:"id"`
	Name       string   `json:"name"               db:"name"`
	Members    bool     `json:"members"            db:"members"`
	DailyLimit *int     `json:"max_limit,omitempty" db:"max_limit"`
	Value      float64  `json:"value"              db:"value"`
	HighAlch   *float64 `json:"highalch,omitempty" db:"highalch"`
	LowAlch    *float64 `json:"lowalch,omitempty"  db:"lowalch"`
	Icon       *string  `json:"icon,omitempty"     db:"icon"`
}

// ItemRef is the identity of a catalog item returned by name lookups.
type ItemRef struct {
	ID   int    `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}

// PriceSnapshot is the latest known price for an item. One row per item.
type PriceSnapshot struct {
	ItemID       int       `json:"item_id"                 db:"item_id"`
	CurrentPrice *float64  `json:"current_price,omitempty" db:"current_price"`
	CurrentTrend Trend     `json:"current_trend"           db:"current_trend"`
	TodayPrice   *float64  `json:"today_price,omitempty"   db:"today_price"`
	TodayTrend   Trend     `json:"today_trend"             db:"today_trend"`
	Volume       *int64    `json:"volume,omitempty"        db:"volume"`
	FetchedAt    time.Time `json:"fetched_at"              db:"fetched_at"`
}

// ItemVolume is a trading volume reading for one item.
type ItemVolume struct {
	ItemID int   `json:"item_id"`
	Volume int64 `json:"volume"`
}

// ItemWithPrice joins an item with its latest price snapshot, if any.
type ItemWithPrice struct {
	Item
	CurrentPrice *float64   `json:"current_price"`
	CurrentTrend *string    `json:"current_trend"`
	Volume       *int64     `json:"volume"`
	TodayPrice   *float64   `json:"today_price"`
	TodayTrend   *string    `json:"today_trend"`
	FetchedAt    *time.Time `json:"fetched_at"`
}

// Stat names in wiki column order (columns 3 through 18).
const (
	StatStabAcc        = "stab_acc"
	StatSlashAcc       = "slash_acc"
	StatCrushAcc       = "crush_acc"
	StatMagicAcc       = "magic_acc"
	StatRangedAcc      = "ranged_acc"
	StatStabDef        = "stab_def"
	StatSlashDef       = "slash_def"
	StatCrushDef       = "crush_def"
	StatMagicDef       = "magic_def"
	StatRangedDef      = "ranged_def"
	StatMeleeStrength  = "melee_strength"
	StatRangedStrength = "ranged_strength"
	StatMagicDamage    = "magic_damage"
	StatPrayerBonus    = "prayer_bonus"
	StatWeight         = "weight"
	StatSpeed          = "speed"
)

// StatColumns is the fixed stat order of an equipment slot table. The first
// entry lives in column 3; speed is the optional trailing column 18.
var StatColumns = []string{
	StatStabAcc, StatSlashAcc, StatCrushAcc, StatMagicAcc, StatRangedAcc,
	StatStabDef, StatSlashDef, StatCrushDef, StatMagicDef, StatRangedDef,
	StatMeleeStrength, StatRangedStrength, StatMagicDamage, StatPrayerBonus,
	StatWeight, StatSpeed,
}

// RankableStats are the higher-is-better stats that can be ranked by value
// per coin.
var RankableStats = StatColumns[:14]

// IsRankableStat reports whether name is a higher-is-better stat.
func IsRankableStat(name string) bool {
	return slices.Contains(RankableStats, name)
}

// EquipmentStats holds the optional combat and utility stats of an item. A nil
// field means the stat does not apply, not zero.
type EquipmentStats struct {
	StabAcc        *float64 `json:"stab_acc"`
	SlashAcc       *float64 `json:"slash_acc"`
	CrushAcc       *float64 `json:"crush_acc"`
	MagicAcc       *float64 `json:"magic_acc"`
	RangedAcc      *float64 `json:"ranged_acc"`
	StabDef        *float64 `json:"stab_def"`
	SlashDef       *float64 `json:"slash_def"`
	CrushDef       *float64 `json:"crush_def"`
	MagicDef       *float64 `json:"magic_def"`
	RangedDef      *float64 `json:"ranged_def"`
	MeleeStrength  *float64 `json:"melee_strength"`
	RangedStrength *float64 `json:"ranged_strength"`
	MagicDamage    *float64 `json:"magic_damage"`
	PrayerBonus    *float64 `json:"prayer_bonus"`
	Weight         *float64 `json:"weight"`
	Speed          *float64 `json:"speed"`
}

// Ref returns a pointer to the stat field for name, or nil if unknown.
func (s *EquipmentStats) Ref(name string) **float64 {
	switch name {
	case StatStabAcc:
		return &s.StabAcc
	case StatSlashAcc:
		return &s.SlashAcc
	case StatCrushAcc:
		return &s.CrushAcc
	case StatMagicAcc:
		return &s.MagicAcc
	case StatRangedAcc:
		return &s.RangedAcc
	case StatStabDef:
		return &s.StabDef
	case StatSlashDef:
		return &s.SlashDef
	case StatCrushDef:
		return &s.CrushDef
	case StatMagicDef:
		return &s.MagicDef
	case StatRangedDef:
		return &s.RangedDef
	case StatMeleeStrength:
		return &s.MeleeStrength
	case StatRangedStrength:
		return &s.RangedStrength
	case StatMagicDamage:
		return &s.MagicDamage
	case StatPrayerBonus:
		return &s.PrayerBonus
	case StatWeight:
		return &s.Weight
	case StatSpeed:
		return &s.Speed
	default:
		return nil
	}
}

// Get returns the named stat, or nil when absent or unknown.
func (s *EquipmentStats) Get(name string) *float64 {
	f := s.Ref(name)
	if f == nil {
		return nil
	}
	return *f
}

// Set assigns the named stat. Unknown names are ignored.
func (s *EquipmentStats) Set(name string, v *float64) {
	if f := s.Ref(name); f != nil {
		*f = v
	}
}

// EquipmentAttributes is the stored stat row for one item.
type EquipmentAttributes struct {
	ItemID int  `json:"item_id" db:"item_id"`
	Slot   Slot `json:"slot"    db:"slot"`
	EquipmentStats
}

// ConsumableEffect is one stored effect of a consumable, keyed by
// (ItemID, EffectType, Skill).
type ConsumableEffect struct {
	ItemID     int        `json:"item_id"     db:"item_id"`
	EffectType EffectType `json:"effect_type" db:"effect_type"`
	Skill      string     `json:"skill"       db:"skill"`
	Amount     float64    `json:"amount"      db:"amount"`
	Bites      int        `json:"bites"       db:"bites"`
}

// ScrapedRow is a table row extracted from the wiki. It only lives for the
// duration of a sync run.
type ScrapedRow struct {
	DisplayName string            `json:"display_name"`
	RawFields   map[string]string `json:"raw_fields,omitempty"`
	MatchedID   *int              `json:"matched_id,omitempty"`
}

// EquipmentRow is a scraped equipment slot table row.
type EquipmentRow struct {
	ScrapedRow
	Slot  Slot           `json:"slot"`
	Stats EquipmentStats `json:"stats"`
}

// Healing is a parsed healing notation. Amount zero with a matched variable
// notation means "unknown", not "absent".
type Healing struct {
	Amount  int `json:"amount"`
	Delayed int `json:"delayed"`
	Bites   int `json:"bites"`
}

// ConsumableRow is a scraped food table row.
type ConsumableRow struct {
	ScrapedRow
	Healing Healing `json:"healing"`
}

// EquipmentWithPrice is a stored stat row joined with the item name and price.
type EquipmentWithPrice struct {
	ItemID       int      `json:"item_id"`
	ItemName     string   `json:"item_name"`
	CurrentPrice *float64 `json:"current_price"`
	Slot         Slot     `json:"slot"`
	EquipmentStats
}

// ConsumableWithPrice is a stored effect row joined with the item name and
// latest price.
type ConsumableWithPrice struct {
	ItemName     string     `json:"item_name"`
	CurrentPrice *float64   `json:"current_price"`
	CurrentTrend *string    `json:"current_trend,omitempty"`
	TodayPrice   *float64   `json:"today_price,omitempty"`
	TodayTrend   *string    `json:"today_trend,omitempty"`
	Volume       *int64     `json:"volume,omitempty"`
	FetchedAt    *time.Time `json:"fetched_at,omitempty"`
	ConsumableEffect
}

// RunCounters are the per-run outcome counts of a sync job. LookupFailed
// counts rows whose catalog lookup errored; they are included in Failed.
type RunCounters struct {
	Attempted    int `json:"attempted"`
	Matched      int `json:"matched"`
	Persisted    int `json:"persisted"`
	Failed       int `json:"failed"`
	LookupFailed int `json:"lookup_failed,omitempty"`
	Inserted     int `json:"inserted,omitempty"`
	Updated      int `json:"updated,omitempty"`
}

// Add accumulates o into c.
func (c *RunCounters) Add(o RunCounters) {
	c.Attempted += o.Attempted
	c.Matched += o.Matched
	c.Persisted += o.Persisted
	c.Failed += o.Failed
	c.LookupFailed += o.LookupFailed
	c.Inserted += o.Inserted
	c.Updated += o.Updated
}

// Unmatched returns how many attempted rows found no catalog item. Rows
// whose lookup errored are failures, not misses.
func (c RunCounters) Unmatched() int {
	return c.Attempted - c.Matched - c.LookupFailed
}

// Job run status values.
const (
	JobStatusRunning   = "running"
	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"
	JobStatusCrashed   = "crashed"
)

// JobRun records a single execution of a scheduled job.
type JobRun struct {
	ID           string     `json:"id"                      db:"id"`
	JobName      string     `json:"job_name"                db:"job_name"`
	StartedAt    time.Time  `json:"started_at"              db:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"  db:"completed_at"`
	Status       string     `json:"status"                  db:"status"`
	ErrorText    string     `json:"error_text,omitempty"    db:"error_text"`
	RowsAffected *int       `json:"rows_affected,omitempty" db:"rows_affected"`
}
