package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByName   = "name"
	orderByPrice  = "price"
	orderByVolume = "volume"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByName:   "i.name ASC",
	orderByPrice:  "p.current_price DESC NULLS LAST",
	orderByVolume: "p.volume DESC NULLS LAST",
}

const defaultOrderBy = "i.name ASC"

const baseItemsSelect = `SELECT i.id, i.name, i.members, i.max_limit, i.value,
	i.highalch, i.lowalch, i.icon,
	p.current_price, p.current_trend, p.volume, p.today_price, p.today_trend, p.fetched_at
FROM items i
LEFT JOIN item_prices p ON p.item_id = i.id`

const countItemsSelect = `SELECT COUNT(*) FROM items i LEFT JOIN item_prices p ON p.item_id = i.id`

// likePattern escapes LIKE metacharacters in s so it matches literally.
func likePattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for an item query.
// It returns two SQL strings (one for the data query, one for the count query)
// and the positional parameters.
func (q *ItemQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Search != nil && *q.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			`LOWER(i.name) LIKE '%%' || LOWER($%d) || '%%' ESCAPE '\'`, paramIdx,
		))
		args = append(args, likePattern(*q.Search))
		paramIdx++
	}

	if q.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.current_price >= $%d", paramIdx))
		args = append(args, *q.MinPrice)
		paramIdx++
	}

	if q.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.current_price <= $%d", paramIdx))
		args = append(args, *q.MaxPrice)
		paramIdx++
	}

	if q.Priced {
		conditions = append(conditions, "p.current_price > 0")
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s, i.id LIMIT %d OFFSET %d",
		baseItemsSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countItemsSelect + whereClause

	return dataSQL, countSQL, args
}

// ToSQL builds the consumable effect query and its positional parameters.
func (q *ConsumableQuery) ToSQL() (string, []any) {
	var (
		conditions []string
		args       []any
	)
	paramIdx := 1

	if q.EffectType != nil {
		conditions = append(conditions, fmt.Sprintf("ca.effect_type = $%d", paramIdx))
		args = append(args, string(*q.EffectType))
		paramIdx++
	}

	if q.Name != nil {
		conditions = append(conditions, fmt.Sprintf(
			`LOWER(i.name) LIKE '%%' || LOWER($%d) || '%%' ESCAPE '\'`, paramIdx,
		))
		args = append(args, likePattern(*q.Name))
	}

	if q.Priced {
		conditions = append(conditions,
			"p.current_price IS NOT NULL",
			"p.current_price > 0",
			"ca.amount > 0",
		)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	return baseConsumablesSelect + whereClause + consumablesOrderBy, args
}
