package store

// Catalog lookup queries.
const (
	queryFindItemByName = `
		SELECT id, name FROM items
		WHERE LOWER(name) = LOWER($1)
		ORDER BY id
		LIMIT 1`

	queryFindItemByPartialName = `
		SELECT id, name FROM items
		WHERE LOWER(name) LIKE '%' || LOWER($1) || '%' ESCAPE '\'
		ORDER BY id
		LIMIT 1`
)

// Sync write queries.
const (
	queryUpsertItem = `
		INSERT INTO items (id, name, members, max_limit, value, highalch, lowalch, icon)
		VALUES (@id, @name, @members, @max_limit, @value, @highalch, @lowalch, @icon)
		ON CONFLICT (id) DO UPDATE SET
			name      = EXCLUDED.name,
			members   = EXCLUDED.members,
			max_limit = EXCLUDED.max_limit,
			value     = EXCLUDED.value,
			highalch  = EXCLUDED.highalch,
			lowalch   = EXCLUDED.lowalch,
			icon      = EXCLUDED.icon`

	queryUpsertPrice = `
		INSERT INTO item_prices (item_id, current_price, current_trend, today_price, today_trend, fetched_at)
		VALUES (@item_id, @current_price, @current_trend, @today_price, @today_trend, now())
		ON CONFLICT (item_id) DO UPDATE SET
			current_price = EXCLUDED.current_price,
			current_trend = EXCLUDED.current_trend,
			today_price   = EXCLUDED.today_price,
			today_trend   = EXCLUDED.today_trend,
			fetched_at    = now()
		RETURNING fetched_at`

	queryUpdateVolume = `
		UPDATE item_prices SET volume = $2 WHERE item_id = $1`

	queryUpsertEquipment = `
		INSERT INTO equipment_attributes (
			item_id, stab_acc, slash_acc, crush_acc, magic_acc, ranged_acc,
			stab_def, slash_def, crush_def, magic_def, ranged_def,
			melee_strength, ranged_strength, magic_damage, prayer_bonus,
			weight, speed, slot
		) VALUES (
			@item_id, @stab_acc, @slash_acc, @crush_acc, @magic_acc, @ranged_acc,
			@stab_def, @slash_def, @crush_def, @magic_def, @ranged_def,
			@melee_strength, @ranged_strength, @magic_damage, @prayer_bonus,
			@weight, @speed, @slot
		)
		ON CONFLICT (item_id) DO UPDATE SET
			stab_acc        = EXCLUDED.stab_acc,
			slash_acc       = EXCLUDED.slash_acc,
			crush_acc       = EXCLUDED.crush_acc,
			magic_acc       = EXCLUDED.magic_acc,
			ranged_acc      = EXCLUDED.ranged_acc,
			stab_def        = EXCLUDED.stab_def,
			slash_def       = EXCLUDED.slash_def,
			crush_def       = EXCLUDED.crush_def,
			magic_def       = EXCLUDED.magic_def,
			ranged_def      = EXCLUDED.ranged_def,
			melee_strength  = EXCLUDED.melee_strength,
			ranged_strength = EXCLUDED.ranged_strength,
			magic_damage    = EXCLUDED.magic_damage,
			prayer_bonus    = EXCLUDED.prayer_bonus,
			weight          = EXCLUDED.weight,
			speed           = EXCLUDED.speed,
			slot            = EXCLUDED.slot`

	// xmax is zero only on a freshly inserted tuple.
	queryUpsertConsumableEffect = `
		INSERT INTO consumable_attributes (item_id, effect_type, skill, amount, bites)
		VALUES (@item_id, @effect_type, @skill, @amount, @bites)
		ON CONFLICT (item_id, effect_type, skill) DO UPDATE SET
			amount = EXCLUDED.amount,
			bites  = EXCLUDED.bites
		RETURNING (xmax = 0) AS inserted`
)

// Read queries.
const (
	queryGetItem = baseItemsSelect + `
		WHERE i.id = $1`

	queryListPrices = `
		SELECT item_id, current_price, COALESCE(current_trend, 'neutral'),
			today_price, COALESCE(today_trend, 'neutral'), volume, fetched_at
		FROM item_prices
		ORDER BY item_id`

	queryListEquipment = `
		SELECT ea.item_id, i.name, p.current_price, ea.slot,
			ea.stab_acc, ea.slash_acc, ea.crush_acc, ea.magic_acc, ea.ranged_acc,
			ea.stab_def, ea.slash_def, ea.crush_def, ea.magic_def, ea.ranged_def,
			ea.melee_strength, ea.ranged_strength, ea.magic_damage, ea.prayer_bonus,
			ea.weight, ea.speed
		FROM equipment_attributes ea
		JOIN items i ON ea.item_id = i.id
		LEFT JOIN item_prices p ON ea.item_id = p.item_id
		WHERE p.current_price IS NOT NULL AND p.current_price > 0
		ORDER BY ea.slot, i.name`

	baseConsumablesSelect = `
		SELECT ca.item_id, i.name, p.current_price, p.current_trend,
			p.today_price, p.today_trend, p.volume, p.fetched_at,
			ca.effect_type, ca.skill, ca.amount, ca.bites
		FROM consumable_attributes ca
		JOIN items i ON ca.item_id = i.id
		LEFT JOIN item_prices p ON ca.item_id = p.item_id`

	consumablesOrderBy = `
		ORDER BY i.name, ca.effect_type`
)

// Scheduler queries.
const (
	queryInsertJobRun = `
		INSERT INTO job_runs (job_name)
		VALUES ($1)
		RETURNING id`

	queryCompleteJobRun = `
		UPDATE job_runs SET
			completed_at  = now(),
			status        = $2,
			error_text    = $3,
			rows_affected = $4
		WHERE id = $1`

	queryListJobRuns = `
		SELECT id, job_name, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM job_runs
		WHERE job_name = $1
		ORDER BY started_at DESC
		LIMIT $2`

	queryListLatestJobRuns = `
		SELECT DISTINCT ON (job_name)
			id, job_name, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM job_runs
		ORDER BY job_name, started_at DESC`

	queryMarkStaleJobRunsCrashed = `
		UPDATE job_runs SET
			status       = 'crashed',
			completed_at = now()
		WHERE status = 'running' AND started_at < $1`

	queryDeleteOldJobRuns = `
		DELETE FROM job_runs WHERE started_at < now() - interval '30 days'`
)
