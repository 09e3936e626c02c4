package metrics

// Metric names
const (
	MetricNameItemPickups  = "arena_item_pickups_total"
	MetricNameItemBreaks   = "arena_item_breaks_total"
	MetricNameItemExpiries = "arena_item_expiries_total"
	MetricNameDamage       = "arena_damage_total"
	MetricNameDeaths       = "arena_deaths_total"
	MetricNameMatches      = "arena_matches_total"
)

// Help texts
const (
	HelpTextItemPickups  = "Items picked up from the arena floor"
	HelpTextItemBreaks   = "Items that broke from wear"
	HelpTextItemExpiries = "Floor items that expired before anyone picked them up"
	HelpTextDamage       = "Damage dealt, by the item that dealt it"
	HelpTextDeaths       = "Player deaths"
	HelpTextMatches      = "Finished matches, by how they ended"
)

// Labels
const (
	LabelKind   = "kind"
	LabelReason = "reason"
)
