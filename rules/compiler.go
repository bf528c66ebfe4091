package rules

import "fmt"

// Rule categories.
const (
	categoryRouting    = "routing"
	categoryProduction = "production"
)

// DefaultRules compiles the default doctrine.
func DefaultRules() []*Rule {
	return CompileDoctrine(DefaultDoctrine())
}

// CompileDoctrine generates a complete rule set from a doctrine's weights.
// All conditions are built via fmt.Sprintf with interpolated numbers, so the
// compiler never produces invalid expr.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	// --- Routing: at most one routing rule fires per tick ---

	rules = append(rules, &Rule{
		Name:         "reroute-all",
		Priority:     900,
		Category:     categoryRouting,
		Exclusive:    true,
		ConditionSrc: `RepathRequested() && FriendlyCount() > 0 && ResourceCount() > 0`,
		Action:       ActionRerouteAll,
	})

	rules = append(rules, &Rule{
		Name:         "route-idle-units",
		Priority:     800,
		Category:     categoryRouting,
		Exclusive:    true,
		ConditionSrc: `len(IdleUnits()) > 0 && ResourceCount() > 0`,
		Action:       ActionRouteIdleUnits,
	})

	// --- Production (parameterized by EconomyPriority / Expansion) ---

	unitCap := lerp(3, 20, d.Expansion)
	spawnReserve := lerp(400, 100, d.EconomyPriority)

	// Undiscovered objectives are worth three times a known one, so a scouting
	// doctrine spawns with less cash in reserve while any remain hidden.
	if d.ScoutPriority > 0.3 {
		hiddenThreshold := lerp(6, 1, d.ScoutPriority)
		rules = append(rules, &Rule{
			Name:         "spawn-scout",
			Priority:     710,
			Category:     categoryProduction,
			Exclusive:    true,
			ConditionSrc: fmt.Sprintf(`SpawnReady(%d) && HiddenResourceCount() >= %d && Cash() >= SpawnCost() && UnoccupiedCount() > 0 && FriendlyCount() < %d`, d.SpawnCooldown, hiddenThreshold, unitCap),
			Action:       ActionSpawnUnit,
		})
	}

	rules = append(rules, &Rule{
		Name:         "spawn-unit",
		Priority:     700,
		Category:     categoryProduction,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`SpawnReady(%d) && Cash() >= SpawnCost() + %d && UnoccupiedCount() > 0 && FriendlyCount() < %d`, d.SpawnCooldown, spawnReserve, unitCap),
		Action:       ActionSpawnUnit,
	})

	return rules
}
