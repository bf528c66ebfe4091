package rules

import "math"

// Doctrine is the operator-tunable posture of the agent. Weights are 0.0–1.0;
// the compiler maps them to concrete rule thresholds.
type Doctrine struct {
	Name            string  `json:"name" yaml:"name"`
	Rationale       string  `json:"rationale" yaml:"rationale"`
	EconomyPriority float64 `json:"economy_priority" yaml:"economy_priority"`
	Expansion       float64 `json:"expansion" yaml:"expansion"`
	ScoutPriority   float64 `json:"scout_priority" yaml:"scout_priority"`
	// SpawnCooldown is the number of ticks to wait after a spawn order so the
	// mod can report the new unit before another site is picked.
	SpawnCooldown int `json:"spawn_cooldown" yaml:"spawn_cooldown"`
}

// DefaultDoctrine returns a balanced baseline doctrine.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:            "Balanced",
		Rationale:       "Default balanced posture",
		EconomyPriority: 0.5,
		Expansion:       0.5,
		ScoutPriority:   0.5,
		SpawnCooldown:   25,
	}
}

// Validate clamps all weights to their valid ranges.
func (d *Doctrine) Validate() {
	d.EconomyPriority = clamp(d.EconomyPriority, 0, 1)
	d.Expansion = clamp(d.Expansion, 0, 1)
	d.ScoutPriority = clamp(d.ScoutPriority, 0, 1)
	d.SpawnCooldown = clampInt(d.SpawnCooldown, 0, 500)
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// lerp linearly interpolates between min and max by t (0–1), returning an int.
func lerp(min, max int, t float64) int {
	return min + int(math.Round(float64(max-min)*t))
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
