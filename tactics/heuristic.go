package tactics

import "github.com/nstehr/vimy/vimy-tactics/model"

// Manhattan is the grid distance between a and b with 4-connected movement.
// It never overestimates a unit-cost path, so pathfinders can use it as their
// A* estimate too.
func Manhattan(a, b model.Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
