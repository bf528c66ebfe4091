// Package pathfind provides the grid search used by the tactical evaluators.
package pathfind

import (
	"container/heap"

	"github.com/nstehr/vimy/vimy-tactics/model"
	"github.com/nstehr/vimy/vimy-tactics/tactics"
)

// AStar is a 4-connected A* search over tile passability. Stepping onto a
// tile costs its MoveCost. It holds no per-search state, so one value can
// serve concurrent callers.
type AStar struct {
	// MaxExpansions bounds the number of nodes popped per search: the goal
	// is found only if it is among the first MaxExpansions pops. Zero means
	// unlimited; a search that hits the cap reports no path.
	MaxExpansions int
}

func New(maxExpansions int) *AStar {
	return &AStar{MaxExpansions: maxExpansions}
}

type node struct {
	pos   model.Coord
	g     float64 // cost from start
	f     float64 // g + heuristic
	seq   int     // insertion order, breaks f ties
	index int
}

type openSet []*node

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*o = old[:len(old)-1]
	n.index = -1
	return n
}

// FindPath returns the cheapest route from start to goal, both ends included.
// Returns an empty path if either end is off the grid, the goal is
// impassable, or no route exists.
func (a *AStar) FindPath(start, goal model.Coord, grid tactics.Grid) tactics.Path {
	if _, ok := grid.TileAt(start); !ok {
		return tactics.Path{}
	}
	goalTile, ok := grid.TileAt(goal)
	if !ok || !goalTile.Passable {
		return tactics.Path{}
	}
	if start == goal {
		return tactics.Path{Steps: []model.Coord{start}}
	}

	h := func(c model.Coord) float64 { return float64(tactics.Manhattan(c, goal)) }

	open := &openSet{}
	nodes := make(map[model.Coord]*node)
	parent := make(map[model.Coord]model.Coord)
	closed := make(map[model.Coord]bool)

	seq := 0
	first := &node{pos: start, g: 0, f: h(start), seq: seq}
	nodes[start] = first
	heap.Push(open, first)

	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if cur.pos == goal {
			return tactics.Path{Steps: reconstruct(parent, start, goal), Cost: cur.g}
		}
		closed[cur.pos] = true

		expanded++
		if a.MaxExpansions > 0 && expanded >= a.MaxExpansions {
			return tactics.Path{}
		}

		// The grid lists neighbours in a fixed order, so equal-cost routes
		// come out the same way every time.
		for _, next := range grid.Neighbors(cur.pos) {
			if closed[next] {
				continue
			}
			tile, _ := grid.TileAt(next)
			g := cur.g + tile.MoveCost()
			if n, seen := nodes[next]; seen {
				if g >= n.g {
					continue
				}
				n.g = g
				n.f = g + h(next)
				parent[next] = cur.pos
				heap.Fix(open, n.index)
				continue
			}
			seq++
			n := &node{pos: next, g: g, f: g + h(next), seq: seq}
			nodes[next] = n
			parent[next] = cur.pos
			heap.Push(open, n)
		}
	}
	return tactics.Path{}
}

func reconstruct(parent map[model.Coord]model.Coord, start, goal model.Coord) []model.Coord {
	var rev []model.Coord
	for c := goal; c != start; c = parent[c] {
		rev = append(rev, c)
	}
	rev = append(rev, start)
	steps := make([]model.Coord, len(rev))
	for i, c := range rev {
		steps[len(rev)-1-i] = c
	}
	return steps
}
