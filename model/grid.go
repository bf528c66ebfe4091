package model

// Coord is a position on the tactical grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Tile is one grid cell. Owner is the ID of the agent holding the tile, or
// nil when nobody does.
type Tile struct {
	Pos      Coord   `json:"pos"`
	Hidden   bool    `json:"hidden"`
	Resource bool    `json:"resource"`
	Passable bool    `json:"passable"`
	Occupied bool    `json:"occupied"`
	Cost     float64 `json:"cost,omitempty"` // movement cost, at least 1
	Owner    *int    `json:"owner,omitempty"`
}

// MoveCost returns the cost of stepping onto the tile. Costs below 1 are
// raised to 1 so the Manhattan estimate never overshoots a real route.
func (t Tile) MoveCost() float64 {
	if t.Cost < 1 {
		return 1
	}
	return t.Cost
}

// Grid is the tactical map as sent by the mod.
type Grid struct {
	Cols  int    `json:"cols"`
	Rows  int    `json:"rows"`
	Tiles []Tile `json:"tiles"` // row-major: Tiles[y*Cols + x]
}

// InBounds reports whether c lies on the grid and has a backing tile.
func (g *Grid) InBounds(c Coord) bool {
	if c.X < 0 || c.X >= g.Cols || c.Y < 0 || c.Y >= g.Rows {
		return false
	}
	return c.Y*g.Cols+c.X < len(g.Tiles)
}

// TileAt returns the tile at c. Returns false for out-of-bounds coordinates.
func (g *Grid) TileAt(c Coord) (Tile, bool) {
	if !g.InBounds(c) {
		return Tile{}, false
	}
	return g.Tiles[c.Y*g.Cols+c.X], true
}

// UnoccupiedTiles returns passable tiles nobody stands on, in row-major order.
func (g *Grid) UnoccupiedTiles() []Tile {
	var out []Tile
	for _, t := range g.Tiles {
		if t.Passable && !t.Occupied {
			out = append(out, t)
		}
	}
	return out
}

// ResourceCoords returns the positions of resource tiles in row-major order.
// With unclaimedOnly set, tiles that have an owner are left out.
func (g *Grid) ResourceCoords(unclaimedOnly bool) []Coord {
	var out []Coord
	for _, t := range g.Tiles {
		if !t.Resource {
			continue
		}
		if unclaimedOnly && t.Owner != nil {
			continue
		}
		out = append(out, t.Pos)
	}
	return out
}

// HiddenResourceCount counts resource tiles that have not been scouted yet.
func (g *Grid) HiddenResourceCount() int {
	n := 0
	for _, t := range g.Tiles {
		if t.Resource && t.Hidden {
			n++
		}
	}
	return n
}

// Neighbors returns the passable 4-connected neighbours of c in
// north, east, south, west order.
func (g *Grid) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range [4]Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		n := Coord{X: c.X + d.X, Y: c.Y + d.Y}
		if t, ok := g.TileAt(n); ok && t.Passable {
			out = append(out, n)
		}
	}
	return out
}

// NewGrid builds a cols x rows grid of passable, visible, empty tiles with
// positions filled in. Useful for the mod handshake and for tests.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{Cols: cols, Rows: rows, Tiles: make([]Tile, cols*rows)}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			g.Tiles[y*cols+x] = Tile{Pos: Coord{X: x, Y: y}, Passable: true}
		}
	}
	return g
}

// Set replaces the tile at c, keeping its position consistent. Out-of-bounds
// coordinates are ignored.
func (g *Grid) Set(c Coord, t Tile) {
	if !g.InBounds(c) {
		return
	}
	t.Pos = c
	g.Tiles[c.Y*g.Cols+c.X] = t
}
