package agent

import (
	"fmt"
	"sort"

	"github.com/nstehr/vimy/vimy-tactics/model"
)

// EventKind identifies a change between two snapshots that invalidates the
// objectives units are currently heading for.
type EventKind string

const (
	EventObjectiveLost    EventKind = "objective_lost"
	EventResourceRevealed EventKind = "resource_revealed"
	EventUnitLost         EventKind = "unit_lost"
	EventHostileSighted   EventKind = "hostile_sighted"
)

// Event is a significant change detected by diffing consecutive game
// states. Any event makes every unit pick its objective again.
type Event struct {
	Kind   EventKind
	Tick   int
	Detail string
}

// stateSnapshot captures the diffable fields of a tick.
type stateSnapshot struct {
	friendlyIDs     map[int]bool
	hiddenResources map[model.Coord]bool
	friendlyHeld    map[model.Coord]bool // resource tiles owned by one of our units
	hostiles        int
}

func takeSnapshot(gs model.GameState) stateSnapshot {
	snap := stateSnapshot{
		friendlyIDs:     make(map[int]bool),
		hiddenResources: make(map[model.Coord]bool),
		friendlyHeld:    make(map[model.Coord]bool),
	}
	for _, a := range gs.Agents {
		if a.IsHostile() {
			snap.hostiles++
		} else {
			snap.friendlyIDs[a.ID] = true
		}
	}
	for _, t := range gs.Grid.Tiles {
		if !t.Resource {
			continue
		}
		if t.Hidden {
			snap.hiddenResources[t.Pos] = true
		}
		if t.Owner != nil && snap.friendlyIDs[*t.Owner] {
			snap.friendlyHeld[t.Pos] = true
		}
	}
	return snap
}

// detectEvents compares the current tick against the previous snapshot.
// Returns nil on the first tick.
func detectEvents(gs model.GameState, prev *stateSnapshot, cur stateSnapshot) []Event {
	if prev == nil {
		return nil
	}
	var events []Event

	if lost := missing(prev.friendlyHeld, cur.friendlyHeld); len(lost) > 0 {
		events = append(events, Event{
			Kind:   EventObjectiveLost,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("lost %d held objective(s), first at %s", len(lost), coordString(lost[0])),
		})
	}

	var revealed []model.Coord
	for _, c := range missing(prev.hiddenResources, cur.hiddenResources) {
		if t, ok := gs.Grid.TileAt(c); ok && t.Resource {
			revealed = append(revealed, c)
		}
	}
	if len(revealed) > 0 {
		events = append(events, Event{
			Kind:   EventResourceRevealed,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("%d resource tile(s) scouted", len(revealed)),
		})
	}

	lostUnits := 0
	for id := range prev.friendlyIDs {
		if !cur.friendlyIDs[id] {
			lostUnits++
		}
	}
	if lostUnits > 0 {
		events = append(events, Event{
			Kind:   EventUnitLost,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("%d unit(s) lost", lostUnits),
		})
	}

	if prev.hostiles == 0 && cur.hostiles > 0 {
		events = append(events, Event{
			Kind:   EventHostileSighted,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("%d hostile(s) visible", cur.hostiles),
		})
	}

	return events
}

// missing returns the keys of prev absent from cur, sorted row-major.
func missing(prev, cur map[model.Coord]bool) []model.Coord {
	var out []model.Coord
	for c := range prev {
		if !cur[c] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func coordString(c model.Coord) string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
