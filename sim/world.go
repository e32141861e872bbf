// Package sim is a minimal in-memory game world: a set of sectors, the
// sector the player is flying in, the sectors already visited and the
// player fleet. It forwards the events it produces to a Listener, usually
// the quest manager.
package sim

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nathoo/questmgr/types"
)

// PlayerFleetID is the identifier of the player fleet.
const PlayerFleetID = "player-fleet"

var (
	// ErrUnknownSector is returned for a sector the world does not know.
	ErrUnknownSector = errors.New("unknown sector")
	// ErrNotInSector is returned when activating a sector the player fleet
	// is not in.
	ErrNotInSector = errors.New("player fleet is not in sector")
)

// Listener receives the game events produced by the world.
type Listener interface {
	OnTick(deltaSeconds float64)
	OnFlyShip(ship types.Ship)
	OnSectorActivation(sector types.Sector)
	OnSectorVisited(sector types.Sector)
	OnTravelEnded(fleet types.Fleet)
}

// World implements the game state consulted by quests, the quest manager
// and the quest generator.
type World struct {
	sectors  []types.Sector
	visited  map[string]bool
	flown    map[string]bool
	active   *types.Sector
	fleet    types.Fleet
	ship     *types.Ship
	listener Listener
}

// New creates a world with the given sectors. The player fleet starts in
// the first sector, which counts as visited. Nothing is active.
func New(sectors []types.Sector) *World {
	w := &World{
		sectors: slices.Clone(sectors),
		visited: map[string]bool{},
		flown:   map[string]bool{},
		fleet:   types.Fleet{Identifier: PlayerFleetID},
	}
	if len(w.sectors) > 0 {
		w.fleet.CurrentSector = w.sectors[0]
		w.visited[w.sectors[0].Identifier] = true
	}
	return w
}

// SetListener sets the receiver of world events. A nil listener drops them.
func (w *World) SetListener(l Listener) {
	w.listener = l
}

func (w *World) Sectors() []types.Sector { return slices.Clone(w.sectors) }

// ActiveSector returns the sector the player is flying in.
func (w *World) ActiveSector() (types.Sector, bool) {
	if w.active == nil {
		return types.Sector{}, false
	}
	return *w.active, true
}

// IsSectorVisited reports whether the player fleet has been in a sector.
// For the empty identifier it reports whether the fleet has reached any
// sector other than the one it started in.
func (w *World) IsSectorVisited(identifier string) bool {
	if identifier != "" {
		return w.visited[identifier]
	}
	for id := range w.visited {
		if len(w.sectors) == 0 || id != w.sectors[0].Identifier {
			return true
		}
	}
	return false
}

// HasFlownShip reports whether the player has flown a ship, or any ship
// for the empty identifier.
func (w *World) HasFlownShip(identifier string) bool {
	if identifier == "" {
		return len(w.flown) > 0
	}
	return w.flown[identifier]
}

func (w *World) PlayerFleet() types.Fleet { return w.fleet }

// Ship returns the ship the player flies, if any.
func (w *World) Ship() (types.Ship, bool) {
	if w.ship == nil {
		return types.Ship{}, false
	}
	return *w.ship, true
}

// Sector returns a known sector by identifier.
func (w *World) Sector(identifier string) (types.Sector, error) {
	for _, s := range w.sectors {
		if s.Identifier == identifier {
			return s, nil
		}
	}
	return types.Sector{}, fmt.Errorf("sector %q: %w", identifier, ErrUnknownSector)
}

// Travel moves the player fleet to a sector. The active sector is left,
// the destination becomes visited and the travel ends there.
func (w *World) Travel(identifier string) error {
	sector, err := w.Sector(identifier)
	if err != nil {
		return err
	}
	w.active = nil
	w.fleet.CurrentSector = sector
	w.visited[sector.Identifier] = true

	if w.listener != nil {
		w.listener.OnSectorVisited(sector)
		w.listener.OnTravelEnded(w.fleet)
	}
	return nil
}

// MoveFleet ends the travel of a fleet that is not the player's.
func (w *World) MoveFleet(fleetID, identifier string) error {
	sector, err := w.Sector(identifier)
	if err != nil {
		return err
	}
	if w.listener != nil {
		w.listener.OnTravelEnded(types.Fleet{Identifier: fleetID, CurrentSector: sector})
	}
	return nil
}

// Activate starts flying in a sector. The player fleet must be in it; an
// empty identifier means the fleet's current sector.
func (w *World) Activate(identifier string) error {
	sector := w.fleet.CurrentSector
	if identifier != "" && identifier != sector.Identifier {
		if _, err := w.Sector(identifier); err != nil {
			return err
		}
		return fmt.Errorf("activate %q: %w", identifier, ErrNotInSector)
	}
	if sector.Identifier == "" {
		return fmt.Errorf("activate: %w", ErrUnknownSector)
	}
	w.active = &sector
	if w.listener != nil {
		w.listener.OnSectorActivation(sector)
	}
	return nil
}

// Deactivate stops flying. No sector is active afterwards.
func (w *World) Deactivate() {
	w.active = nil
}

// Fly takes control of a ship.
func (w *World) Fly(shipID string) {
	ship := types.Ship{Identifier: shipID, Name: shipID}
	w.ship = &ship
	w.flown[shipID] = true
	if w.listener != nil {
		w.listener.OnFlyShip(ship)
	}
}

// Tick advances the simulation clock.
func (w *World) Tick(deltaSeconds float64) {
	if w.listener != nil {
		w.listener.OnTick(deltaSeconds)
	}
}

// Save captures the world state that quest conditions depend on.
func (w *World) Save() types.WorldSave {
	ws := types.WorldSave{
		FleetSector:    w.fleet.CurrentSector.Identifier,
		VisitedSectors: sortedKeys(w.visited),
		FlownShips:     sortedKeys(w.flown),
	}
	if w.active != nil {
		ws.ActiveSector = w.active.Identifier
	}
	if w.ship != nil {
		ws.Ship = w.ship.Identifier
	}
	return ws
}

// Restore replaces the world state with a saved one without raising any
// event. Unknown sectors are dropped; the fleet stays put when its saved
// sector is unknown.
func (w *World) Restore(ws types.WorldSave) {
	w.visited = map[string]bool{}
	w.flown = map[string]bool{}
	w.active = nil
	w.ship = nil

	if sector, err := w.Sector(ws.FleetSector); err == nil {
		w.fleet.CurrentSector = sector
	}
	if w.fleet.CurrentSector.Identifier != "" {
		w.visited[w.fleet.CurrentSector.Identifier] = true
	}
	for _, id := range ws.VisitedSectors {
		if _, err := w.Sector(id); err == nil {
			w.visited[id] = true
		}
	}
	for _, id := range ws.FlownShips {
		w.flown[id] = true
	}
	if ws.Ship != "" {
		ship := types.Ship{Identifier: ws.Ship, Name: ws.Ship}
		w.ship = &ship
		w.flown[ws.Ship] = true
	}
	if ws.ActiveSector != "" && ws.ActiveSector == w.fleet.CurrentSector.Identifier {
		sector := w.fleet.CurrentSector
		w.active = &sector
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
