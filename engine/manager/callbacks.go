package manager

import (
	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// LoadCallbacks rebuilds the subscriptions of a quest from the callback
// kinds it currently wants. Only the FLY_SHIP and TICK_FLYING lists are
// cleared first, so the other lists can hold the same quest several times.
func (m *Manager) LoadCallbacks(q quest.Quest) {
	m.clearCallbacks(q)

	for _, kind := range q.CurrentCallbacks() {
		switch kind {
		case types.CallbackFlyShip,
			types.CallbackTickFlying,
			types.CallbackSectorVisited,
			types.CallbackSectorActive,
			types.CallbackQuest:
			m.callbacks[kind] = append(m.callbacks[kind], q)
		default:
			m.log.Error("bad callback type", "callback", kind, "quest", q.Identifier())
		}
	}
}

func (m *Manager) clearCallbacks(q quest.Quest) {
	m.callbacks[types.CallbackTickFlying] = remove(m.callbacks[types.CallbackTickFlying], q)
	m.callbacks[types.CallbackFlyShip] = remove(m.callbacks[types.CallbackFlyShip], q)
}

// dispatch delivers to every subscriber in insertion order. The list is
// re-read on each iteration: a subscriber may change it while being called.
func (m *Manager) dispatch(kind types.CallbackKind, deliver func(q quest.Quest)) {
	for i := 0; i < len(m.callbacks[kind]); i++ {
		deliver(m.callbacks[kind][i])
	}
}

// OnTick forwards the frame delta to TICK_FLYING subscribers, only while
// the game has an active sector.
func (m *Manager) OnTick(deltaSeconds float64) {
	if m.game == nil {
		return
	}
	if _, ok := m.game.ActiveSector(); !ok {
		return
	}
	m.dispatch(types.CallbackTickFlying, func(q quest.Quest) {
		q.OnTick(deltaSeconds)
	})
}

func (m *Manager) OnFlyShip(ship types.Ship) {
	m.dispatch(types.CallbackFlyShip, func(q quest.Quest) {
		q.OnFlyShip(ship)
	})
}

func (m *Manager) OnSectorActivation(sector types.Sector) {
	m.dispatch(types.CallbackSectorActive, func(q quest.Quest) {
		q.OnSectorActivation(sector)
	})
}

func (m *Manager) OnSectorVisited(sector types.Sector) {
	m.dispatch(types.CallbackSectorVisited, func(q quest.Quest) {
		q.OnSectorVisited(sector)
	})
}

// OnTravelEnded asks the generator for a quest in the destination sector
// when the fleet is the player's.
func (m *Manager) OnTravelEnded(fleet types.Fleet) {
	if m.game == nil || m.generator == nil {
		return
	}
	if fleet.Identifier != m.game.PlayerFleet().Identifier {
		return
	}
	m.generator.GenerateSectorQuest(fleet.CurrentSector)
}

// OnQuestStatusChanged re-derives the subscriptions of the changed quest,
// then tells every QUEST subscriber.
func (m *Manager) OnQuestStatusChanged(q quest.Quest) {
	m.LoadCallbacks(q)
	m.dispatch(types.CallbackQuest, func(s quest.Quest) {
		s.OnQuestStatusChanged(q)
	})
}
