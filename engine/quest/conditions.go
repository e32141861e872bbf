package quest

import "github.com/nathoo/questmgr/types"

// Condition types.
const (
	CondQuestSuccessful = "quest_successful"
	CondQuestFailed     = "quest_failed"
	CondFlyShip         = "fly_ship"
	CondSectorVisited   = "sector_visited"
	CondSectorActive    = "sector_active"
	CondFlyingTime      = "flying_time"
)

var conditionCallbacks = map[string]types.CallbackKind{
	CondQuestSuccessful: types.CallbackQuest,
	CondQuestFailed:     types.CallbackQuest,
	CondFlyShip:         types.CallbackFlyShip,
	CondSectorVisited:   types.CallbackSectorVisited,
	CondSectorActive:    types.CallbackSectorActive,
	CondFlyingTime:      types.CallbackTickFlying,
}

// CallbackFor returns the callback kind a condition type needs delivered.
// The second result is false for unknown condition types.
func CallbackFor(conditionType string) (types.CallbackKind, bool) {
	kind, ok := conditionCallbacks[conditionType]
	return kind, ok
}

// conditionState is the runtime progress of a condition. Event-driven
// conditions latch completed; flying_time accumulates elapsed.
type conditionState struct {
	id        string
	cond      types.Condition
	trigger   bool
	completed bool
	elapsed   float64
}

// isCompleted evaluates a single condition against the manager and world.
func (c *Contract) isCompleted(cs *conditionState) bool {
	switch cs.cond.Type {
	case CondQuestSuccessful:
		q := c.manager.FindQuest(paramString(cs.cond, "quest"))
		return q != nil && c.manager.IsQuestSuccessful(q)

	case CondQuestFailed:
		q := c.manager.FindQuest(paramString(cs.cond, "quest"))
		return q != nil && c.manager.IsQuestFailed(q)

	// Trigger flags are not saved, so a trigger also asks the world.
	case CondFlyShip:
		if cs.completed {
			return true
		}
		return cs.trigger && c.world != nil && c.world.HasFlownShip(paramString(cs.cond, "ship"))

	case CondSectorVisited:
		if cs.completed {
			return true
		}
		sector := paramString(cs.cond, "sector")
		if sector == "" && !cs.trigger {
			return false
		}
		return c.world != nil && c.world.IsSectorVisited(sector)

	case CondSectorActive:
		if c.world == nil {
			return false
		}
		active, ok := c.world.ActiveSector()
		if !ok {
			return false
		}
		sector := paramString(cs.cond, "sector")
		return sector == "" || active.Identifier == sector

	case CondFlyingTime:
		return cs.elapsed >= paramFloat(cs.cond, "seconds")

	default:
		return false
	}
}

// allCompleted returns true if all conditions hold. Empty is vacuously true.
func (c *Contract) allCompleted(conditions []*conditionState) bool {
	for _, cs := range conditions {
		if !c.isCompleted(cs) {
			return false
		}
	}
	return true
}

func (c *Contract) anyCompleted(conditions []*conditionState) bool {
	for _, cs := range conditions {
		if c.isCompleted(cs) {
			return true
		}
	}
	return false
}

func paramString(cond types.Condition, key string) string {
	s, _ := cond.Params[key].(string)
	return s
}

// paramFloat converts a numeric param, handling ints from Lua.
func paramFloat(cond types.Condition, key string) float64 {
	switch n := cond.Params[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
