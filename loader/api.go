package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/questmgr/engine/quest"
)

// stepMarker tags a table returned by Step so compile can tell steps from
// stray tables.
const stepMarker = "__step_id"

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Sector "id" { name = "..." }, curried.
	L.SetGlobal("Sector", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.sectors = append(coll.sectors, rawSector{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Contract "id" { ... }, curried.
	L.SetGlobal("Contract", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.contracts = append(coll.contracts, rawContract{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Step "id" { ... } returns the table tagged with its id, to be placed
	// in a contract's steps list.
	L.SetGlobal("Step", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			tbl.RawSetString(stepMarker, lua.LString(id))
			L.Push(tbl)
			return 1
		}))
		return 1
	}))
}

func registerConditionHelpers(L *lua.LState) {
	// QuestSuccessful("quest")
	L.SetGlobal("QuestSuccessful", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(quest.CondQuestSuccessful))
		tbl.RawSetString("quest", lua.LString(id))
		L.Push(tbl)
		return 1
	}))

	// QuestFailed("quest")
	L.SetGlobal("QuestFailed", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(quest.CondQuestFailed))
		tbl.RawSetString("quest", lua.LString(id))
		L.Push(tbl)
		return 1
	}))

	// FlyShip() or FlyShip("ship")
	L.SetGlobal("FlyShip", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(quest.CondFlyShip))
		if ship := L.OptString(1, ""); ship != "" {
			tbl.RawSetString("ship", lua.LString(ship))
		}
		L.Push(tbl)
		return 1
	}))

	// SectorVisited() or SectorVisited("sector")
	L.SetGlobal("SectorVisited", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(quest.CondSectorVisited))
		if sector := L.OptString(1, ""); sector != "" {
			tbl.RawSetString("sector", lua.LString(sector))
		}
		L.Push(tbl)
		return 1
	}))

	// SectorActive() or SectorActive("sector")
	L.SetGlobal("SectorActive", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(quest.CondSectorActive))
		if sector := L.OptString(1, ""); sector != "" {
			tbl.RawSetString("sector", lua.LString(sector))
		}
		L.Push(tbl)
		return 1
	}))

	// FlyingTime(seconds) or FlyingTime(seconds, "sector")
	L.SetGlobal("FlyingTime", L.NewFunction(func(L *lua.LState) int {
		seconds := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(quest.CondFlyingTime))
		tbl.RawSetString("seconds", seconds)
		if sector := L.OptString(2, ""); sector != "" {
			tbl.RawSetString("sector", lua.LString(sector))
		}
		L.Push(tbl)
		return 1
	}))
}
