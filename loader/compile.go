// Package loader loads Lua quest catalogs into Go structs at startup.
// The Lua VM is discarded after loading; no Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// rawContract holds a contract table before compilation.
type rawContract struct {
	id    string
	table *lua.LTable
}

// rawSector holds a sector table before compilation.
type rawSector struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Check if it's an array (sequential integer keys starting at 1).
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// compile converts all collected Lua data into a Catalog.
func compile(coll *collector) (*Catalog, error) {
	cat := &Catalog{}

	for _, raw := range coll.sectors {
		name := getString(raw.table, "name")
		if name == "" {
			name = raw.id
		}
		cat.Sectors = append(cat.Sectors, types.Sector{Identifier: raw.id, Name: name})
	}

	for _, raw := range coll.contracts {
		def, err := compileContract(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling contract %s: %w", raw.id, err)
		}
		cat.Quests = append(cat.Quests, def)
	}

	return cat, nil
}

func compileContract(raw rawContract) (quest.Definition, error) {
	tbl := raw.table
	def := quest.Definition{
		Identifier:  raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Category:    types.QuestCategory(getString(tbl, "category")),
		AutoAccept:  getBool(tbl, "auto_accept", false),
	}
	if def.Category == "" {
		def.Category = types.CategorySecondary
	}
	if def.Name == "" {
		def.Name = raw.id
	}
	if trig := getTable(tbl, "triggers"); trig != nil {
		def.Triggers = compileConditions(trig)
	}

	stepsTbl := getTable(tbl, "steps")
	if stepsTbl == nil {
		return def, nil
	}
	for i := 1; i <= stepsTbl.MaxN(); i++ {
		stepTbl, ok := stepsTbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return def, fmt.Errorf("steps[%d] is not a table", i)
		}
		id := getString(stepTbl, stepMarker)
		if id == "" {
			return def, fmt.Errorf("steps[%d] is not declared with Step", i)
		}
		step := quest.StepDefinition{
			Identifier:  id,
			Description: getString(stepTbl, "description"),
		}
		if conds := getTable(stepTbl, "conditions"); conds != nil {
			step.EndConditions = compileConditions(conds)
		}
		if fail := getTable(stepTbl, "fail"); fail != nil {
			step.FailConditions = compileConditions(fail)
		}
		def.Steps = append(def.Steps, step)
	}
	return def, nil
}

// compileConditions compiles the array part of a conditions table in order.
func compileConditions(tbl *lua.LTable) []types.Condition {
	var conditions []types.Condition
	for i := 1; i <= tbl.MaxN(); i++ {
		if condTbl, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			conditions = append(conditions, compileCondition(condTbl))
		}
	}
	return conditions
}

func compileCondition(tbl *lua.LTable) types.Condition {
	params := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			key := string(ks)
			if key != "type" {
				params[key] = toGoValue(v)
			}
		}
	})
	// Durations are always float seconds.
	if n, ok := params["seconds"].(int); ok {
		params["seconds"] = float64(n)
	}
	return types.Condition{
		Type:   getString(tbl, "type"),
		Params: params,
	}
}

// sortedLuaFiles returns .lua files with sectors.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var sectorFile string
	var others []string
	for _, f := range files {
		if f == "sectors.lua" {
			sectorFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if sectorFile != "" {
		return append([]string{sectorFile}, others...)
	}
	return others
}
