package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

// runLua executes src in a sandboxed VM with the catalog API registered and
// returns the collected definitions.
func runLua(t *testing.T, src string) *collector {
	t.Helper()
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	t.Cleanup(L.Close)
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{}
	registerAPI(L, coll)
	require.NoError(t, L.DoString(src))
	return coll
}

func TestToGoValue(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	assert.Equal(t, true, toGoValue(lua.LTrue))
	assert.Equal(t, 3, toGoValue(lua.LNumber(3)))
	assert.Equal(t, 2.5, toGoValue(lua.LNumber(2.5)))
	assert.Equal(t, "x", toGoValue(lua.LString("x")))
	assert.Nil(t, toGoValue(lua.LNil))

	arr := L.NewTable()
	arr.Append(lua.LString("a"))
	arr.Append(lua.LString("b"))
	assert.Equal(t, []any{"a", "b"}, toGoValue(arr))

	m := L.NewTable()
	m.RawSetString("k", lua.LNumber(1))
	assert.Equal(t, map[string]any{"k": 1}, toGoValue(m))
}

func TestConditionHelpers(t *testing.T) {
	coll := runLua(t, `
Contract "c" {
    triggers = { QuestSuccessful("a"), QuestFailed("b") },
    steps = {
        Step "s" {
            conditions = { FlyShip(), FlyShip("tug"), SectorVisited(), SectorActive("nema"), FlyingTime(5, "nema") },
        },
    },
}`)
	cat, err := compile(coll)
	require.NoError(t, err)
	require.Len(t, cat.Quests, 1)

	def := cat.Quests[0]
	require.Len(t, def.Triggers, 2)
	assert.Equal(t, "quest_successful", def.Triggers[0].Type)
	assert.Equal(t, "b", def.Triggers[1].Params["quest"])

	conds := def.Steps[0].EndConditions
	require.Len(t, conds, 5)
	assert.Empty(t, conds[0].Params, "FlyShip without argument matches any ship")
	assert.Equal(t, "tug", conds[1].Params["ship"])
	assert.Equal(t, "sector_visited", conds[2].Type)
	assert.Equal(t, "nema", conds[3].Params["sector"])
	assert.Equal(t, 5.0, conds[4].Params["seconds"])
	assert.Equal(t, "nema", conds[4].Params["sector"])
}

func TestCompile_StepOrderPreserved(t *testing.T) {
	coll := runLua(t, `
Contract "c" {
    steps = {
        Step "one" { conditions = { FlyShip() } },
        Step "two" { conditions = { FlyShip() } },
        Step "three" { conditions = { FlyShip() } },
    },
}`)
	cat, err := compile(coll)
	require.NoError(t, err)

	var ids []string
	for _, s := range cat.Quests[0].Steps {
		ids = append(ids, s.Identifier)
	}
	assert.Equal(t, []string{"one", "two", "three"}, ids)
}

func TestCompile_AutoAcceptDefaultsFalse(t *testing.T) {
	coll := runLua(t, `
Contract "a" { auto_accept = true, steps = { Step "s" {} } }
Contract "b" { steps = { Step "s" {} } }`)
	cat, err := compile(coll)
	require.NoError(t, err)

	assert.True(t, cat.Quests[0].AutoAccept)
	assert.False(t, cat.Quests[1].AutoAccept)
}

func TestCompile_StepNotTable(t *testing.T) {
	coll := runLua(t, `Contract "c" { steps = { "oops" } }`)

	_, err := compile(coll)
	assert.ErrorContains(t, err, "steps[1] is not a table")
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"z.lua", "sectors.lua", "a.lua"})
	assert.Equal(t, []string{"sectors.lua", "a.lua", "z.lua"}, got)

	got = sortedLuaFiles([]string{"b.lua", "a.lua"})
	assert.Equal(t, []string{"a.lua", "b.lua"}, got)
}
