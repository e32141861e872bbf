package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/questmgr/engine/manager"
	"github.com/nathoo/questmgr/types"
)

type testWorld struct {
	sectors []types.Sector
	active  *types.Sector
	visited map[string]bool
}

func newTestWorld(ids ...string) *testWorld {
	w := &testWorld{visited: map[string]bool{}}
	for _, id := range ids {
		w.sectors = append(w.sectors, types.Sector{Identifier: id, Name: strings.ToUpper(id)})
	}
	return w
}

func (w *testWorld) ActiveSector() (types.Sector, bool) {
	if w.active == nil {
		return types.Sector{}, false
	}
	return *w.active, true
}

func (w *testWorld) IsSectorVisited(id string) bool { return w.visited[id] }
func (w *testWorld) HasFlownShip(string) bool       { return false }
func (w *testWorld) Sectors() []types.Sector        { return w.sectors }
func (w *testWorld) PlayerFleet() types.Fleet       { return types.Fleet{Identifier: "player"} }

func (w *testWorld) sector(id string) types.Sector {
	for _, s := range w.sectors {
		if s.Identifier == id {
			return s
		}
	}
	return types.Sector{Identifier: id}
}

func setup(t *testing.T, w *testWorld, data types.QuestSave) (*manager.Manager, *Generator) {
	t.Helper()
	g := New(w, Options{Seed: 7, ChancePercent: 100})
	m := manager.New(manager.Options{Game: w, Generator: g})
	m.Load(data)
	return m, g
}

func TestGenerateSectorQuest_AddsAvailableQuest(t *testing.T) {
	w := newTestWorld("alpha", "beta")
	m, g := setup(t, w, types.QuestSave{})

	g.GenerateSectorQuest(w.sector("alpha"))

	generated := g.Generated()
	require.Len(t, generated, 1)
	recipe := generated[0]
	assert.True(t, strings.HasPrefix(recipe.Identifier, "gen-"))
	assert.Equal(t, "alpha", recipe.Sector)

	q := m.FindQuest(recipe.Identifier)
	require.NotNil(t, q, "generated quest should be registered")
	assert.Equal(t, types.StatusAvailable, q.Status())
	assert.Equal(t, types.CategoryGenerated, q.Category())
	assert.True(t, m.IsQuestAvailable(q))
}

func TestGenerateSectorQuest_SkipsSectorWithLiveQuest(t *testing.T) {
	w := newTestWorld("alpha", "beta")
	_, g := setup(t, w, types.QuestSave{})

	g.GenerateSectorQuest(w.sector("alpha"))
	g.GenerateSectorQuest(w.sector("alpha"))

	assert.Len(t, g.Generated(), 1)

	g.GenerateSectorQuest(w.sector("beta"))
	assert.Len(t, g.Generated(), 2)
}

func TestGenerateSectorQuest_AfterAbandonSectorIsFree(t *testing.T) {
	w := newTestWorld("alpha", "beta")
	m, g := setup(t, w, types.QuestSave{})

	g.GenerateSectorQuest(w.sector("alpha"))
	q := m.FindQuest(g.Generated()[0].Identifier)
	require.NotNil(t, q)

	m.AcceptQuest(q)
	require.Equal(t, types.StatusActive, q.Status())
	m.AbandonQuest(q)
	require.Equal(t, types.StatusAbandoned, q.Status())

	g.GenerateSectorQuest(w.sector("alpha"))
	assert.Len(t, g.Generated(), 2)
}

func TestOnTravelEnded_PlayerFleetOnly(t *testing.T) {
	w := newTestWorld("alpha", "beta")
	m, g := setup(t, w, types.QuestSave{})

	m.OnTravelEnded(types.Fleet{Identifier: "pirates", CurrentSector: w.sector("alpha")})
	assert.Empty(t, g.Generated())

	m.OnTravelEnded(types.Fleet{Identifier: "player", CurrentSector: w.sector("alpha")})
	assert.Len(t, g.Generated(), 1)
}

func TestGenerator_SaveLoadContinuesSequence(t *testing.T) {
	w := newTestWorld("alpha", "beta", "gamma")
	m, g := setup(t, w, types.QuestSave{})

	g.GenerateSectorQuest(w.sector("alpha"))
	g.GenerateSectorQuest(w.sector("beta"))
	snap := *m.Save()

	require.Len(t, snap.Generator.GeneratedQuests, 2)
	assert.Equal(t, int64(7), snap.Generator.RNGSeed)
	assert.Equal(t, 2, snap.Generator.NextQuestIndex)

	w2 := newTestWorld("alpha", "beta", "gamma")
	m2, g2 := setup(t, w2, snap)

	for _, recipe := range snap.Generator.GeneratedQuests {
		q := m2.FindQuest(recipe.Identifier)
		require.NotNil(t, q, "quest %s should be rebuilt", recipe.Identifier)
		assert.Equal(t, types.StatusAvailable, q.Status())
	}

	g.GenerateSectorQuest(w.sector("gamma"))
	g2.GenerateSectorQuest(w2.sector("gamma"))
	require.Len(t, g.Generated(), 3)
	require.Len(t, g2.Generated(), 3)
	assert.Equal(t, g.Generated()[2], g2.Generated()[2])
}

func TestGenerator_SaveLoadKeepsFinishedQuests(t *testing.T) {
	w := newTestWorld("alpha", "beta")
	m, g := setup(t, w, types.QuestSave{})

	g.GenerateSectorQuest(w.sector("alpha"))
	id := g.Generated()[0].Identifier
	q := m.FindQuest(id)
	require.NotNil(t, q)
	m.AcceptQuest(q)
	m.AbandonQuest(q)

	snap := *m.Save()
	assert.Contains(t, snap.AbandonedQuests, id)

	m2, _ := setup(t, newTestWorld("alpha", "beta"), snap)
	q2 := m2.FindQuest(id)
	require.NotNil(t, q2)
	assert.Equal(t, types.StatusAbandoned, q2.Status())
}

func TestLoadQuests_DropsUnknownTemplate(t *testing.T) {
	w := newTestWorld("alpha")
	data := types.QuestSave{
		Generator: types.GeneratorSave{
			RNGSeed: 3,
			GeneratedQuests: []types.GeneratedQuestSave{
				{Identifier: "gen-old", Template: "escort", Sector: "alpha"},
			},
		},
	}

	m, g := setup(t, w, data)

	assert.Nil(t, m.FindQuest("gen-old"))
	assert.Empty(t, g.Generated())
}

func TestGenerator_ZeroStateUsesConfiguredSeed(t *testing.T) {
	w := newTestWorld("alpha", "beta")
	m, _ := setup(t, w, types.QuestSave{})

	snap := m.Save()
	assert.Equal(t, int64(7), snap.Generator.RNGSeed)
	assert.Equal(t, int64(0), snap.Generator.RNGPosition)
	assert.NotNil(t, snap.Generator.GeneratedQuests)
}

func TestQuestIdentifier_Deterministic(t *testing.T) {
	a := questIdentifier(TemplateTravel, "alpha", 4)
	b := questIdentifier(TemplateTravel, "alpha", 4)
	c := questIdentifier(TemplateTravel, "alpha", 5)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "gen-"))
}

func TestRollTravel_NeedsAnotherSector(t *testing.T) {
	g := New(newTestWorld("alpha"), Options{Seed: 1})

	_, ok := rollTravel(g, types.Sector{Identifier: "alpha"})
	assert.False(t, ok)

	g = New(newTestWorld("alpha", "beta"), Options{Seed: 1})
	data, ok := rollTravel(g, types.Sector{Identifier: "alpha"})
	require.True(t, ok)
	assert.Equal(t, "beta", data["destination"])
}

func TestBuildTravel_Steps(t *testing.T) {
	g := New(newTestWorld("alpha", "beta"), Options{Seed: 1})

	def, err := g.build(types.GeneratedQuestSave{
		Identifier: "gen-x",
		Template:   TemplateTravel,
		Sector:     "alpha",
		Data:       map[string]string{"destination": "beta"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Travel to BETA", def.Name)
	require.Len(t, def.Steps, 2)
	assert.Equal(t, "beta", def.Steps[0].EndConditions[0].Params["sector"])
}

func TestBuildPatrol_BadDuration(t *testing.T) {
	g := New(newTestWorld("alpha"), Options{Seed: 1})

	_, err := g.build(types.GeneratedQuestSave{
		Identifier: "gen-x",
		Template:   TemplatePatrol,
		Sector:     "alpha",
		Data:       map[string]string{"seconds": "soon"},
	})
	assert.Error(t, err)
}

func TestRollPatrol_DurationRange(t *testing.T) {
	g := New(newTestWorld("alpha"), Options{Seed: 5})

	for i := 0; i < 50; i++ {
		data, ok := rollPatrol(g, types.Sector{Identifier: "alpha"})
		require.True(t, ok)
		assert.Contains(t, []string{"30", "40", "50"}, data["seconds"])
	}
}
