package manager

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// fakeQuest records what the manager asks of it. Its status only changes
// through SetStatus.
type fakeQuest struct {
	id        string
	category  types.QuestCategory
	status    types.QuestStatus
	callbacks []types.CallbackKind
	progress  types.QuestProgressSave

	tracked   bool
	stopped   int
	restored  []types.QuestProgressSave
	updates   int
	ticks     []float64
	flown     []string
	changed   []string
	onFlyShip func()
}

var _ quest.Quest = (*fakeQuest)(nil)

func newFake(id string, kinds ...types.CallbackKind) *fakeQuest {
	return &fakeQuest{id: id, category: types.CategorySecondary, callbacks: kinds}
}

func (f *fakeQuest) Identifier() string                     { return f.id }
func (f *fakeQuest) Name() string                           { return "Fake " + f.id }
func (f *fakeQuest) Description() string                    { return "" }
func (f *fakeQuest) Category() types.QuestCategory          { return f.category }
func (f *fakeQuest) Steps() []*quest.Step                   { return nil }
func (f *fakeQuest) Status() types.QuestStatus              { return f.status }
func (f *fakeQuest) SetStatus(status types.QuestStatus)     { f.status = status }
func (f *fakeQuest) CurrentCallbacks() []types.CallbackKind { return f.callbacks }
func (f *fakeQuest) Accept()                                {}
func (f *fakeQuest) Abandon()                               {}
func (f *fakeQuest) StartObjectiveTracking()                { f.tracked = true }
func (f *fakeQuest) IsTracked() bool                        { return f.tracked }
func (f *fakeQuest) UpdateState()                           { f.updates++ }
func (f *fakeQuest) OnSectorActivation(types.Sector)        {}
func (f *fakeQuest) OnSectorVisited(types.Sector)           {}

func (f *fakeQuest) StopObjectiveTracking() {
	f.tracked = false
	f.stopped++
}

func (f *fakeQuest) Save() types.QuestProgressSave {
	p := f.progress
	p.QuestIdentifier = f.id
	return p
}

func (f *fakeQuest) Restore(p types.QuestProgressSave) {
	f.restored = append(f.restored, p)
	f.progress = p
}

func (f *fakeQuest) OnTick(deltaSeconds float64) { f.ticks = append(f.ticks, deltaSeconds) }

func (f *fakeQuest) OnFlyShip(ship types.Ship) {
	f.flown = append(f.flown, ship.Identifier)
	if f.onFlyShip != nil {
		f.onFlyShip()
	}
}

func (f *fakeQuest) OnQuestStatusChanged(changed quest.Quest) {
	f.changed = append(f.changed, changed.Identifier())
}

type fakeGame struct {
	active  *types.Sector
	visited map[string]bool
	flown   map[string]bool
	fleet   types.Fleet
}

func newFakeGame() *fakeGame {
	return &fakeGame{
		visited: map[string]bool{},
		flown:   map[string]bool{},
		fleet:   types.Fleet{Identifier: "player"},
	}
}

func (g *fakeGame) ActiveSector() (types.Sector, bool) {
	if g.active == nil {
		return types.Sector{}, false
	}
	return *g.active, true
}

func (g *fakeGame) IsSectorVisited(identifier string) bool { return g.visited[identifier] }
func (g *fakeGame) HasFlownShip(identifier string) bool    { return g.flown[identifier] }
func (g *fakeGame) PlayerFleet() types.Fleet               { return g.fleet }

type fakeGenerator struct {
	registrar quest.Registrar
	dynamic   []quest.Quest
	loads     int
	saves     int
	generated []string
}

func (g *fakeGenerator) Load(r quest.Registrar, _ *types.QuestSave) {
	g.registrar = r
	g.loads++
}

func (g *fakeGenerator) LoadQuests(*types.QuestSave) {
	for _, q := range g.dynamic {
		g.registrar.AddQuest(q)
	}
}

func (g *fakeGenerator) GenerateSectorQuest(sector types.Sector) {
	g.generated = append(g.generated, sector.Identifier)
}

func (g *fakeGenerator) Save(data *types.QuestSave) {
	g.saves++
	data.Generator.NextQuestIndex = g.saves
}

type fakeNotifier struct {
	notes []types.Notification
}

func (n *fakeNotifier) Notify(note types.Notification) { n.notes = append(n.notes, note) }

func (n *fakeNotifier) titles() []string {
	var out []string
	for _, note := range n.notes {
		out = append(out, note.Title)
	}
	return out
}

type fixture struct {
	manager   *Manager
	game      *fakeGame
	generator *fakeGenerator
	notifier  *fakeNotifier
	logs      *bytes.Buffer
}

func newFixture(t *testing.T, catalog ...quest.Definition) *fixture {
	t.Helper()
	f := &fixture{
		game:      newFakeGame(),
		generator: &fakeGenerator{},
		notifier:  &fakeNotifier{},
		logs:      &bytes.Buffer{},
	}
	f.manager = New(Options{
		Game:      f.game,
		Notifier:  f.notifier,
		Generator: f.generator,
		Catalog:   catalog,
		Logger:    slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	return f
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func courierDefinition() quest.Definition {
	return quest.Definition{
		Identifier: "courier",
		Name:       "Courier",
		Category:   types.CategorySecondary,
		Steps: []quest.StepDefinition{
			{
				Identifier:    "board",
				EndConditions: []types.Condition{{Type: quest.CondFlyShip, Params: map[string]any{"ship": "shuttle"}}},
			},
			{
				Identifier:    "fly",
				EndConditions: []types.Condition{{Type: quest.CondFlyingTime, Params: map[string]any{"seconds": 5.0}}},
			},
		},
	}
}
