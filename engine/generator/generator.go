// Package generator builds procedural sector quests. Its state (RNG stream,
// quest counter and the recipe of every quest it generated) lives in the
// Generator section of a QuestSave, so a reloaded game rebuilds the same
// quests and continues the same random sequence.
package generator

import (
	"log/slog"
	"slices"

	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// DefaultChancePercent is the chance a travel yields a new quest.
const DefaultChancePercent = 50

// World is the game state the generator reads.
type World interface {
	quest.World
	Sectors() []types.Sector
}

// Options configures a Generator.
type Options struct {
	Seed          int64 // used when the snapshot carries no RNG state
	ChancePercent int   // 0 means DefaultChancePercent
	Logger        *slog.Logger
}

// Generator implements the manager's quest generator.
type Generator struct {
	world  World
	seed   int64
	chance int
	log    *slog.Logger

	registrar quest.Registrar
	rng       *RNG
	next      int
	generated []types.GeneratedQuestSave
	quests    map[string]quest.Quest
}

// New creates a generator. Load must run before quests are generated.
func New(w World, opts Options) *Generator {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	chance := opts.ChancePercent
	if chance == 0 {
		chance = DefaultChancePercent
	}
	return &Generator{
		world:  w,
		seed:   opts.Seed,
		chance: chance,
		log:    log.With("component", "generator"),
		rng:    NewRNG(opts.Seed),
		quests: map[string]quest.Quest{},
	}
}

// Load restores the generator state from a snapshot and remembers the
// registrar generated quests are added to.
func (g *Generator) Load(r quest.Registrar, data *types.QuestSave) {
	g.registrar = r
	saved := data.Generator

	seed := saved.RNGSeed
	if seed == 0 && saved.RNGPosition == 0 {
		seed = g.seed
	}
	g.rng = RestoreRNG(seed, saved.RNGPosition)
	g.next = saved.NextQuestIndex
	g.generated = slices.Clone(saved.GeneratedQuests)
	g.quests = map[string]quest.Quest{}

	g.log.Debug("generator loaded", "seed", seed, "position", saved.RNGPosition, "quests", len(g.generated))
}

// LoadQuests rebuilds every generated quest recorded in the snapshot and
// adds it to the registrar. Recipes whose template is unknown are dropped.
func (g *Generator) LoadQuests(data *types.QuestSave) {
	if g.registrar == nil {
		g.log.Error("generator used before load")
		return
	}

	kept := g.generated[:0]
	for _, recipe := range g.generated {
		def, err := g.build(recipe)
		if err != nil {
			g.log.Warn("drop generated quest", "quest", recipe.Identifier, "error", err)
			continue
		}
		q := quest.New(def, g.registrar, g.world, g.log)
		g.registrar.AddQuest(q)
		g.quests[recipe.Identifier] = q
		kept = append(kept, recipe)
	}
	g.generated = kept
}

// GenerateSectorQuest may create one quest for the sector. Nothing is
// generated when the sector already carries a live generated quest, when
// the chance roll fails or when no template fits.
func (g *Generator) GenerateSectorQuest(sector types.Sector) {
	if g.registrar == nil {
		g.log.Error("generator used before load")
		return
	}
	if g.hasLiveQuest(sector.Identifier) {
		g.log.Debug("sector already has a generated quest", "sector", sector.Identifier)
		return
	}
	if g.rng.Roll(100) > g.chance {
		return
	}

	weights := make([]int, len(templates))
	for i, t := range templates {
		weights[i] = t.weight
	}
	tmpl := templates[g.rng.WeightedSelect(weights)]

	data, ok := tmpl.roll(g, sector)
	if !ok {
		g.log.Debug("no quest fits sector", "template", tmpl.name, "sector", sector.Identifier)
		return
	}

	recipe := types.GeneratedQuestSave{
		Identifier: questIdentifier(tmpl.name, sector.Identifier, g.next),
		Template:   tmpl.name,
		Sector:     sector.Identifier,
		Data:       data,
	}
	g.next++

	def, err := g.build(recipe)
	if err != nil {
		g.log.Error("build generated quest", "template", tmpl.name, "error", err)
		return
	}

	g.log.Info("generated quest", "quest", recipe.Identifier, "template", tmpl.name, "sector", sector.Identifier)
	g.generated = append(g.generated, recipe)

	q := quest.New(def, g.registrar, g.world, g.log)
	g.quests[recipe.Identifier] = q
	g.registrar.AddQuest(q)
	g.registrar.LoadCallbacks(q)
	q.UpdateState()
}

// Save writes the generator state into the snapshot.
func (g *Generator) Save(data *types.QuestSave) {
	generated := slices.Clone(g.generated)
	if generated == nil {
		generated = []types.GeneratedQuestSave{}
	}
	data.Generator = types.GeneratorSave{
		RNGSeed:         g.rng.Seed(),
		RNGPosition:     g.rng.Position(),
		NextQuestIndex:  g.next,
		GeneratedQuests: generated,
	}
}

// Generated returns the recipes of every generated quest.
func (g *Generator) Generated() []types.GeneratedQuestSave {
	return slices.Clone(g.generated)
}

func (g *Generator) hasLiveQuest(sector string) bool {
	for _, recipe := range g.generated {
		if recipe.Sector != sector {
			continue
		}
		q, ok := g.quests[recipe.Identifier]
		if !ok {
			continue
		}
		switch q.Status() {
		case types.StatusPending, types.StatusAvailable, types.StatusActive:
			return true
		}
	}
	return false
}

func (g *Generator) sectorName(identifier string) string {
	if g.world != nil {
		for _, s := range g.world.Sectors() {
			if s.Identifier == identifier && s.Name != "" {
				return s.Name
			}
		}
	}
	return identifier
}
