package generator

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// Template names.
const (
	TemplateTravel = "travel"
	TemplatePatrol = "patrol"
)

// namespace scopes the name-based identifiers of generated quests.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("questmgr:generated-quest"))

type template struct {
	name   string
	weight int
	// roll draws the random data of a new quest. false means the template
	// does not fit the sector.
	roll func(g *Generator, sector types.Sector) (map[string]string, bool)
	// build turns a recipe into a definition. It must be deterministic.
	build func(g *Generator, recipe types.GeneratedQuestSave) (quest.Definition, error)
}

var templates = []template{
	{name: TemplateTravel, weight: 60, roll: rollTravel, build: buildTravel},
	{name: TemplatePatrol, weight: 40, roll: rollPatrol, build: buildPatrol},
}

func (g *Generator) build(recipe types.GeneratedQuestSave) (quest.Definition, error) {
	for _, t := range templates {
		if t.name == recipe.Template {
			return t.build(g, recipe)
		}
	}
	return quest.Definition{}, fmt.Errorf("unknown template %q", recipe.Template)
}

// questIdentifier derives a stable identifier from the template, the
// sector and the generator counter.
func questIdentifier(template, sector string, index int) string {
	name := fmt.Sprintf("%s/%s/%d", template, sector, index)
	return "gen-" + uuid.NewSHA1(namespace, []byte(name)).String()
}

func rollTravel(g *Generator, sector types.Sector) (map[string]string, bool) {
	if g.world == nil {
		return nil, false
	}
	var candidates []types.Sector
	for _, s := range g.world.Sectors() {
		if s.Identifier != sector.Identifier {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	dest := candidates[g.rng.Intn(len(candidates))]
	return map[string]string{"destination": dest.Identifier}, true
}

func buildTravel(g *Generator, recipe types.GeneratedQuestSave) (quest.Definition, error) {
	dest := recipe.Data["destination"]
	if dest == "" {
		return quest.Definition{}, fmt.Errorf("travel quest %s: missing destination", recipe.Identifier)
	}
	name := g.sectorName(dest)
	return quest.Definition{
		Identifier:  recipe.Identifier,
		Name:        "Travel to " + name,
		Description: fmt.Sprintf("A client in %s needs a ship in %s.", g.sectorName(recipe.Sector), name),
		Category:    types.CategoryGenerated,
		Steps: []quest.StepDefinition{
			{
				Identifier:  "visit",
				Description: "Travel to " + name + ".",
				EndConditions: []types.Condition{
					{Type: quest.CondSectorVisited, Params: map[string]any{"sector": dest}},
				},
			},
			{
				Identifier:  "arrive",
				Description: "Fly in " + name + ".",
				EndConditions: []types.Condition{
					{Type: quest.CondSectorActive, Params: map[string]any{"sector": dest}},
				},
			},
		},
	}, nil
}

func rollPatrol(g *Generator, _ types.Sector) (map[string]string, bool) {
	seconds := 20 + 10*g.rng.Roll(3)
	return map[string]string{"seconds": strconv.Itoa(seconds)}, true
}

func buildPatrol(g *Generator, recipe types.GeneratedQuestSave) (quest.Definition, error) {
	seconds, err := strconv.Atoi(recipe.Data["seconds"])
	if err != nil || seconds <= 0 {
		return quest.Definition{}, fmt.Errorf("patrol quest %s: bad duration %q", recipe.Identifier, recipe.Data["seconds"])
	}
	name := g.sectorName(recipe.Sector)
	return quest.Definition{
		Identifier:  recipe.Identifier,
		Name:        "Patrol " + name,
		Description: fmt.Sprintf("Keep a ship flying in %s for %d seconds.", name, seconds),
		Category:    types.CategoryGenerated,
		Steps: []quest.StepDefinition{
			{
				Identifier:  "patrol",
				Description: fmt.Sprintf("Fly in %s for %d seconds.", name, seconds),
				EndConditions: []types.Condition{
					{Type: quest.CondFlyingTime, Params: map[string]any{
						"seconds": float64(seconds),
						"sector":  recipe.Sector,
					}},
				},
			},
		},
	}, nil
}
