package quest

import "github.com/nathoo/questmgr/types"

// Built-in tutorial identifiers.
const (
	TutorialFlying     = "tutorial-flying"
	TutorialNavigation = "tutorial-navigation"
)

// Tutorials returns the built-in tutorial definitions in load order.
func Tutorials() []Definition {
	return []Definition{
		{
			Identifier:  TutorialFlying,
			Name:        "Flying",
			Description: "Learn to pilot a ship.",
			Category:    types.CategoryTutorial,
			AutoAccept:  true,
			Steps: []StepDefinition{
				{
					Identifier:    "take-control",
					Description:   "Take control of a ship.",
					EndConditions: []types.Condition{{Type: CondFlyShip, Params: map[string]any{}}},
				},
				{
					Identifier:  "fly-around",
					Description: "Fly for a few seconds.",
					EndConditions: []types.Condition{
						{Type: CondFlyingTime, Params: map[string]any{"seconds": 10.0}},
					},
				},
			},
		},
		{
			Identifier:  TutorialNavigation,
			Name:        "Navigation",
			Description: "Learn to travel between sectors.",
			Category:    types.CategoryTutorial,
			AutoAccept:  true,
			Triggers: []types.Condition{
				{Type: CondQuestSuccessful, Params: map[string]any{"quest": TutorialFlying}},
			},
			Steps: []StepDefinition{
				{
					Identifier:    "travel",
					Description:   "Travel to another sector.",
					EndConditions: []types.Condition{{Type: CondSectorVisited, Params: map[string]any{}}},
				},
				{
					Identifier:    "arrive",
					Description:   "Fly in the destination sector.",
					EndConditions: []types.Condition{{Type: CondSectorActive, Params: map[string]any{}}},
				},
			},
		},
	}
}
