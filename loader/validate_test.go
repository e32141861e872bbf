package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// validCatalog returns a minimal valid Catalog for testing.
func validCatalog() *Catalog {
	return &Catalog{
		Sectors: []types.Sector{{Identifier: "nema", Name: "Nema"}},
		Quests: []quest.Definition{
			{
				Identifier: "courier",
				Name:       "Courier",
				Category:   types.CategorySecondary,
				Triggers: []types.Condition{
					{Type: quest.CondQuestSuccessful, Params: map[string]any{"quest": quest.TutorialFlying}},
				},
				Steps: []quest.StepDefinition{
					{
						Identifier: "go",
						EndConditions: []types.Condition{
							{Type: quest.CondSectorVisited, Params: map[string]any{"sector": "nema"}},
						},
					},
				},
			},
		},
	}
}

func requireValidationErrors(t *testing.T, cat *Catalog, n int) *ValidationError {
	t.Helper()
	_, err := validate(cat)
	require.Error(t, err)
	ve, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	require.Len(t, ve.Errors, n, "errors: %v", ve.Errors)
	return ve
}

func TestValidate_ValidCatalog(t *testing.T) {
	warnings, err := validate(validCatalog())
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidate_DuplicateContract(t *testing.T) {
	cat := validCatalog()
	cat.Quests = append(cat.Quests, cat.Quests[0])

	ve := requireValidationErrors(t, cat, 1)
	assert.Contains(t, ve.Errors[0], "duplicate contract ID")
}

func TestValidate_BuiltinConflict(t *testing.T) {
	cat := validCatalog()
	cat.Quests[0].Identifier = quest.TutorialNavigation

	ve := requireValidationErrors(t, cat, 1)
	assert.Contains(t, ve.Errors[0], "built-in")
}

func TestValidate_DuplicateSector(t *testing.T) {
	cat := validCatalog()
	cat.Sectors = append(cat.Sectors, types.Sector{Identifier: "nema"})

	requireValidationErrors(t, cat, 1)
}

func TestValidate_GeneratedCategoryRejected(t *testing.T) {
	cat := validCatalog()
	cat.Quests[0].Category = types.CategoryGenerated

	ve := requireValidationErrors(t, cat, 1)
	assert.Contains(t, ve.Errors[0], "unknown category")
}

func TestValidate_NoSteps(t *testing.T) {
	cat := validCatalog()
	cat.Quests[0].Steps = nil

	requireValidationErrors(t, cat, 1)
}

func TestValidate_DuplicateStep(t *testing.T) {
	cat := validCatalog()
	cat.Quests[0].Steps = append(cat.Quests[0].Steps, cat.Quests[0].Steps[0])

	ve := requireValidationErrors(t, cat, 1)
	assert.Contains(t, ve.Errors[0], "duplicate step ID")
}

func TestValidate_MissingParams(t *testing.T) {
	cat := validCatalog()
	cat.Quests[0].Steps[0].EndConditions = []types.Condition{
		{Type: quest.CondQuestFailed, Params: map[string]any{}},
		{Type: quest.CondFlyingTime, Params: map[string]any{}},
	}

	requireValidationErrors(t, cat, 2)
}

func TestValidate_FlyingTimeTriggerRejected(t *testing.T) {
	cat := validCatalog()
	cat.Quests[0].Triggers = []types.Condition{
		{Type: quest.CondFlyingTime, Params: map[string]any{"seconds": 10.0}},
	}

	ve := requireValidationErrors(t, cat, 1)
	assert.Contains(t, ve.Errors[0], "flying_time cannot gate availability")
}

func TestValidate_UnknownConditionType(t *testing.T) {
	cat := validCatalog()
	cat.Quests[0].Steps[0].FailConditions = []types.Condition{{Type: "has_item"}}

	ve := requireValidationErrors(t, cat, 1)
	assert.Contains(t, ve.Errors[0], "unknown condition type")
}

func TestValidate_UnknownReferencesWarn(t *testing.T) {
	cat := validCatalog()
	cat.Quests[0].Triggers = []types.Condition{
		{Type: quest.CondQuestSuccessful, Params: map[string]any{"quest": "ghost"}},
	}
	cat.Quests[0].Steps[0].EndConditions = []types.Condition{
		{Type: quest.CondSectorActive, Params: map[string]any{"sector": "nowhere"}},
	}

	warnings, err := validate(cat)
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
}

func TestValidate_EmptyStepWarns(t *testing.T) {
	cat := validCatalog()
	cat.Quests[0].Steps[0].EndConditions = nil

	warnings, err := validate(cat)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "completes at once")
}
