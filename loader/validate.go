package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Categories a catalog may declare. Generated quests come from the
// generator only.
var validCategories = map[types.QuestCategory]bool{
	types.CategoryTutorial:  true,
	types.CategoryHistory:   true,
	types.CategorySecondary: true,
}

// validate checks the compiled catalog for consistency. It returns the
// warnings and, when any error is found, a *ValidationError.
func validate(cat *Catalog) ([]string, error) {
	ve := &ValidationError{}

	sectors := map[string]bool{}
	for _, s := range cat.Sectors {
		if sectors[s.Identifier] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate sector ID %q", s.Identifier))
		}
		sectors[s.Identifier] = true
	}

	known := map[string]bool{}
	for _, def := range quest.Tutorials() {
		known[def.Identifier] = true
	}
	ids := map[string]bool{}
	for _, def := range cat.Quests {
		switch {
		case def.Identifier == "":
			ve.Errors = append(ve.Errors, "contract with empty ID")
		case known[def.Identifier] && !ids[def.Identifier]:
			ve.Errors = append(ve.Errors, fmt.Sprintf("contract %q conflicts with a built-in quest", def.Identifier))
		case ids[def.Identifier]:
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate contract ID %q", def.Identifier))
		}
		ids[def.Identifier] = true
	}
	for id := range ids {
		known[id] = true
	}

	for _, def := range cat.Quests {
		validateContract(def, known, sectors, ve)
	}

	if len(ve.Errors) > 0 {
		return ve.Warnings, ve
	}
	return ve.Warnings, nil
}

func validateContract(def quest.Definition, quests, sectors map[string]bool, ve *ValidationError) {
	if !validCategories[def.Category] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"contract %q has unknown category %q", def.Identifier, def.Category))
	}
	if len(def.Steps) == 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("contract %q has no steps", def.Identifier))
	}

	where := fmt.Sprintf("contract %q trigger", def.Identifier)
	validateConditions(where, def.Triggers, quests, sectors, ve)
	// Trigger progress is rebuilt from the world on load; elapsed time is not.
	for _, cond := range def.Triggers {
		if cond.Type == quest.CondFlyingTime {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: flying_time cannot gate availability", where))
		}
	}

	steps := map[string]bool{}
	for _, step := range def.Steps {
		if steps[step.Identifier] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"contract %q has duplicate step ID %q", def.Identifier, step.Identifier))
		}
		steps[step.Identifier] = true

		if len(step.EndConditions) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"contract %q step %q has no conditions and completes at once", def.Identifier, step.Identifier))
		}
		where := fmt.Sprintf("contract %q step %q", def.Identifier, step.Identifier)
		validateConditions(where, step.EndConditions, quests, sectors, ve)
		validateConditions(where+" fail", step.FailConditions, quests, sectors, ve)
	}
}

func validateConditions(where string, conditions []types.Condition, quests, sectors map[string]bool, ve *ValidationError) {
	for _, cond := range conditions {
		if _, ok := quest.CallbackFor(cond.Type); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown condition type %q", where, cond.Type))
			continue
		}

		switch cond.Type {
		case quest.CondQuestSuccessful, quest.CondQuestFailed:
			id, _ := cond.Params["quest"].(string)
			if id == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s requires a quest", where, cond.Type))
			} else if !quests[id] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"%s: %s references unknown quest %q", where, cond.Type, id))
			}
		case quest.CondFlyingTime:
			seconds, _ := cond.Params["seconds"].(float64)
			if seconds <= 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: flying_time requires positive seconds", where))
			}
		}

		if sector, ok := cond.Params["sector"].(string); ok && sector != "" && !sectors[sector] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"%s: %s references unknown sector %q", where, cond.Type, sector))
		}
	}
}
