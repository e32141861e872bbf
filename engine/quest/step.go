package quest

import (
	"fmt"

	"github.com/nathoo/questmgr/types"
)

// Step is one ordered stage of a quest.
type Step struct {
	def   StepDefinition
	index int
	end   []*conditionState
	fail  []*conditionState
}

func newStep(def StepDefinition) *Step {
	s := &Step{def: def}
	for i, c := range def.EndConditions {
		s.end = append(s.end, &conditionState{id: fmt.Sprintf("%s.end.%d", def.Identifier, i), cond: c})
	}
	for i, c := range def.FailConditions {
		s.fail = append(s.fail, &conditionState{id: fmt.Sprintf("%s.fail.%d", def.Identifier, i), cond: c})
	}
	return s
}

func (s *Step) Identifier() string  { return s.def.Identifier }
func (s *Step) Description() string { return s.def.Description }

// StepIndex returns the zero-based position assigned by the manager.
func (s *Step) StepIndex() int { return s.index }

// SetStepIndex is called by the manager when the quest is added.
func (s *Step) SetStepIndex(index int) { s.index = index }

// EndConditions returns the definitions of the conditions ending the step.
func (s *Step) EndConditions() []types.Condition { return s.def.EndConditions }

// FailConditions returns the definitions of the conditions failing the step.
func (s *Step) FailConditions() []types.Condition { return s.def.FailConditions }

func (s *Step) conditions() []*conditionState {
	all := make([]*conditionState, 0, len(s.end)+len(s.fail))
	all = append(all, s.end...)
	return append(all, s.fail...)
}

func (s *Step) reset() {
	for _, cs := range s.conditions() {
		cs.completed = false
		cs.elapsed = 0
	}
}
