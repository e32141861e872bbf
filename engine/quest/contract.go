package quest

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/nathoo/questmgr/types"
)

// Contract is the step-based quest used for every quest variant. Tutorial,
// catalog and generated quests differ only by their Definition.
type Contract struct {
	def      Definition
	manager  Manager
	world    World
	log      *slog.Logger
	status   types.QuestStatus
	triggers []*conditionState
	steps    []*Step
	current  int // index of the current step, len(steps) once all are done
	done     []string
	tracked  bool
}

// Compile-time verification that *Contract satisfies Quest.
var _ Quest = (*Contract)(nil)

// New builds a pending contract from a definition.
func New(def Definition, m Manager, w World, log *slog.Logger) *Contract {
	if log == nil {
		log = slog.Default()
	}
	c := &Contract{
		def:     def,
		manager: m,
		world:   w,
		log:     log.With("quest", def.Identifier),
		status:  types.StatusPending,
	}
	for i, cond := range def.Triggers {
		c.triggers = append(c.triggers, &conditionState{id: triggerID(i), cond: cond, trigger: true})
	}
	for _, sd := range def.Steps {
		c.steps = append(c.steps, newStep(sd))
	}
	return c
}

func (c *Contract) Identifier() string            { return c.def.Identifier }
func (c *Contract) Name() string                  { return c.def.Name }
func (c *Contract) Description() string           { return c.def.Description }
func (c *Contract) Category() types.QuestCategory { return c.def.Category }
func (c *Contract) Steps() []*Step                { return c.steps }
func (c *Contract) Status() types.QuestStatus     { return c.status }
func (c *Contract) IsTracked() bool               { return c.tracked }

// Definition returns the definition the contract was built from.
func (c *Contract) Definition() Definition { return c.def }

// SetStatus overwrites the status without any transition side effects.
func (c *Contract) SetStatus(status types.QuestStatus) { c.status = status }

// CurrentStep returns the step in progress, or nil when the quest is not
// active or every step is done.
func (c *Contract) CurrentStep() *Step {
	if c.status != types.StatusActive || c.current < 0 || c.current >= len(c.steps) {
		return nil
	}
	return c.steps[c.current]
}

// CurrentCallbacks derives the wanted callback kinds from the live
// conditions: triggers while pending, the current step while active.
func (c *Contract) CurrentCallbacks() []types.CallbackKind {
	var kinds []types.CallbackKind
	for _, cs := range c.liveConditions() {
		kind, ok := CallbackFor(cs.cond.Type)
		if !ok {
			c.log.Warn("condition has no callback", "type", cs.cond.Type)
			continue
		}
		if !slices.Contains(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func (c *Contract) liveConditions() []*conditionState {
	switch c.status {
	case types.StatusPending:
		return c.triggers
	case types.StatusActive:
		if step := c.CurrentStep(); step != nil {
			return step.conditions()
		}
	}
	return nil
}

// Accept activates an available quest.
func (c *Contract) Accept() {
	if c.status != types.StatusAvailable {
		c.log.Warn("cannot accept quest", "status", c.status)
		return
	}
	c.current = 0
	c.done = nil
	for _, s := range c.steps {
		s.reset()
	}
	c.status = types.StatusActive
	c.manager.OnQuestActivation(c)
	c.advance()
}

// Abandon gives up an active quest.
func (c *Contract) Abandon() {
	if c.status != types.StatusActive {
		c.log.Warn("cannot abandon quest", "status", c.status)
		return
	}
	c.status = types.StatusAbandoned
	c.manager.OnQuestAbandon(c)
}

func (c *Contract) StartObjectiveTracking() {
	c.tracked = true
	if step := c.CurrentStep(); step != nil {
		c.log.Debug("tracking objective", "step", step.Identifier())
	}
}

func (c *Contract) StopObjectiveTracking() {
	c.tracked = false
}

// UpdateState evaluates the quest from scratch.
func (c *Contract) UpdateState() {
	switch c.status {
	case types.StatusPending:
		if c.allCompleted(c.triggers) {
			c.status = types.StatusAvailable
			c.manager.OnQuestAvailable(c)
			// The status broadcast may already have accepted it.
			if c.def.AutoAccept && c.status == types.StatusAvailable {
				c.Accept()
			}
		}
	case types.StatusAvailable:
		if c.def.AutoAccept {
			c.Accept()
		}
	case types.StatusActive:
		c.advance()
	}
}

// advance walks the steps while their end conditions hold.
func (c *Contract) advance() {
	for c.status == types.StatusActive {
		step := c.CurrentStep()
		if step == nil {
			c.status = types.StatusSuccessful
			c.manager.OnQuestSuccess(c)
			return
		}
		if c.anyCompleted(step.fail) {
			c.status = types.StatusFailed
			c.manager.OnQuestFail(c)
			return
		}
		if !c.allCompleted(step.end) {
			return
		}
		c.log.Debug("step completed", "step", step.Identifier(), "index", step.StepIndex())
		c.done = append(c.done, step.Identifier())
		c.current++
		if next := c.CurrentStep(); next != nil {
			next.reset()
		}
		c.manager.LoadCallbacks(c)
	}
}

// Save captures the progress of an active quest.
func (c *Contract) Save() types.QuestProgressSave {
	p := types.QuestProgressSave{
		QuestIdentifier:     c.def.Identifier,
		CurrentStepIndex:    c.current,
		SuccessfulSteps:     slices.Clone(c.done),
		CurrentStepProgress: []types.ConditionSave{},
	}
	if p.SuccessfulSteps == nil {
		p.SuccessfulSteps = []string{}
	}
	if step := c.CurrentStep(); step != nil {
		for _, cs := range step.conditions() {
			p.CurrentStepProgress = append(p.CurrentStepProgress, types.ConditionSave{
				Identifier: cs.id,
				Completed:  cs.completed,
				Elapsed:    cs.elapsed,
			})
		}
	}
	return p
}

// Restore puts the quest back in the active state recorded by Save.
func (c *Contract) Restore(p types.QuestProgressSave) {
	c.status = types.StatusActive
	c.current = min(max(p.CurrentStepIndex, 0), len(c.steps))
	c.done = slices.Clone(p.SuccessfulSteps)
	for _, s := range c.steps {
		s.reset()
	}
	step := c.CurrentStep()
	if step == nil {
		return
	}
	byID := make(map[string]types.ConditionSave, len(p.CurrentStepProgress))
	for _, cs := range p.CurrentStepProgress {
		byID[cs.Identifier] = cs
	}
	for _, cs := range step.conditions() {
		if saved, ok := byID[cs.id]; ok {
			cs.completed = saved.Completed
			cs.elapsed = saved.Elapsed
		}
	}
}

func (c *Contract) OnTick(deltaSeconds float64) {
	for _, cs := range c.liveConditions() {
		if cs.cond.Type != CondFlyingTime {
			continue
		}
		if sector := paramString(cs.cond, "sector"); sector != "" {
			active, ok := c.activeSector()
			if !ok || active.Identifier != sector {
				continue
			}
		}
		cs.elapsed += deltaSeconds
	}
	c.UpdateState()
}

func (c *Contract) OnFlyShip(ship types.Ship) {
	for _, cs := range c.liveConditions() {
		if cs.cond.Type != CondFlyShip {
			continue
		}
		if want := paramString(cs.cond, "ship"); want == "" || want == ship.Identifier {
			cs.completed = true
		}
	}
	c.UpdateState()
}

func (c *Contract) OnSectorActivation(types.Sector) {
	c.UpdateState()
}

func (c *Contract) OnSectorVisited(sector types.Sector) {
	for _, cs := range c.liveConditions() {
		if cs.cond.Type != CondSectorVisited {
			continue
		}
		if want := paramString(cs.cond, "sector"); want == "" || want == sector.Identifier {
			cs.completed = true
		}
	}
	c.UpdateState()
}

func (c *Contract) OnQuestStatusChanged(Quest) {
	c.UpdateState()
}

func (c *Contract) activeSector() (types.Sector, bool) {
	if c.world == nil {
		return types.Sector{}, false
	}
	return c.world.ActiveSector()
}

func triggerID(i int) string {
	return fmt.Sprintf("trigger.%d", i)
}
