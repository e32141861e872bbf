// Package quest defines the quest capability set consumed by the quest
// manager and the Contract type that implements it for tutorial, catalog and
// generated quests.
package quest

import "github.com/nathoo/questmgr/types"

// Quest is a single quest's external contract.
type Quest interface {
	Identifier() string
	Name() string
	Description() string
	Category() types.QuestCategory
	Steps() []*Step

	Status() types.QuestStatus
	SetStatus(status types.QuestStatus)

	// CurrentCallbacks returns the callback kinds the quest wants delivered
	// in its current status and step.
	CurrentCallbacks() []types.CallbackKind

	Accept()
	Abandon()
	StartObjectiveTracking()
	StopObjectiveTracking()
	IsTracked() bool

	// UpdateState evaluates the quest status from scratch and reports any
	// transition to the manager.
	UpdateState()

	Save() types.QuestProgressSave
	Restore(progress types.QuestProgressSave)

	OnTick(deltaSeconds float64)
	OnFlyShip(ship types.Ship)
	OnSectorActivation(sector types.Sector)
	OnSectorVisited(sector types.Sector)
	OnQuestStatusChanged(changed Quest)
}

// Manager is the part of the quest manager a quest reports to.
type Manager interface {
	OnQuestAvailable(q Quest)
	OnQuestActivation(q Quest)
	OnQuestSuccess(q Quest)
	OnQuestFail(q Quest)
	OnQuestAbandon(q Quest)
	LoadCallbacks(q Quest)

	// FindQuest returns nil when no addressable quest matches.
	FindQuest(identifier string) Quest
	IsQuestSuccessful(q Quest) bool
	IsQuestFailed(q Quest) bool
}

// Registrar is a Manager that also accepts new quests. The quest generator
// uses it to register the quests it builds.
type Registrar interface {
	Manager
	AddQuest(q Quest)
}

// World is the game state a quest queries while evaluating conditions.
// An empty identifier asks about any sector reached by travel or any ship.
type World interface {
	ActiveSector() (types.Sector, bool)
	IsSectorVisited(identifier string) bool
	HasFlownShip(identifier string) bool
}

// Definition is the immutable description a Contract is built from.
type Definition struct {
	Identifier  string
	Name        string
	Description string
	Category    types.QuestCategory
	AutoAccept  bool
	Triggers    []types.Condition // all must hold for the quest to become available
	Steps       []StepDefinition
}

// StepDefinition describes one quest step.
type StepDefinition struct {
	Identifier     string
	Description    string
	EndConditions  []types.Condition // all must hold to finish the step
	FailConditions []types.Condition // any fails the quest
}
