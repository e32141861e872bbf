// Package types defines the shared data structures for the quest manager.
// This package holds only type definitions with no logic.
package types

// QuestStatus is the lifecycle state of a quest. Exactly one per quest.
type QuestStatus string

const (
	StatusPending    QuestStatus = "pending"
	StatusAvailable  QuestStatus = "available"
	StatusActive     QuestStatus = "active"
	StatusSuccessful QuestStatus = "successful"
	StatusFailed     QuestStatus = "failed"
	StatusAbandoned  QuestStatus = "abandoned"
)

// QuestCategory classifies where a quest comes from.
type QuestCategory string

const (
	CategoryTutorial  QuestCategory = "tutorial"
	CategoryHistory   QuestCategory = "history"
	CategorySecondary QuestCategory = "secondary"
	CategoryGenerated QuestCategory = "generated"
)

// CallbackKind is a category of game event a quest can subscribe to.
type CallbackKind string

const (
	CallbackFlyShip       CallbackKind = "fly_ship"
	CallbackTickFlying    CallbackKind = "tick_flying"
	CallbackSectorVisited CallbackKind = "sector_visited"
	CallbackSectorActive  CallbackKind = "sector_active"
	CallbackQuest         CallbackKind = "quest"
)

// Condition is a predicate a quest evaluates to become available, to end a
// step, or to fail a step.
type Condition struct {
	Type   string         // "quest_successful", "fly_ship", "flying_time", etc.
	Params map[string]any // condition-specific parameters
}

// Sector is a location in the simulated universe.
type Sector struct {
	Identifier string
	Name       string
}

// Ship is a spacecraft the player can fly.
type Ship struct {
	Identifier string
	Name       string
}

// Fleet is a group of ships traveling together.
type Fleet struct {
	Identifier    string
	CurrentSector Sector
}

// MenuTarget routes a notification click to a menu.
type MenuTarget struct {
	Menu  string
	Quest string // quest identifier, optional
}

// Notification is a fire-and-forget message for the player.
type Notification struct {
	Title    string
	Body     string
	Tag      string // unique per quest and event, e.g. "quest-<id>-status"
	Category string
	Target   MenuTarget
}

// ConditionSave is the persisted progress of one condition.
type ConditionSave struct {
	Identifier string  `json:"identifier"`
	Completed  bool    `json:"completed,omitempty"`
	Elapsed    float64 `json:"elapsed,omitempty"`
}

// QuestProgressSave is the persisted progress of one active quest.
type QuestProgressSave struct {
	QuestIdentifier     string          `json:"quest_identifier"`
	CurrentStepIndex    int             `json:"current_step_index"`
	SuccessfulSteps     []string        `json:"successful_steps"`
	CurrentStepProgress []ConditionSave `json:"current_step_progress"`
}

// GeneratedQuestSave is the persisted recipe of one generated quest.
type GeneratedQuestSave struct {
	Identifier string            `json:"identifier"`
	Template   string            `json:"template"`
	Sector     string            `json:"sector"`
	Data       map[string]string `json:"data,omitempty"`
}

// GeneratorSave is the quest generator state. Opaque to the quest manager.
type GeneratorSave struct {
	RNGSeed         int64                `json:"rng_seed"`
	RNGPosition     int64                `json:"rng_position"`
	NextQuestIndex  int                  `json:"next_quest_index"`
	GeneratedQuests []GeneratedQuestSave `json:"generated_quests"`
}

// QuestSave is the complete persisted quest manager state.
type QuestSave struct {
	SelectedQuest    string              `json:"selected_quest,omitempty"`
	QuestProgresses  []QuestProgressSave `json:"quest_progresses"`
	SuccessfulQuests []string            `json:"successful_quests"`
	AbandonedQuests  []string            `json:"abandoned_quests"`
	FailedQuests     []string            `json:"failed_quests"`
	AvailableQuests  []string            `json:"available_quests"` // read on load, never rewritten
	PlayTutorial     bool                `json:"play_tutorial"`
	Generator        GeneratorSave       `json:"generator"`
}

// WorldSave is the persisted state of the game world the quests consult.
// Quest conditions are re-derived from it on load.
type WorldSave struct {
	FleetSector    string   `json:"fleet_sector,omitempty"`
	ActiveSector   string   `json:"active_sector,omitempty"`
	Ship           string   `json:"ship,omitempty"`
	VisitedSectors []string `json:"visited_sectors"`
	FlownShips     []string `json:"flown_ships"`
}
