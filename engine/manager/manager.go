// Package manager owns every quest of a session. It classifies quests into
// status buckets, routes game events to the quests that asked for them,
// tracks the selected quest and converts its state to and from a QuestSave.
//
// All methods are meant to be called from the game loop goroutine. Nothing
// blocks and nothing is locked.
package manager

import (
	"log/slog"
	"slices"

	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// Game is the game state the manager and its quests consult.
type Game interface {
	quest.World
	PlayerFleet() types.Fleet
}

// Notifier receives player-facing notifications.
type Notifier interface {
	Notify(n types.Notification)
}

// Generator builds procedural quests and persists its own state.
type Generator interface {
	Load(r quest.Registrar, data *types.QuestSave)
	LoadQuests(data *types.QuestSave)
	GenerateSectorQuest(sector types.Sector)
	Save(data *types.QuestSave)
}

// Options configures a Manager. Only Game is required for event delivery;
// a nil Notifier or Generator disables that collaborator.
type Options struct {
	Game      Game
	Notifier  Notifier
	Generator Generator
	Catalog   []quest.Definition
	Logger    *slog.Logger
}

// Manager is the quest registry.
type Manager struct {
	game      Game
	notifier  Notifier
	generator Generator
	catalog   []quest.Definition
	log       *slog.Logger

	data              types.QuestSave
	activeIdentifiers []string

	quests    []quest.Quest // master list, insertion order
	pending   []quest.Quest
	available []quest.Quest
	active    []quest.Quest
	old       []quest.Quest
	selected  quest.Quest

	callbacks map[types.CallbackKind][]quest.Quest
}

// Compile-time verification that *Manager satisfies quest.Registrar.
var _ quest.Registrar = (*Manager)(nil)

// New creates an empty manager. Call Load before delivering events.
func New(opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		game:      opts.Game,
		notifier:  opts.Notifier,
		generator: opts.Generator,
		catalog:   opts.Catalog,
		log:       log,
		callbacks: map[types.CallbackKind][]quest.Quest{},
	}
}

// Quests returns every quest in insertion order.
func (m *Manager) Quests() []quest.Quest { return slices.Clone(m.quests) }

func (m *Manager) PendingQuests() []quest.Quest   { return slices.Clone(m.pending) }
func (m *Manager) AvailableQuests() []quest.Quest { return slices.Clone(m.available) }
func (m *Manager) ActiveQuests() []quest.Quest    { return slices.Clone(m.active) }
func (m *Manager) OldQuests() []quest.Quest       { return slices.Clone(m.old) }

// SelectedQuest returns the focused quest, or nil.
func (m *Manager) SelectedQuest() quest.Quest { return m.selected }

// Subscribers returns the quests currently subscribed to a callback kind,
// duplicates included.
func (m *Manager) Subscribers(kind types.CallbackKind) []quest.Quest {
	return slices.Clone(m.callbacks[kind])
}

// remove deletes every occurrence of q. Removing an absent quest is a no-op.
func remove(list []quest.Quest, q quest.Quest) []quest.Quest {
	return slices.DeleteFunc(list, func(x quest.Quest) bool { return x == q })
}
