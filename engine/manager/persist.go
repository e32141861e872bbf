package manager

import (
	"slices"

	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// Load rebuilds the full quest set from a snapshot: built-in tutorials,
// then one quest per catalog definition, then the generator's dynamic
// quests. Any previously loaded state is discarded.
func (m *Manager) Load(data types.QuestSave) {
	m.reset()
	m.data = cloneSave(data)

	if m.generator != nil {
		m.generator.Load(m, &m.data)
	}

	for _, p := range m.data.QuestProgresses {
		m.activeIdentifiers = append(m.activeIdentifiers, p.QuestIdentifier)
	}

	m.loadBuiltinQuests()
	m.loadCatalogQuests()
	m.loadDynamicQuests()

	for _, q := range m.quests {
		m.LoadCallbacks(q)
		q.UpdateState()
	}

	if m.selected == nil {
		m.AutoSelectQuest()
	}
}

func (m *Manager) loadBuiltinQuests() {
	for _, def := range quest.Tutorials() {
		m.AddQuest(quest.New(def, m, m.game, m.log))
	}
}

func (m *Manager) loadCatalogQuests() {
	for _, def := range m.catalog {
		m.AddQuest(quest.New(def, m, m.game, m.log))
	}
}

func (m *Manager) loadDynamicQuests() {
	if m.generator != nil {
		m.generator.LoadQuests(&m.data)
	}
}

// AddQuest numbers the quest steps and classifies the quest into a bucket
// from the loaded snapshot. The first matching rule wins.
func (m *Manager) AddQuest(q quest.Quest) {
	for i, step := range q.Steps() {
		step.SetStepIndex(i)
	}

	id := q.Identifier()
	progressIndex := slices.Index(m.activeIdentifiers, id)

	switch {
	case q.Category() == types.CategoryTutorial && !m.data.PlayTutorial:
		m.log.Debug("found skipped tutorial quest", "quest", id)
		m.old = append(m.old, q)
		q.SetStatus(types.StatusSuccessful)

	case progressIndex >= 0:
		m.log.Debug("found active quest", "quest", id)
		m.active = append(m.active, q)
		q.SetStatus(types.StatusActive)
		q.Restore(m.data.QuestProgresses[progressIndex])
		if m.data.SelectedQuest == id {
			m.SelectQuest(q)
		}

	case slices.Contains(m.data.SuccessfulQuests, id):
		m.log.Debug("found completed quest", "quest", id)
		m.old = append(m.old, q)
		q.SetStatus(types.StatusSuccessful)

	case slices.Contains(m.data.AbandonedQuests, id):
		m.log.Debug("found abandoned quest", "quest", id)
		m.old = append(m.old, q)
		q.SetStatus(types.StatusAbandoned)

	case slices.Contains(m.data.FailedQuests, id):
		m.log.Debug("found failed quest", "quest", id)
		m.old = append(m.old, q)
		q.SetStatus(types.StatusFailed)

	case slices.Contains(m.data.AvailableQuests, id):
		m.log.Debug("found available quest", "quest", id)
		m.available = append(m.available, q)
		q.SetStatus(types.StatusAvailable)

	default:
		m.log.Debug("found pending quest", "quest", id)
		m.pending = append(m.pending, q)
		q.SetStatus(types.StatusPending)
	}

	m.quests = append(m.quests, q)
}

// Save rebuilds the snapshot from the buckets and returns it. The manager
// keeps ownership; the pointer stays valid until the next Save or Load.
// AvailableQuests is left as loaded.
func (m *Manager) Save() *types.QuestSave {
	m.data.QuestProgresses = []types.QuestProgressSave{}
	m.data.SuccessfulQuests = []string{}
	m.data.AbandonedQuests = []string{}
	m.data.FailedQuests = []string{}

	m.data.SelectedQuest = ""
	if m.selected != nil {
		m.data.SelectedQuest = m.selected.Identifier()
	}

	for _, q := range m.active {
		m.data.QuestProgresses = append(m.data.QuestProgresses, q.Save())
	}

	for _, q := range m.old {
		switch q.Status() {
		case types.StatusSuccessful:
			m.data.SuccessfulQuests = append(m.data.SuccessfulQuests, q.Identifier())
		case types.StatusAbandoned:
			m.data.AbandonedQuests = append(m.data.AbandonedQuests, q.Identifier())
		case types.StatusFailed:
			m.data.FailedQuests = append(m.data.FailedQuests, q.Identifier())
		default:
			m.log.Error("bad status for old quest", "quest", q.Identifier(), "status", q.Status())
		}
	}

	if m.generator != nil {
		m.generator.Save(&m.data)
	}

	return &m.data
}

func (m *Manager) reset() {
	m.data = types.QuestSave{}
	m.activeIdentifiers = nil
	m.quests = nil
	m.pending = nil
	m.available = nil
	m.active = nil
	m.old = nil
	m.selected = nil
	m.callbacks = map[types.CallbackKind][]quest.Quest{}
}

func cloneSave(data types.QuestSave) types.QuestSave {
	out := data
	out.QuestProgresses = slices.Clone(data.QuestProgresses)
	out.SuccessfulQuests = slices.Clone(data.SuccessfulQuests)
	out.AbandonedQuests = slices.Clone(data.AbandonedQuests)
	out.FailedQuests = slices.Clone(data.FailedQuests)
	out.AvailableQuests = slices.Clone(data.AvailableQuests)
	out.Generator.GeneratedQuests = slices.Clone(data.Generator.GeneratedQuests)
	return out
}
