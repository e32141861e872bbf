package manager

import "github.com/nathoo/questmgr/engine/quest"

// SelectQuest focuses an active quest for objective tracking. Selecting a
// quest that is not active is logged and ignored.
func (m *Manager) SelectQuest(q quest.Quest) {
	m.log.Debug("select quest", "quest", q.Identifier())
	if !m.IsQuestActive(q) {
		m.log.Error("fail to select quest, the quest to select must be active", "quest", q.Identifier())
		return
	}

	if m.selected != nil && m.selected != q {
		m.selected.StopObjectiveTracking()
	}

	m.selected = q
	q.StartObjectiveTracking()
}

// AutoSelectQuest selects the first active quest when more than one quest
// is active. With zero or one active quest the selection is cleared.
func (m *Manager) AutoSelectQuest() {
	if len(m.active) > 1 {
		m.SelectQuest(m.active[0])
		return
	}

	if m.selected != nil {
		m.selected.StopObjectiveTracking()
	}
	m.selected = nil
}
