package manager

import (
	"slices"

	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// FindQuest searches active, old, then available quests. Pending quests are
// not addressable by identifier.
func (m *Manager) FindQuest(identifier string) quest.Quest {
	for _, bucket := range [][]quest.Quest{m.active, m.old, m.available} {
		for _, q := range bucket {
			if q.Identifier() == identifier {
				return q
			}
		}
	}
	return nil
}

func (m *Manager) IsQuestActive(q quest.Quest) bool {
	return slices.Contains(m.active, q)
}

func (m *Manager) IsQuestAvailable(q quest.Quest) bool {
	return slices.Contains(m.available, q)
}

func (m *Manager) IsQuestSuccessful(q quest.Quest) bool {
	return slices.Contains(m.old, q) && q.Status() == types.StatusSuccessful
}

func (m *Manager) IsQuestFailed(q quest.Quest) bool {
	return slices.Contains(m.old, q) && q.Status() == types.StatusFailed
}

// IsOldQuest reports successful or failed quests. Abandoned quests are old
// but not reported here.
func (m *Manager) IsOldQuest(q quest.Quest) bool {
	return m.IsQuestSuccessful(q) || m.IsQuestFailed(q)
}
