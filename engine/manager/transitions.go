package manager

import (
	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// Notification titles.
const (
	titleAvailable = "New contract available"
	titleActivated = "New contract started"
	titleSuccess   = "Contract successful"
	titleFailed    = "Contract failed"
	titleAbandoned = "Contract abandoned"
)

// AcceptQuest asks an available quest to activate itself.
func (m *Manager) AcceptQuest(q quest.Quest) {
	m.log.Info("accept quest", "quest", q.Identifier())
	q.Accept()
}

// AbandonQuest asks an active quest to abandon itself.
func (m *Manager) AbandonQuest(q quest.Quest) {
	m.log.Info("abandon quest", "quest", q.Identifier())
	q.Abandon()
}

// The transition handlers below are called by a quest reporting its own
// transition. They trust the caller: the quest is removed from the expected
// source bucket without checking it was there.

func (m *Manager) OnQuestAvailable(q quest.Quest) {
	m.log.Info("quest is now available", "quest", q.Identifier())
	m.pending = remove(m.pending, q)
	m.available = append(m.available, q)
	q.SetStatus(types.StatusAvailable)

	m.notify(q, titleAvailable)
	m.OnQuestStatusChanged(q)
}

func (m *Manager) OnQuestActivation(q quest.Quest) {
	m.log.Info("quest is now active", "quest", q.Identifier())
	m.available = remove(m.available, q)
	m.active = append(m.active, q)
	q.SetStatus(types.StatusActive)

	m.notify(q, titleActivated)
	if m.selected == nil {
		m.SelectQuest(q)
	}
	m.OnQuestStatusChanged(q)
}

func (m *Manager) OnQuestSuccess(q quest.Quest) {
	m.log.Info("quest is now successful", "quest", q.Identifier())
	m.finish(q, types.StatusSuccessful, titleSuccess)
}

func (m *Manager) OnQuestFail(q quest.Quest) {
	m.log.Info("quest is now failed", "quest", q.Identifier())
	m.finish(q, types.StatusFailed, titleFailed)
}

func (m *Manager) OnQuestAbandon(q quest.Quest) {
	m.log.Info("quest is now abandoned", "quest", q.Identifier())
	m.finish(q, types.StatusAbandoned, titleAbandoned)
}

// finish moves an active quest to the old bucket.
func (m *Manager) finish(q quest.Quest, status types.QuestStatus, title string) {
	m.active = remove(m.active, q)
	m.old = append(m.old, q)
	q.SetStatus(status)

	m.notify(q, title)
	if q == m.selected {
		m.AutoSelectQuest()
	}
	m.OnQuestStatusChanged(q)
}

func (m *Manager) notify(q quest.Quest, title string) {
	if m.notifier == nil || q.Category() == types.CategoryTutorial {
		return
	}
	m.notifier.Notify(types.Notification{
		Title:    title,
		Body:     q.Name(),
		Tag:      "quest-" + q.Identifier() + "-status",
		Category: "quest",
		Target:   types.MenuTarget{Menu: "quest", Quest: q.Identifier()},
	})
}
