package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/questmgr/types"
)

func loadActive(t *testing.T, fx *fixture, names ...string) []*fakeQuest {
	t.Helper()
	data := types.QuestSave{AvailableQuests: []string{"open"}}
	for _, n := range names {
		data.QuestProgresses = append(data.QuestProgresses, types.QuestProgressSave{QuestIdentifier: n})
	}
	fx.manager.Load(data)
	var out []*fakeQuest
	for _, n := range names {
		q := newFake(n)
		fx.manager.AddQuest(q)
		out = append(out, q)
	}
	return out
}

func TestSelectQuest_Switches(t *testing.T) {
	fx := newFixture(t)
	q := loadActive(t, fx, "a", "b")
	m := fx.manager

	m.SelectQuest(q[0])
	assert.Same(t, q[0], m.SelectedQuest())
	assert.True(t, q[0].tracked)

	m.SelectQuest(q[1])
	assert.Same(t, q[1], m.SelectedQuest())
	assert.False(t, q[0].tracked)
	assert.True(t, q[1].tracked)

	m.SelectQuest(q[1])
	assert.Zero(t, q[1].stopped, "reselecting keeps tracking")
	assert.True(t, q[1].tracked)
}

func TestSelectQuest_InactiveIsIgnored(t *testing.T) {
	fx := newFixture(t)
	q := loadActive(t, fx, "a")
	m := fx.manager
	open := newFake("open")
	m.AddQuest(open)
	m.SelectQuest(q[0])

	m.SelectQuest(open)

	assert.Same(t, q[0], m.SelectedQuest())
	assert.False(t, open.tracked)
	assert.Contains(t, fx.logs.String(), "the quest to select must be active")
}

func TestAutoSelectQuest(t *testing.T) {
	fx := newFixture(t)
	q := loadActive(t, fx, "a", "b")
	m := fx.manager

	m.SelectQuest(q[1])
	m.AutoSelectQuest()
	assert.Same(t, q[0], m.SelectedQuest(), "first active quest wins")

	m.active = remove(m.active, q[1])
	m.AutoSelectQuest()
	assert.Nil(t, m.SelectedQuest(), "a single active quest is not auto-selected")
	assert.False(t, q[0].tracked)
}

func TestFinishSelected_ReselectsAmongRemaining(t *testing.T) {
	fx := newFixture(t)
	q := loadActive(t, fx, "a", "b", "c")
	m := fx.manager

	m.SelectQuest(q[1])
	m.OnQuestSuccess(q[1])
	assert.Same(t, q[0], m.SelectedQuest())

	m.OnQuestFail(q[0])
	assert.Nil(t, m.SelectedQuest(), "one remaining active quest leaves nothing selected")
	assert.Equal(t, []string{"c"}, ids(m.ActiveQuests()))
}

func TestFinishUnselected_KeepsSelection(t *testing.T) {
	fx := newFixture(t)
	q := loadActive(t, fx, "a", "b")
	m := fx.manager

	m.SelectQuest(q[0])
	m.OnQuestAbandon(q[1])

	assert.Same(t, q[0], m.SelectedQuest())
}

func TestActivation_SelectsWhenNothingSelected(t *testing.T) {
	fx := newFixture(t, courierDefinition())
	m := fx.manager
	m.Load(types.QuestSave{})
	assert.Nil(t, m.SelectedQuest())

	courier := m.FindQuest("courier")
	m.AcceptQuest(courier)

	assert.Equal(t, courier, m.SelectedQuest())
	assert.True(t, courier.IsTracked())
}
