// Package save implements JSON serialization and deserialization of the
// quest manager snapshot and the world state its conditions consult.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/questmgr/types"
)

// FormatVersion is the current save format version.
const FormatVersion = "2"

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version string          `json:"version"`
	Quests  types.QuestSave `json:"quests"`
	World   types.WorldSave `json:"world"`
}

// Save serializes a snapshot and the world it was taken in to JSON bytes.
func Save(snapshot *types.QuestSave, world types.WorldSave, version string) ([]byte, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("save: nil snapshot")
	}
	data := SaveData{
		Version: version,
		Quests:  *snapshot,
		World:   world,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("load save: %w", err)
	}
	normalize(&sd.Quests)
	if sd.World.VisitedSectors == nil {
		sd.World.VisitedSectors = []string{}
	}
	if sd.World.FlownShips == nil {
		sd.World.FlownShips = []string{}
	}
	return &sd, nil
}

// normalize ensures slices are never nil after load.
func normalize(q *types.QuestSave) {
	if q.QuestProgresses == nil {
		q.QuestProgresses = []types.QuestProgressSave{}
	}
	for i := range q.QuestProgresses {
		p := &q.QuestProgresses[i]
		if p.SuccessfulSteps == nil {
			p.SuccessfulSteps = []string{}
		}
		if p.CurrentStepProgress == nil {
			p.CurrentStepProgress = []types.ConditionSave{}
		}
	}
	if q.SuccessfulQuests == nil {
		q.SuccessfulQuests = []string{}
	}
	if q.AbandonedQuests == nil {
		q.AbandonedQuests = []string{}
	}
	if q.FailedQuests == nil {
		q.FailedQuests = []string{}
	}
	if q.AvailableQuests == nil {
		q.AvailableQuests = []string{}
	}
	if q.Generator.GeneratedQuests == nil {
		q.Generator.GeneratedQuests = []types.GeneratedQuestSave{}
	}
}
