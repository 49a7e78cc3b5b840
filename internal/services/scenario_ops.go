package services

import (
	"stagehand/internal/models"
)

// SaveScenario snapshots a chat's message history under a name. Leading
// system messages are skipped: the welcome line is reconstructed at load
// time from whatever matchMessage the chat has then.
func (ds *DocumentService) SaveScenario(chatID, name string) (*models.Scenario, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return nil, models.ErrNotFound
	}

	msgs := chat.Messages
	for len(msgs) > 0 && msgs[0].System {
		msgs = msgs[1:]
	}

	scenario := &models.Scenario{
		ID:       models.NewID(),
		Name:     name,
		Messages: models.CloneMessages(msgs),
	}
	chat.Scenarios = append(chat.Scenarios, scenario)
	ds.commit()
	return scenario, nil
}

// LoadScenario replaces the chat's history with a fresh welcome message
// followed by the stored backup. The welcome text is the chat's current
// matchMessage, not the one in effect when the scenario was saved.
func (ds *DocumentService) LoadScenario(chatID, scenarioID string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return models.ErrNotFound
	}
	scenario := findScenario(chat, scenarioID)
	if scenario == nil {
		return models.ErrNotFound
	}

	restored := make([]*models.Message, 0, len(scenario.Messages)+1)
	restored = append(restored, models.SystemMessage(chat.MatchMessage))
	restored = append(restored, models.CloneMessages(scenario.Messages)...)
	chat.Messages = restored

	ds.commit()
	ds.broadcaster.Emit(EventActorReset, chatID)
	return nil
}

func (ds *DocumentService) RenameScenario(chatID, scenarioID, name string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return models.ErrNotFound
	}
	scenario := findScenario(chat, scenarioID)
	if scenario == nil {
		return models.ErrNotFound
	}
	scenario.Name = name
	ds.commit()
	return nil
}

func (ds *DocumentService) DeleteScenario(chatID, scenarioID string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return models.ErrNotFound
	}
	for i, s := range chat.Scenarios {
		if s.ID == scenarioID {
			chat.Scenarios = append(chat.Scenarios[:i], chat.Scenarios[i+1:]...)
			ds.commit()
			return nil
		}
	}
	return models.ErrNotFound
}

func findScenario(chat *models.Chat, id string) *models.Scenario {
	for _, s := range chat.Scenarios {
		if s.ID == id {
			return s
		}
	}
	return nil
}
