package services

import (
	"stagehand/internal/models"
)

func (ds *DocumentService) CreateChat(name string) *models.Chat {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.NewChat(name)
	ds.doc.Chats = append(ds.doc.Chats, chat)
	ds.commit()
	return chat
}

func (ds *DocumentService) UpdateChat(chatID, name string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return models.ErrNotFound
	}
	chat.Name = name
	ds.commit()
	return nil
}

// DeleteChat removes a chat. If the deleted chat was active, the first
// remaining chat becomes active, or none if the list is now empty.
func (ds *DocumentService) DeleteChat(chatID string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	idx := -1
	for i, c := range ds.doc.Chats {
		if c.ID == chatID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.ErrNotFound
	}
	ds.doc.Chats = append(ds.doc.Chats[:idx], ds.doc.Chats[idx+1:]...)

	if ds.doc.ActiveChatID == chatID {
		if len(ds.doc.Chats) > 0 {
			ds.doc.ActiveChatID = ds.doc.Chats[0].ID
		} else {
			ds.doc.ActiveChatID = ""
		}
	}
	ds.commit()
	return nil
}

func (ds *DocumentService) SelectChat(chatID string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if models.FindChat(ds.doc.Chats, chatID) == nil {
		return models.ErrNotFound
	}
	ds.doc.ActiveChatID = chatID
	ds.commit()
	ds.broadcaster.Emit(EventActorSwitchChat, chatID)
	return nil
}

func (ds *DocumentService) SendMessage(chatID, text, sender string) (*models.Message, error) {
	if sender == "" {
		sender = models.SenderMatch
	}
	return ds.appendMessage(chatID, text, sender, true)
}

func (ds *DocumentService) ActorSendMessage(chatID, text string) (*models.Message, error) {
	return ds.appendMessage(chatID, text, models.SenderMe, false)
}

func (ds *DocumentService) appendMessage(chatID, text, sender string, notifyActor bool) (*models.Message, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return nil, models.ErrNotFound
	}
	msg := &models.Message{
		ID:     models.NewID(),
		Text:   text,
		Sender: sender,
		Ts:     models.NowMillis(),
	}
	chat.Messages = append(chat.Messages, msg)
	ds.commit()
	if notifyActor {
		ds.broadcaster.Emit(EventActorReceiveMessage, &MessageNotification{ChatID: chatID, Msg: msg.Clone()})
	}
	return msg, nil
}

type MessageNotification struct {
	ChatID string          `json:"chatId"`
	Msg    *models.Message `json:"msg"`
}

// TypingStart is fire-and-forget: broadcast only, never persisted. The
// indicator decay is a client-side concern.
func (ds *DocumentService) TypingStart(chatID string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if models.FindChat(ds.doc.Chats, chatID) == nil {
		return models.ErrNotFound
	}
	ds.broadcaster.Emit(EventActorTypingStart, chatID)
	return nil
}

// ClearChat drops the history down to a single system message built from the
// chat's configured matchMessage.
func (ds *DocumentService) ClearChat(chatID string) error {
	return ds.clearChat(chatID, EventActorClear)
}

// ResetChat behaves identically to ClearChat; it survives as a separate
// event because actor views react to the two notifications differently.
func (ds *DocumentService) ResetChat(chatID string) error {
	return ds.clearChat(chatID, EventActorReset)
}

func (ds *DocumentService) clearChat(chatID, notify string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return models.ErrNotFound
	}
	chat.Messages = []*models.Message{models.SystemMessage(chat.MatchMessage)}
	ds.commit()
	ds.broadcaster.Emit(notify, chatID)
	return nil
}

func (ds *DocumentService) SavePreset(chatID, text, sender string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return models.ErrNotFound
	}
	if sender == "" {
		sender = models.SenderMatch
	}
	chat.Presets = append(chat.Presets, &models.Preset{ID: models.NewID(), Text: text, Sender: sender})
	ds.commit()
	return nil
}

func (ds *DocumentService) UpdatePreset(chatID, presetID, text string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return models.ErrNotFound
	}
	for _, p := range chat.Presets {
		if p.ID == presetID {
			p.Text = text
			ds.commit()
			return nil
		}
	}
	return models.ErrNotFound
}

func (ds *DocumentService) DeletePreset(chatID, presetID string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return models.ErrNotFound
	}
	for i, p := range chat.Presets {
		if p.ID == presetID {
			chat.Presets = append(chat.Presets[:i], chat.Presets[i+1:]...)
			ds.commit()
			return nil
		}
	}
	return models.ErrNotFound
}

// UpdateMatchMessage changes the welcome text going forward: the stored
// history keeps whatever system message it already has, but every later
// clear or scenario load builds from the new text.
func (ds *DocumentService) UpdateMatchMessage(chatID, message string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return models.ErrNotFound
	}
	chat.MatchMessage = message
	ds.commit()
	return nil
}

func (ds *DocumentService) SetStatus(chatID, text, color string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	chat := models.FindChat(ds.doc.Chats, chatID)
	if chat == nil {
		return models.ErrNotFound
	}
	chat.Status = text
	chat.StatusColor = color
	ds.commit()
	return nil
}

func (ds *DocumentService) AddStatusPreset(text, color string) *models.StatusPreset {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	preset := &models.StatusPreset{ID: models.NewID(), Text: text, Color: color}
	ds.doc.StatusPresets = append(ds.doc.StatusPresets, preset)
	ds.commit()
	return preset
}

func (ds *DocumentService) DeleteStatusPreset(id string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for i, p := range ds.doc.StatusPresets {
		if p.ID == id {
			ds.doc.StatusPresets = append(ds.doc.StatusPresets[:i], ds.doc.StatusPresets[i+1:]...)
			ds.commit()
			return nil
		}
	}
	return models.ErrNotFound
}
