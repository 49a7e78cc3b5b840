package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagehand/internal/models"
	"stagehand/internal/testutil"
)

type serviceFixture struct {
	svc         *DocumentService
	persistence *testutil.MockPersistence
	broadcaster *testutil.MockBroadcaster
	archiver    *testutil.MockArchiver
	metrics     *testutil.MockMetrics
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		persistence: &testutil.MockPersistence{},
		broadcaster: &testutil.MockBroadcaster{},
		archiver:    &testutil.MockArchiver{},
		metrics:     &testutil.MockMetrics{},
	}
	svc := NewDocumentService(&testutil.MockLogger{}, f.persistence, f.broadcaster, f.archiver, f.metrics)
	f.svc = svc.(*DocumentService)
	return f
}

func (f *serviceFixture) firstChat() *models.Chat {
	return f.svc.Snapshot().Chats[0]
}

func TestCreateChat_AppendsAndBroadcasts(t *testing.T) {
	f := newFixture(t)

	chat := f.svc.CreateChat("Alex")

	require.NotNil(t, chat)
	assert.NotEmpty(t, chat.ID)
	assert.Equal(t, "Alex", chat.Name)
	assert.Equal(t, "You matched with Alex! 💖", chat.MatchMessage)
	require.Len(t, chat.Messages, 1)
	assert.True(t, chat.Messages[0].System)

	snap := f.svc.Snapshot()
	assert.Len(t, snap.Chats, 2)
	assert.Equal(t, 1, f.persistence.SaveCount())
	assert.Equal(t, 1, f.broadcaster.BroadcastCount())
}

func TestCreateChat_EmptyNameDefaults(t *testing.T) {
	f := newFixture(t)

	chat := f.svc.CreateChat("")
	assert.Equal(t, "New Match", chat.Name)
}

func TestUpdateChat_RenamesOnly(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	err := f.svc.UpdateChat(chat.ID, "Sara")
	require.NoError(t, err)

	got := f.firstChat()
	assert.Equal(t, "Sara", got.Name)
	// matchMessage keeps the original name
	assert.Equal(t, "You matched with Sarah! 💖", got.MatchMessage)
}

func TestUpdateChat_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.UpdateChat("missing", "x")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 0, f.persistence.SaveCount())
	assert.Equal(t, 0, f.broadcaster.BroadcastCount())
}

func TestDeleteChat_ActiveFallsToFirstRemaining(t *testing.T) {
	f := newFixture(t)
	second := f.svc.CreateChat("Alex")
	first := f.firstChat()

	require.NoError(t, f.svc.SelectChat(first.ID))
	require.NoError(t, f.svc.DeleteChat(first.ID))

	snap := f.svc.Snapshot()
	require.Len(t, snap.Chats, 1)
	assert.Equal(t, second.ID, snap.ActiveChatID)
}

func TestDeleteChat_LastChatClearsActive(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	require.NoError(t, f.svc.DeleteChat(chat.ID))

	snap := f.svc.Snapshot()
	assert.Empty(t, snap.Chats)
	assert.Equal(t, "", snap.ActiveChatID)
}

func TestDeleteChat_InactiveKeepsActive(t *testing.T) {
	f := newFixture(t)
	first := f.firstChat()
	second := f.svc.CreateChat("Alex")

	require.NoError(t, f.svc.SelectChat(first.ID))
	require.NoError(t, f.svc.DeleteChat(second.ID))

	snap := f.svc.Snapshot()
	assert.Equal(t, first.ID, snap.ActiveChatID)
}

func TestSelectChat_EmitsActorSwitch(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	require.NoError(t, f.svc.SelectChat(chat.ID))

	assert.Equal(t, chat.ID, f.svc.Snapshot().ActiveChatID)
	assert.Contains(t, f.broadcaster.EventNames(), EventActorSwitchChat)
}

func TestSelectChat_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.SelectChat("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, f.broadcaster.EventNames())
}

func TestSendMessage_DefaultsSenderToMatch(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	msg, err := f.svc.SendMessage(chat.ID, "hello", "")
	require.NoError(t, err)
	assert.Equal(t, models.SenderMatch, msg.Sender)
	assert.NotEmpty(t, msg.ID)
	assert.NotZero(t, msg.Ts)

	got := f.firstChat()
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "hello", got.Messages[1].Text)
}

func TestSendMessage_NotifiesActor(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	msg, err := f.svc.SendMessage(chat.ID, "hi", models.SenderMatch)
	require.NoError(t, err)

	names := f.broadcaster.EventNames()
	require.Contains(t, names, EventActorReceiveMessage)

	var notif *MessageNotification
	for _, e := range f.broadcaster.Events {
		if e.Event == EventActorReceiveMessage {
			notif = e.Payload.(*MessageNotification)
		}
	}
	require.NotNil(t, notif)
	assert.Equal(t, chat.ID, notif.ChatID)
	assert.Equal(t, msg.Text, notif.Msg.Text)
}

func TestActorSendMessage_SenderMeNoNotification(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	msg, err := f.svc.ActorSendMessage(chat.ID, "sup")
	require.NoError(t, err)
	assert.Equal(t, models.SenderMe, msg.Sender)
	assert.NotContains(t, f.broadcaster.EventNames(), EventActorReceiveMessage)
}

func TestSendMessage_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SendMessage("missing", "x", "")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 0, f.persistence.SaveCount())
}

func TestTypingStart_BroadcastOnlyNoPersist(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	require.NoError(t, f.svc.TypingStart(chat.ID))

	assert.Contains(t, f.broadcaster.EventNames(), EventActorTypingStart)
	assert.Equal(t, 0, f.persistence.SaveCount())
	assert.Equal(t, 0, f.broadcaster.BroadcastCount())
}

func TestClearChat_LeavesSingleSystemMessage(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()
	_, err := f.svc.SendMessage(chat.ID, "one", "")
	require.NoError(t, err)
	_, err = f.svc.ActorSendMessage(chat.ID, "two")
	require.NoError(t, err)

	require.NoError(t, f.svc.ClearChat(chat.ID))

	got := f.firstChat()
	require.Len(t, got.Messages, 1)
	assert.True(t, got.Messages[0].System)
	assert.Equal(t, got.MatchMessage, got.Messages[0].Text)
	assert.Contains(t, f.broadcaster.EventNames(), EventActorClear)
}

func TestClearChat_UsesUpdatedMatchMessage(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	require.NoError(t, f.svc.UpdateMatchMessage(chat.ID, "Custom welcome"))
	require.NoError(t, f.svc.ClearChat(chat.ID))

	got := f.firstChat()
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "Custom welcome", got.Messages[0].Text)
}

func TestResetChat_EmitsReset(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	require.NoError(t, f.svc.ResetChat(chat.ID))

	got := f.firstChat()
	require.Len(t, got.Messages, 1)
	assert.True(t, got.Messages[0].System)
	assert.Contains(t, f.broadcaster.EventNames(), EventActorReset)
	assert.NotContains(t, f.broadcaster.EventNames(), EventActorClear)
}

func TestPresets_SaveUpdateDelete(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	require.NoError(t, f.svc.SavePreset(chat.ID, "brb", ""))

	got := f.firstChat()
	require.Len(t, got.Presets, 2)
	added := got.Presets[1]
	assert.Equal(t, "brb", added.Text)
	assert.Equal(t, models.SenderMatch, added.Sender)

	require.NoError(t, f.svc.UpdatePreset(chat.ID, added.ID, "back soon"))
	got = f.firstChat()
	assert.Equal(t, "back soon", got.Presets[1].Text)

	require.NoError(t, f.svc.DeletePreset(chat.ID, added.ID))
	got = f.firstChat()
	assert.Len(t, got.Presets, 1)
}

func TestUpdatePreset_NotFound(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	err := f.svc.UpdatePreset(chat.ID, "missing", "x")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	f := newFixture(t)
	chat := f.firstChat()

	require.NoError(t, f.svc.SetStatus(chat.ID, "online", "#00ff00"))

	got := f.firstChat()
	assert.Equal(t, "online", got.Status)
	assert.Equal(t, "#00ff00", got.StatusColor)
}

func TestStatusPresets_AddAndDelete(t *testing.T) {
	f := newFixture(t)

	preset := f.svc.AddStatusPreset("at the gym", "#ff0000")
	require.NotEmpty(t, preset.ID)
	assert.Len(t, f.svc.Snapshot().StatusPresets, 1)

	require.NoError(t, f.svc.DeleteStatusPreset(preset.ID))
	assert.Empty(t, f.svc.Snapshot().StatusPresets)

	err := f.svc.DeleteStatusPreset(preset.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMutation_BroadcastMatchesSnapshot(t *testing.T) {
	f := newFixture(t)

	f.svc.CreateChat("Alex")

	last := f.broadcaster.LastDocument()
	require.NotNil(t, last)
	assert.Len(t, last.Chats, 2)
	assert.Equal(t, f.persistence.SaveCount(), f.broadcaster.BroadcastCount())
}

func TestMutation_SaveFailureKeepsStateAndBroadcasts(t *testing.T) {
	f := newFixture(t)
	f.persistence.SaveErr = assert.AnError

	f.svc.CreateChat("Alex")

	assert.Len(t, f.svc.Snapshot().Chats, 2)
	assert.Equal(t, 1, f.broadcaster.BroadcastCount())
}

func TestRevision_IncrementsPerMutation(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, uint64(0), f.svc.Revision())

	f.svc.CreateChat("a")
	f.svc.CreateChat("b")

	assert.Equal(t, uint64(2), f.svc.Revision())
}
