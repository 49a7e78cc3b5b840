package services

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagehand/internal/models"
	"stagehand/internal/testutil"
)

func TestRestore_ReplacesDocumentNormalized(t *testing.T) {
	f := newFixture(t)
	loaded := &models.Document{
		State: models.State{
			Chats: []*models.Chat{{ID: "c1", Name: "Old"}},
		},
	}
	f.persistence.LoadDoc = loaded

	require.NoError(t, f.svc.Restore())

	snap := f.svc.Snapshot()
	require.Len(t, snap.Chats, 1)
	assert.Equal(t, "c1", snap.Chats[0].ID)
	assert.Equal(t, "c1", snap.ActiveChatID, "normalize defaults active chat")
	assert.NotNil(t, snap.VfxSettings, "normalize backfills settings")
}

func TestRestore_LoadErrorKeepsDefaults(t *testing.T) {
	f := newFixture(t)
	f.persistence.LoadErr = assert.AnError

	err := f.svc.Restore()
	assert.Error(t, err)

	snap := f.svc.Snapshot()
	require.Len(t, snap.Chats, 1)
	assert.Equal(t, "Sarah", snap.Chats[0].Name)
}

func TestPersist_WritesCurrentDocument(t *testing.T) {
	f := newFixture(t)
	f.svc.CreateChat("Alex")
	before := f.persistence.SaveCount()

	require.NoError(t, f.svc.Persist())

	assert.Equal(t, before+1, f.persistence.SaveCount())
	assert.Len(t, f.persistence.LastSave.Chats, 2)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	f := newFixture(t)

	snap := f.svc.Snapshot()
	snap.Chats[0].Name = "mutated"
	snap.Chats = nil

	got := f.svc.Snapshot()
	require.Len(t, got.Chats, 1)
	assert.Equal(t, "Sarah", got.Chats[0].Name)
}

func TestBroadcastDocument_IsDeepCopy(t *testing.T) {
	f := newFixture(t)
	f.svc.CreateChat("Alex")

	sent := f.broadcaster.LastDocument()
	sent.Chats[0].Name = "mutated"

	assert.Equal(t, "Sarah", f.svc.Snapshot().Chats[0].Name)
}

func TestCounts(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 1, f.svc.ChatCount())
	assert.Equal(t, 0, f.svc.SceneCount())

	f.svc.CreateChat("Alex")
	f.svc.SaveGlobalScene("s")

	assert.Equal(t, 2, f.svc.ChatCount())
	assert.Equal(t, 1, f.svc.SceneCount())
	assert.Equal(t, 2, f.metrics.ChatsGauge)
	assert.Equal(t, 1, f.metrics.ScenesGauge)
}

func TestMergePatch_OverwritesOnlyGivenKeys(t *testing.T) {
	theme := &models.Theme{Primary: "#111111", Background: "#222222"}

	err := mergePatch(theme, map[string]json.RawMessage{
		"primary": json.RawMessage(`"#333333"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "#333333", theme.Primary)
	assert.Equal(t, "#222222", theme.Background)
}

func TestMergePatch_UnknownKeysIgnored(t *testing.T) {
	theme := &models.Theme{Primary: "#111111"}

	err := mergePatch(theme, map[string]json.RawMessage{
		"nope": json.RawMessage(`"x"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "#111111", theme.Primary)
}

func TestCommit_PersistObservedInMetrics(t *testing.T) {
	f := newFixture(t)

	f.svc.CreateChat("Alex")

	assert.Equal(t, 1, f.metrics.PersistObs)
}

func TestNewDocumentService_SeedsDefaults(t *testing.T) {
	svc := NewDocumentService(&testutil.MockLogger{}, &testutil.MockPersistence{}, &testutil.MockBroadcaster{}, &testutil.MockArchiver{}, &testutil.MockMetrics{})

	snap := svc.Snapshot()
	require.Len(t, snap.Chats, 1)
	assert.Equal(t, models.AppMessenger, snap.ActiveApp)
	assert.Equal(t, "Spark", snap.DatingAppName)
}
