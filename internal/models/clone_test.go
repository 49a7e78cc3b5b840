package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatClone_Independent(t *testing.T) {
	orig := NewChat("Sarah")
	orig.Messages = append(orig.Messages, &Message{ID: "m2", Text: "hi"})
	orig.Scenarios = append(orig.Scenarios, &Scenario{ID: "s1", Name: "S", Messages: []*Message{{ID: "m3", Text: "x"}}})

	cp := orig.Clone()
	cp.Name = "Other"
	cp.Messages[0].Text = "mutated"
	cp.Presets[0].Text = "mutated"
	cp.Scenarios[0].Messages[0].Text = "mutated"

	assert.Equal(t, "Sarah", orig.Name)
	assert.NotEqual(t, "mutated", orig.Messages[0].Text)
	assert.Equal(t, "Hey! 👋", orig.Presets[0].Text)
	assert.Equal(t, "x", orig.Scenarios[0].Messages[0].Text)
}

func TestStateClone_Independent(t *testing.T) {
	d := DefaultDocument()
	d.InstagramProfiles = []*InstagramProfile{{ID: "p1", GridPhotos: []*GridPhoto{{ID: "g1", Url: "/uploads/a.png"}}}}
	d.DatingProfiles = []*DatingProfile{{ID: "dp1", Name: "Mia"}}

	cp := d.State.Clone()
	cp.Chats[0].Name = "mutated"
	cp.InstagramProfiles[0].GridPhotos[0].Url = "mutated"
	cp.DatingProfiles[0].Name = "mutated"
	cp.VfxSettings.Mode = "blue"
	cp.DatingTheme.Primary = "#mutated"

	assert.Equal(t, "Sarah", d.Chats[0].Name)
	assert.Equal(t, "/uploads/a.png", d.InstagramProfiles[0].GridPhotos[0].Url)
	assert.Equal(t, "Mia", d.DatingProfiles[0].Name)
	assert.Equal(t, "green", d.VfxSettings.Mode)
	assert.NotEqual(t, "#mutated", d.DatingTheme.Primary)
}

func TestDocumentClone_SceneHistoryIndependent(t *testing.T) {
	d := DefaultDocument()
	d.GlobalScenes = []*GlobalScene{{ID: "s1", Name: "scene", State: d.State.Clone()}}
	d.ActiveGlobalSceneID = "s1"

	cp := d.Clone()
	cp.GlobalScenes[0].Name = "mutated"
	cp.GlobalScenes[0].State.Chats[0].Name = "mutated"
	cp.ActiveGlobalSceneID = ""

	assert.Equal(t, "scene", d.GlobalScenes[0].Name)
	assert.Equal(t, "Sarah", d.GlobalScenes[0].State.Chats[0].Name)
	assert.Equal(t, "s1", d.ActiveGlobalSceneID)
}

func TestCloneMessages_EmptyNotNil(t *testing.T) {
	out := CloneMessages(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}
