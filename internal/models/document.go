package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned by mutation handlers when the referenced entity
// does not exist. The document is left untouched and nothing is broadcast.
var ErrNotFound = errors.New("not found")

const (
	AppMessenger  = "messenger"
	AppDating     = "dating"
	AppInstagram  = "instagram"
	AppLockScreen = "lockscreen"
	AppVfx        = "vfx"
)

// State holds everything a global scene checkpoints: the whole live document
// except the scene list itself and the active-scene pointer. Keeping those
// two outside State makes snapshot capture structural — no field stripping
// on save, no splicing on load.
type State struct {
	Chats         []*Chat         `json:"chats"`
	ActiveChatID  string          `json:"activeChatId"`
	StatusPresets []*StatusPreset `json:"statusPresets"`

	ActorAvatar      string `json:"actorAvatar,omitempty"`
	ActorAvatarColor string `json:"actorAvatarColor,omitempty"`
	ActiveApp        string `json:"activeApp"`

	DatingProfiles        []*DatingProfile  `json:"datingProfiles"`
	ActiveDatingProfileID string            `json:"activeDatingProfileId"`
	DatingScenarios       []*DatingScenario `json:"datingScenarios"`
	DatingTheme           *Theme            `json:"datingTheme"`
	DatingMatchSettings   *OverlaySettings  `json:"datingMatchSettings"`
	DatingAppName         string            `json:"datingAppName"`

	MessengerTheme            *Theme           `json:"messengerTheme"`
	MessengerDissolveSettings *OverlaySettings `json:"messengerDissolveSettings"`

	VfxSettings        *VfxSettings        `json:"vfxSettings"`
	LockScreenSettings *LockScreenSettings `json:"lockScreenSettings"`

	InstagramProfiles        []*InstagramProfile `json:"instagramProfiles"`
	ActiveInstagramProfileID string              `json:"activeInstagramProfileId"`
}

// GlobalScene is a named full-state snapshot.
type GlobalScene struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	State     *State    `json:"state"`
}

// Document is the single root object: the live state plus the scene history.
// State is embedded so the persisted JSON stays flat, matching what every
// client reads.
type Document struct {
	State
	GlobalScenes       []*GlobalScene `json:"globalScenes"`
	ActiveGlobalSceneID string        `json:"activeGlobalSceneId"`
}

func FindGlobalScene(scenes []*GlobalScene, id string) *GlobalScene {
	for _, s := range scenes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// DefaultDocument seeds the initial state used on first boot and as the
// fallback when the persisted file is unreadable.
func DefaultDocument() *Document {
	chat := NewChat("Sarah")
	return &Document{
		State: State{
			Chats:         []*Chat{chat},
			ActiveChatID:  chat.ID,
			StatusPresets: []*StatusPreset{},
			ActiveApp:     AppMessenger,

			DatingProfiles:      []*DatingProfile{},
			DatingScenarios:     []*DatingScenario{},
			DatingTheme:         DefaultTheme(),
			DatingMatchSettings: &OverlaySettings{Text: "It's a Match!"},
			DatingAppName:       "Spark",

			MessengerTheme:            DefaultTheme(),
			MessengerDissolveSettings: &OverlaySettings{Text: "Match dissolved"},

			VfxSettings:        DefaultVfxSettings(),
			LockScreenSettings: DefaultLockScreenSettings(),

			InstagramProfiles: []*InstagramProfile{},
		},
		GlobalScenes: []*GlobalScene{},
	}
}
