package models

type DatingProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Bio         string `json:"bio"`
	ImageUrl    string `json:"imageUrl,omitempty"`
	IsMatch     bool   `json:"isMatch"`
	AvatarColor string `json:"avatarColor,omitempty"`
}

// DatingScenario is a named backup of the dating profile deck, restorable
// the same way a chat scenario restores a message history.
type DatingScenario struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Profiles        []*DatingProfile `json:"profiles"`
	ActiveProfileID string           `json:"activeProfileId"`
}

type Theme struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
}

// OverlaySettings drives the full-screen overlays: the dating "it's a match"
// screen and the messenger dissolve screen share the same shape.
type OverlaySettings struct {
	OverlayImage     string `json:"overlayImage,omitempty"`
	OverlayImageSize int    `json:"overlayImageSize,omitempty"`
	OverlayColor     string `json:"overlayColor,omitempty"`
	Text             string `json:"text,omitempty"`
}

func FindDatingProfile(profiles []*DatingProfile, id string) *DatingProfile {
	for _, p := range profiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func FindDatingScenario(scenarios []*DatingScenario, id string) *DatingScenario {
	for _, s := range scenarios {
		if s.ID == id {
			return s
		}
	}
	return nil
}
