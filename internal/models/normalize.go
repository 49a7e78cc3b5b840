package models

// Normalize backfills fields that older persisted documents are missing and
// upgrades legacy shapes. It is idempotent: running it twice yields the same
// document. Called once after every load, before the document goes live.
func (d *Document) Normalize() {
	if d.Chats == nil {
		d.Chats = []*Chat{}
	}
	for _, c := range d.Chats {
		normalizeChat(c)
	}
	if d.ActiveChatID != "" && FindChat(d.Chats, d.ActiveChatID) == nil {
		d.ActiveChatID = ""
	}
	if d.ActiveChatID == "" && len(d.Chats) > 0 {
		d.ActiveChatID = d.Chats[0].ID
	}

	if d.StatusPresets == nil {
		d.StatusPresets = []*StatusPreset{}
	}
	for _, sp := range d.StatusPresets {
		if sp.ID == "" {
			sp.ID = NewID()
		}
	}

	if d.ActiveApp == "" {
		d.ActiveApp = AppMessenger
	}

	if d.DatingProfiles == nil {
		d.DatingProfiles = []*DatingProfile{}
	}
	for _, p := range d.DatingProfiles {
		if p.ID == "" {
			p.ID = NewID()
		}
	}
	if d.DatingScenarios == nil {
		d.DatingScenarios = []*DatingScenario{}
	}
	for _, s := range d.DatingScenarios {
		if s.ID == "" {
			s.ID = NewID()
		}
		if s.Profiles == nil {
			s.Profiles = []*DatingProfile{}
		}
	}
	if d.DatingTheme == nil {
		d.DatingTheme = DefaultTheme()
	}
	if d.DatingMatchSettings == nil {
		d.DatingMatchSettings = &OverlaySettings{Text: "It's a Match!"}
	}
	if d.DatingAppName == "" {
		d.DatingAppName = "Spark"
	}

	if d.MessengerTheme == nil {
		d.MessengerTheme = DefaultTheme()
	}
	if d.MessengerDissolveSettings == nil {
		d.MessengerDissolveSettings = &OverlaySettings{Text: "Match dissolved"}
	}

	if d.VfxSettings == nil {
		d.VfxSettings = DefaultVfxSettings()
	}
	if d.LockScreenSettings == nil {
		d.LockScreenSettings = DefaultLockScreenSettings()
	}

	if d.InstagramProfiles == nil {
		d.InstagramProfiles = []*InstagramProfile{}
	}
	for _, p := range d.InstagramProfiles {
		if p.ID == "" {
			p.ID = NewID()
		}
		if p.GridPhotos == nil {
			p.GridPhotos = []*GridPhoto{}
		}
	}

	if d.GlobalScenes == nil {
		d.GlobalScenes = []*GlobalScene{}
	}
	if d.ActiveGlobalSceneID != "" && FindGlobalScene(d.GlobalScenes, d.ActiveGlobalSceneID) == nil {
		d.ActiveGlobalSceneID = ""
	}
}

func normalizeChat(c *Chat) {
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.MatchMessage == "" {
		c.MatchMessage = DefaultMatchMessage(c.Name)
	}
	if c.AvatarColor == "" {
		c.AvatarColor = RandomGradient()
	}
	if c.Messages == nil {
		c.Messages = []*Message{}
	}
	for _, m := range c.Messages {
		if m.ID == "" {
			m.ID = NewID()
		}
	}
	if c.Presets == nil {
		c.Presets = []*Preset{}
	}
	// Legacy string presets decode with empty id/sender.
	for _, p := range c.Presets {
		if p.ID == "" {
			p.ID = NewID()
		}
		if p.Sender == "" {
			p.Sender = SenderMatch
		}
	}
	if c.Scenarios == nil {
		c.Scenarios = []*Scenario{}
	}
	for _, s := range c.Scenarios {
		if s.ID == "" {
			s.ID = NewID()
		}
		if s.Messages == nil {
			s.Messages = []*Message{}
		}
	}
}
