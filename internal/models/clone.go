package models

// Structural deep copies. Scene save/load and the snapshot handed to each
// new client must never share slices or pointers with the live document.

func (m *Message) Clone() *Message {
	cp := *m
	return &cp
}

func CloneMessages(msgs []*Message) []*Message {
	out := make([]*Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Clone())
	}
	return out
}

func (p *Preset) Clone() *Preset {
	cp := *p
	return &cp
}

func (s *Scenario) Clone() *Scenario {
	return &Scenario{ID: s.ID, Name: s.Name, Messages: CloneMessages(s.Messages)}
}

func (c *Chat) Clone() *Chat {
	cp := *c
	cp.Messages = CloneMessages(c.Messages)
	cp.Presets = make([]*Preset, 0, len(c.Presets))
	for _, p := range c.Presets {
		cp.Presets = append(cp.Presets, p.Clone())
	}
	cp.Scenarios = make([]*Scenario, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		cp.Scenarios = append(cp.Scenarios, s.Clone())
	}
	return &cp
}

func (p *DatingProfile) Clone() *DatingProfile {
	cp := *p
	return &cp
}

func CloneDatingProfiles(profiles []*DatingProfile) []*DatingProfile {
	out := make([]*DatingProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Clone())
	}
	return out
}

func (s *DatingScenario) Clone() *DatingScenario {
	return &DatingScenario{
		ID:              s.ID,
		Name:            s.Name,
		Profiles:        CloneDatingProfiles(s.Profiles),
		ActiveProfileID: s.ActiveProfileID,
	}
}

func (p *InstagramProfile) Clone() *InstagramProfile {
	cp := *p
	cp.GridPhotos = make([]*GridPhoto, 0, len(p.GridPhotos))
	for _, g := range p.GridPhotos {
		gcp := *g
		cp.GridPhotos = append(cp.GridPhotos, &gcp)
	}
	return &cp
}

func cloneTheme(t *Theme) *Theme {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func cloneOverlay(o *OverlaySettings) *OverlaySettings {
	if o == nil {
		return nil
	}
	cp := *o
	return &cp
}

func (s *State) Clone() *State {
	cp := *s

	cp.Chats = make([]*Chat, 0, len(s.Chats))
	for _, c := range s.Chats {
		cp.Chats = append(cp.Chats, c.Clone())
	}

	cp.StatusPresets = make([]*StatusPreset, 0, len(s.StatusPresets))
	for _, p := range s.StatusPresets {
		pcp := *p
		cp.StatusPresets = append(cp.StatusPresets, &pcp)
	}

	cp.DatingProfiles = CloneDatingProfiles(s.DatingProfiles)

	cp.DatingScenarios = make([]*DatingScenario, 0, len(s.DatingScenarios))
	for _, sc := range s.DatingScenarios {
		cp.DatingScenarios = append(cp.DatingScenarios, sc.Clone())
	}

	cp.InstagramProfiles = make([]*InstagramProfile, 0, len(s.InstagramProfiles))
	for _, p := range s.InstagramProfiles {
		cp.InstagramProfiles = append(cp.InstagramProfiles, p.Clone())
	}

	cp.DatingTheme = cloneTheme(s.DatingTheme)
	cp.MessengerTheme = cloneTheme(s.MessengerTheme)
	cp.DatingMatchSettings = cloneOverlay(s.DatingMatchSettings)
	cp.MessengerDissolveSettings = cloneOverlay(s.MessengerDissolveSettings)

	if s.VfxSettings != nil {
		v := *s.VfxSettings
		cp.VfxSettings = &v
	}
	if s.LockScreenSettings != nil {
		l := *s.LockScreenSettings
		cp.LockScreenSettings = &l
	}

	return &cp
}

func (g *GlobalScene) Clone() *GlobalScene {
	cp := *g
	if g.State != nil {
		cp.State = g.State.Clone()
	}
	return &cp
}

func (d *Document) Clone() *Document {
	cp := &Document{
		State:               *d.State.Clone(),
		ActiveGlobalSceneID: d.ActiveGlobalSceneID,
	}
	cp.GlobalScenes = make([]*GlobalScene, 0, len(d.GlobalScenes))
	for _, g := range d.GlobalScenes {
		cp.GlobalScenes = append(cp.GlobalScenes, g.Clone())
	}
	return cp
}
