package services

import (
	"stagehand/internal/models"
)

func (ds *DocumentService) CreateDatingProfile(p *models.DatingProfile) *models.DatingProfile {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	profile := p.Clone()
	if profile.ID == "" {
		profile.ID = models.NewID()
	}
	if profile.AvatarColor == "" {
		profile.AvatarColor = models.RandomGradient()
	}
	ds.doc.DatingProfiles = append(ds.doc.DatingProfiles, profile)
	if ds.doc.ActiveDatingProfileID == "" {
		ds.doc.ActiveDatingProfileID = profile.ID
	}
	ds.commit()
	return profile
}

func (ds *DocumentService) UpdateDatingProfile(p *models.DatingProfile) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	existing := models.FindDatingProfile(ds.doc.DatingProfiles, p.ID)
	if existing == nil {
		return models.ErrNotFound
	}
	clone := p.Clone()
	if clone.AvatarColor == "" {
		clone.AvatarColor = existing.AvatarColor
	}
	*existing = *clone
	ds.commit()
	return nil
}

func (ds *DocumentService) DeleteDatingProfile(id string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	idx := -1
	for i, p := range ds.doc.DatingProfiles {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.ErrNotFound
	}
	ds.doc.DatingProfiles = append(ds.doc.DatingProfiles[:idx], ds.doc.DatingProfiles[idx+1:]...)

	if ds.doc.ActiveDatingProfileID == id {
		if len(ds.doc.DatingProfiles) > 0 {
			ds.doc.ActiveDatingProfileID = ds.doc.DatingProfiles[0].ID
		} else {
			ds.doc.ActiveDatingProfileID = ""
		}
	}
	ds.commit()
	return nil
}

// ReorderDatingProfiles stores the submitted order verbatim. Order controls
// "next profile" advancement, and the client owns it; concurrent reorders
// are last-write-wins like everything else.
func (ds *DocumentService) ReorderDatingProfiles(profiles []*models.DatingProfile) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	reordered := make([]*models.DatingProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.ID == "" {
			p.ID = models.NewID()
		}
		reordered = append(reordered, p.Clone())
	}
	ds.doc.DatingProfiles = reordered

	if models.FindDatingProfile(ds.doc.DatingProfiles, ds.doc.ActiveDatingProfileID) == nil {
		ds.doc.ActiveDatingProfileID = ""
		if len(ds.doc.DatingProfiles) > 0 {
			ds.doc.ActiveDatingProfileID = ds.doc.DatingProfiles[0].ID
		}
	}
	ds.commit()
}

func (ds *DocumentService) SetActiveDatingProfile(id string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if models.FindDatingProfile(ds.doc.DatingProfiles, id) == nil {
		return models.ErrNotFound
	}
	ds.doc.ActiveDatingProfileID = id
	ds.commit()
	return nil
}

// DatingSwipe is the actor-initiated advancement to the next profile. The
// next id is computed client-side from the current ordering.
func (ds *DocumentService) DatingSwipe(nextID string) error {
	return ds.SetActiveDatingProfile(nextID)
}

// SaveDatingScenario snapshots the current profile deck under a name, the
// same way a chat scenario backs up a message history.
func (ds *DocumentService) SaveDatingScenario(name string) *models.DatingScenario {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	scenario := &models.DatingScenario{
		ID:              models.NewID(),
		Name:            name,
		Profiles:        models.CloneDatingProfiles(ds.doc.DatingProfiles),
		ActiveProfileID: ds.doc.ActiveDatingProfileID,
	}
	ds.doc.DatingScenarios = append(ds.doc.DatingScenarios, scenario)
	ds.commit()
	return scenario
}

// LoadDatingScenario replaces the live profile deck with the stored one. If
// the stored active profile is gone from the deck, the first profile wins.
func (ds *DocumentService) LoadDatingScenario(id string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	scenario := models.FindDatingScenario(ds.doc.DatingScenarios, id)
	if scenario == nil {
		return models.ErrNotFound
	}

	ds.doc.DatingProfiles = models.CloneDatingProfiles(scenario.Profiles)
	ds.doc.ActiveDatingProfileID = scenario.ActiveProfileID
	if models.FindDatingProfile(ds.doc.DatingProfiles, ds.doc.ActiveDatingProfileID) == nil {
		ds.doc.ActiveDatingProfileID = ""
		if len(ds.doc.DatingProfiles) > 0 {
			ds.doc.ActiveDatingProfileID = ds.doc.DatingProfiles[0].ID
		}
	}
	ds.commit()
	return nil
}

func (ds *DocumentService) DeleteDatingScenario(id string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for i, s := range ds.doc.DatingScenarios {
		if s.ID == id {
			ds.doc.DatingScenarios = append(ds.doc.DatingScenarios[:i], ds.doc.DatingScenarios[i+1:]...)
			ds.commit()
			return nil
		}
	}
	return models.ErrNotFound
}

func (ds *DocumentService) UpdateAppName(name string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.doc.DatingAppName = name
	ds.commit()
}
