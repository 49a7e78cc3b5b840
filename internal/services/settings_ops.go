package services

import (
	"fmt"
	"stagehand/internal/models"

	json "github.com/goccy/go-json"
)

const (
	PurposeActor           = "actor"
	PurposeChat            = "chat"
	PurposeLockScreenBg    = "lockscreen-bg"
	PurposeInstagramAvatar = "instagram-avatar"
	PurposeInstagramGrid   = "instagram-grid"
	PurposeDatingProfile   = "dating"
)

type ClearAvatarRequest struct {
	Purpose   string `json:"purpose"`
	ChatID    string `json:"chatId,omitempty"`
	ProfileID string `json:"profileId,omitempty"`
	PhotoID   string `json:"photoId,omitempty"`
}

func (ds *DocumentService) UpdateDatingTheme(patch map[string]json.RawMessage) error {
	return ds.mergeSettings(func(d *models.Document) interface{} { return d.DatingTheme }, patch)
}

func (ds *DocumentService) UpdateMessengerTheme(patch map[string]json.RawMessage) error {
	return ds.mergeSettings(func(d *models.Document) interface{} { return d.MessengerTheme }, patch)
}

func (ds *DocumentService) UpdateDatingMatchSettings(patch map[string]json.RawMessage) error {
	return ds.mergeSettings(func(d *models.Document) interface{} { return d.DatingMatchSettings }, patch)
}

func (ds *DocumentService) UpdateMessengerDissolveSettings(patch map[string]json.RawMessage) error {
	return ds.mergeSettings(func(d *models.Document) interface{} { return d.MessengerDissolveSettings }, patch)
}

func (ds *DocumentService) UpdateVfxSettings(patch map[string]json.RawMessage) error {
	return ds.mergeSettings(func(d *models.Document) interface{} { return d.VfxSettings }, patch)
}

func (ds *DocumentService) UpdateLockScreenSettings(patch map[string]json.RawMessage) error {
	return ds.mergeSettings(func(d *models.Document) interface{} { return d.LockScreenSettings }, patch)
}

func (ds *DocumentService) mergeSettings(target func(*models.Document) interface{}, patch map[string]json.RawMessage) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := mergePatch(target(ds.doc), patch); err != nil {
		return err
	}
	ds.commit()
	return nil
}

// UpdateInstagram merges a partial update onto the instagram slice of the
// document: the profile list, the active pointer, or both.
func (ds *DocumentService) UpdateInstagram(patch map[string]json.RawMessage) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	section := struct {
		InstagramProfiles        []*models.InstagramProfile `json:"instagramProfiles"`
		ActiveInstagramProfileID string                     `json:"activeInstagramProfileId"`
	}{ds.doc.InstagramProfiles, ds.doc.ActiveInstagramProfileID}

	if err := mergePatch(&section, patch); err != nil {
		return err
	}

	for _, p := range section.InstagramProfiles {
		if p.ID == "" {
			p.ID = models.NewID()
		}
		if p.GridPhotos == nil {
			p.GridPhotos = []*models.GridPhoto{}
		}
	}
	ds.doc.InstagramProfiles = section.InstagramProfiles
	ds.doc.ActiveInstagramProfileID = section.ActiveInstagramProfileID
	ds.commit()
	return nil
}

func (ds *DocumentService) SwitchApp(name string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.doc.ActiveApp = name
	ds.commit()
}

// ClearAvatar nulls out an image reference. The underlying uploaded file is
// left alone; cleanup happens when an upload supersedes it.
func (ds *DocumentService) ClearAvatar(req *ClearAvatarRequest) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	switch req.Purpose {
	case PurposeActor:
		ds.doc.ActorAvatar = ""
	case PurposeChat:
		chat := models.FindChat(ds.doc.Chats, req.ChatID)
		if chat == nil {
			return models.ErrNotFound
		}
		chat.AvatarImage = ""
	case PurposeLockScreenBg:
		ds.doc.LockScreenSettings.BackgroundImage = ""
	case PurposeInstagramAvatar:
		profile := models.FindInstagramProfile(ds.doc.InstagramProfiles, req.ProfileID)
		if profile == nil {
			return models.ErrNotFound
		}
		profile.Avatar = ""
	case PurposeInstagramGrid:
		profile := models.FindInstagramProfile(ds.doc.InstagramProfiles, req.ProfileID)
		if profile == nil {
			return models.ErrNotFound
		}
		for i, g := range profile.GridPhotos {
			if g.ID == req.PhotoID {
				profile.GridPhotos = append(profile.GridPhotos[:i], profile.GridPhotos[i+1:]...)
				ds.commit()
				return nil
			}
		}
		return models.ErrNotFound
	default:
		return fmt.Errorf("unknown avatar purpose %q", req.Purpose)
	}
	ds.commit()
	return nil
}

// ApplyUpload points the target reference at a freshly uploaded file and
// returns the url it replaced, so the caller can delete the superseded file.
func (ds *DocumentService) ApplyUpload(purpose, chatID, profileID, url string) (string, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	var superseded string
	switch purpose {
	case PurposeActor:
		superseded = ds.doc.ActorAvatar
		ds.doc.ActorAvatar = url
	case PurposeChat:
		chat := models.FindChat(ds.doc.Chats, chatID)
		if chat == nil {
			return "", models.ErrNotFound
		}
		superseded = chat.AvatarImage
		chat.AvatarImage = url
	case PurposeLockScreenBg:
		superseded = ds.doc.LockScreenSettings.BackgroundImage
		ds.doc.LockScreenSettings.BackgroundImage = url
	case PurposeInstagramAvatar:
		profile := models.FindInstagramProfile(ds.doc.InstagramProfiles, profileID)
		if profile == nil {
			return "", models.ErrNotFound
		}
		superseded = profile.Avatar
		profile.Avatar = url
	case PurposeInstagramGrid:
		profile := models.FindInstagramProfile(ds.doc.InstagramProfiles, profileID)
		if profile == nil {
			return "", models.ErrNotFound
		}
		profile.GridPhotos = append(profile.GridPhotos, &models.GridPhoto{ID: models.NewID(), Url: url})
	case PurposeDatingProfile:
		profile := models.FindDatingProfile(ds.doc.DatingProfiles, profileID)
		if profile == nil {
			return "", models.ErrNotFound
		}
		superseded = profile.ImageUrl
		profile.ImageUrl = url
	default:
		return "", fmt.Errorf("unknown upload purpose %q", purpose)
	}
	ds.commit()
	return superseded, nil
}
