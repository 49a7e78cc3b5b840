package services

import (
	"time"

	"stagehand/internal/models"
)

// SaveGlobalScene checkpoints the entire live state under a name and marks
// the new scene active. Scenes capture State only, so the scene list and the
// active pointer are never part of the payload.
func (ds *DocumentService) SaveGlobalScene(name string) *models.GlobalScene {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	scene := &models.GlobalScene{
		ID:        models.NewID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		State:     ds.doc.State.Clone(),
	}
	ds.doc.GlobalScenes = append(ds.doc.GlobalScenes, scene)
	ds.doc.ActiveGlobalSceneID = scene.ID
	ds.commit()
	return scene
}

// LoadGlobalScene replaces the live state wholesale with the scene's
// payload. The scene history and the active pointer live outside State, so
// loading an older scene never loses the scenes saved since.
func (ds *DocumentService) LoadGlobalScene(id string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	scene := models.FindGlobalScene(ds.doc.GlobalScenes, id)
	if scene == nil {
		return models.ErrNotFound
	}
	ds.doc.State = *scene.State.Clone()
	ds.doc.ActiveGlobalSceneID = scene.ID
	ds.commit()
	ds.broadcaster.Emit(EventActorReset, "")
	return nil
}

func (ds *DocumentService) RenameGlobalScene(id, name string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	scene := models.FindGlobalScene(ds.doc.GlobalScenes, id)
	if scene == nil {
		return models.ErrNotFound
	}
	scene.Name = name
	ds.commit()
	return nil
}

// DeleteGlobalScene removes a scene from the list, clearing the active
// pointer if it pointed there. The payload is parked in the archive rather
// than destroyed.
func (ds *DocumentService) DeleteGlobalScene(id string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for i, s := range ds.doc.GlobalScenes {
		if s.ID == id {
			ds.doc.GlobalScenes = append(ds.doc.GlobalScenes[:i], ds.doc.GlobalScenes[i+1:]...)
			if ds.doc.ActiveGlobalSceneID == id {
				ds.doc.ActiveGlobalSceneID = ""
			}
			ds.archiver.Park(s)
			ds.commit()
			return nil
		}
	}
	return models.ErrNotFound
}

// RestoreGlobalScene brings a deleted scene back from the archive into the
// scene list. It does not load the scene; the operator picks it up from the
// list like any other.
func (ds *DocumentService) RestoreGlobalScene(id string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if models.FindGlobalScene(ds.doc.GlobalScenes, id) != nil {
		return models.ErrNotFound
	}
	scene, err := ds.archiver.Restore(id)
	if err != nil {
		return models.ErrNotFound
	}
	ds.doc.GlobalScenes = append(ds.doc.GlobalScenes, scene)
	ds.commit()
	return nil
}
