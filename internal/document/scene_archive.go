package document

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"stagehand/internal/document/interfaces"
	"stagehand/internal/models"
	"stagehand/internal/providers"
	"stagehand/internal/structures"
)

const archiveExt = ".scene.zst"

// SceneArchive parks deleted global scenes on disk, compressed, so an
// operator deleting the wrong scene has a recovery window. Files older than
// the configured TTL are pruned. With no archive dir configured the archive
// is disabled and deletes are final.
type SceneArchive struct {
	mu         sync.Mutex
	dir        string
	ttl        time.Duration
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewSceneArchive(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *SceneArchive {
	return &SceneArchive{
		dir:        conf.SceneArchive.Dir,
		ttl:        conf.SceneArchive.TTL,
		compressor: compressor,
		logger:     logger,
	}
}

// Park writes the scene to the archive. Best effort: failures are logged,
// never propagated — the delete already happened.
func (sa *SceneArchive) Park(scene *models.GlobalScene) {
	if sa.dir == "" {
		return
	}
	sa.mu.Lock()
	defer sa.mu.Unlock()

	if err := os.MkdirAll(sa.dir, 0o755); err != nil {
		sa.logger.Errorf(providers.TypeApp, "Failed to create scene archive dir: %s", err)
		return
	}

	jsonData, err := json.Marshal(scene)
	if err != nil {
		sa.logger.Errorf(providers.TypeApp, "Failed to marshal archived scene %s: %s", scene.ID, err)
		return
	}
	data, err := sa.compressor.Compress(jsonData)
	if err != nil {
		sa.logger.Errorf(providers.TypeApp, "Failed to compress archived scene %s: %s", scene.ID, err)
		return
	}

	path := filepath.Join(sa.dir, scene.ID+archiveExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		sa.logger.Errorf(providers.TypeApp, "Failed to write archived scene %s: %s", scene.ID, err)
	}
}

// Restore reads a parked scene back by id and removes its archive file, so
// the same file cannot be restored twice.
func (sa *SceneArchive) Restore(id string) (*models.GlobalScene, error) {
	if sa.dir == "" || id == "" || strings.ContainsAny(id, `/\`) {
		return nil, os.ErrNotExist
	}
	sa.mu.Lock()
	defer sa.mu.Unlock()

	path := filepath.Join(sa.dir, id+archiveExt)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jsonData, err := sa.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}
	var scene models.GlobalScene
	if err := json.Unmarshal(jsonData, &scene); err != nil {
		return nil, err
	}

	if err := os.Remove(path); err != nil {
		sa.logger.Errorf(providers.TypeApp, "Failed to remove restored scene file %s: %s", path, err)
	}
	return &scene, nil
}

// Prune deletes archived scenes whose files are older than the TTL.
// Returns the number of files removed.
func (sa *SceneArchive) Prune() int {
	if sa.dir == "" || sa.ttl <= 0 {
		return 0
	}
	sa.mu.Lock()
	defer sa.mu.Unlock()

	entries, err := os.ReadDir(sa.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			sa.logger.Errorf(providers.TypeApp, "Failed to read scene archive dir: %s", err)
		}
		return 0
	}

	cutoff := time.Now().Add(-sa.ttl)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), archiveExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(sa.dir, e.Name())); err != nil {
				sa.logger.Errorf(providers.TypeApp, "Failed to prune archived scene %s: %s", e.Name(), err)
				continue
			}
			removed++
		}
	}
	return removed
}
