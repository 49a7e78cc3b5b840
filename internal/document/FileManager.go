package document

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"stagehand/internal/models"
	"stagehand/internal/providers"
	"stagehand/internal/structures"
)

// FileManager reads and writes the single document file. The file is plain
// JSON; every save goes through a temp file, fsync and rename so a crash
// mid-write never leaves a truncated database behind.
type FileManager struct {
	conf   *structures.Config
	logger providers.Logger
}

func NewFileManager(conf *structures.Config, logger providers.Logger) *FileManager {
	return &FileManager{conf: conf, logger: logger}
}

// Load reads the persisted document. A missing file seeds and writes the
// default document. A malformed file falls back to defaults without
// rewriting it: the corrupted bytes stay on disk until the next natural
// save overwrites them.
func (f *FileManager) Load() (*models.Document, error) {
	path := f.conf.Persistence.FilePath

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			doc := models.DefaultDocument()
			if werr := f.Save(doc); werr != nil {
				f.logger.Errorf(providers.TypeApp, "Failed to seed initial document: %s", werr)
			}
			return doc, nil
		}
		return models.DefaultDocument(), fmt.Errorf("failed to read document file: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		f.logger.Errorf(providers.TypeApp, "Malformed document file %s, falling back to defaults: %s", path, err)
		return models.DefaultDocument(), nil
	}
	return &doc, nil
}

func (f *FileManager) Save(doc *models.Document) error {
	fileName := f.conf.Persistence.FilePath

	if dir := filepath.Dir(fileName); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(jsonData)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
