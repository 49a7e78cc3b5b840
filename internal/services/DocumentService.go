package services

import (
	"stagehand/internal/models"
	"stagehand/internal/providers"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// PersistenceInterface is the document's durability point. Save is called
// synchronously after every mutation; a failure is logged and the in-memory
// mutation stands.
type PersistenceInterface interface {
	Load() (*models.Document, error)
	Save(doc *models.Document) error
}

// BroadcasterInterface fans the full document out to every connected client
// and carries the narrowly-scoped notification events.
type BroadcasterInterface interface {
	BroadcastDocument(doc *models.Document)
	Emit(event string, payload interface{})
}

// ArchiverInterface receives deleted global scenes so they can be parked on
// disk instead of destroyed outright, and hands them back on restore.
type ArchiverInterface interface {
	Park(scene *models.GlobalScene)
	Restore(id string) (*models.GlobalScene, error)
}

type DocumentServiceInterface interface {
	Restore() error
	Persist() error
	Snapshot() *models.Document
	Revision() uint64
	ChatCount() int
	SceneCount() int

	CreateChat(name string) *models.Chat
	UpdateChat(chatID, name string) error
	DeleteChat(chatID string) error
	SelectChat(chatID string) error
	SendMessage(chatID, text, sender string) (*models.Message, error)
	ActorSendMessage(chatID, text string) (*models.Message, error)
	TypingStart(chatID string) error
	ClearChat(chatID string) error
	ResetChat(chatID string) error

	SavePreset(chatID, text, sender string) error
	UpdatePreset(chatID, presetID, text string) error
	DeletePreset(chatID, presetID string) error
	UpdateMatchMessage(chatID, message string) error
	SetStatus(chatID, text, color string) error
	AddStatusPreset(text, color string) *models.StatusPreset
	DeleteStatusPreset(id string) error

	SaveScenario(chatID, name string) (*models.Scenario, error)
	LoadScenario(chatID, scenarioID string) error
	RenameScenario(chatID, scenarioID, name string) error
	DeleteScenario(chatID, scenarioID string) error

	CreateDatingProfile(p *models.DatingProfile) *models.DatingProfile
	UpdateDatingProfile(p *models.DatingProfile) error
	DeleteDatingProfile(id string) error
	ReorderDatingProfiles(profiles []*models.DatingProfile)
	SetActiveDatingProfile(id string) error
	DatingSwipe(nextID string) error
	SaveDatingScenario(name string) *models.DatingScenario
	LoadDatingScenario(id string) error
	DeleteDatingScenario(id string) error
	UpdateAppName(name string)

	UpdateDatingTheme(patch map[string]json.RawMessage) error
	UpdateMessengerTheme(patch map[string]json.RawMessage) error
	UpdateDatingMatchSettings(patch map[string]json.RawMessage) error
	UpdateMessengerDissolveSettings(patch map[string]json.RawMessage) error
	UpdateVfxSettings(patch map[string]json.RawMessage) error
	UpdateLockScreenSettings(patch map[string]json.RawMessage) error
	UpdateInstagram(patch map[string]json.RawMessage) error
	SwitchApp(name string)
	ClearAvatar(req *ClearAvatarRequest) error
	ApplyUpload(purpose, chatID, profileID, url string) (superseded string, err error)

	SaveGlobalScene(name string) *models.GlobalScene
	LoadGlobalScene(id string) error
	RenameGlobalScene(id, name string) error
	DeleteGlobalScene(id string) error
	RestoreGlobalScene(id string) error
}

// DocumentService owns the single live document. Every mutation runs under
// one mutex, making last-write-wins ordering explicit: mutate, persist,
// broadcast, in that order, before the next event is applied.
type DocumentService struct {
	mu          sync.Mutex
	doc         *models.Document
	revision    uint64
	logger      providers.Logger
	persistence PersistenceInterface
	broadcaster BroadcasterInterface
	archiver    ArchiverInterface
	metrics     providers.MetricsProviderInterface
}

func NewDocumentService(logger providers.Logger, persistence PersistenceInterface, broadcaster BroadcasterInterface, archiver ArchiverInterface, metrics providers.MetricsProviderInterface) DocumentServiceInterface {
	return &DocumentService{
		doc:         models.DefaultDocument(),
		logger:      logger,
		persistence: persistence,
		broadcaster: broadcaster,
		archiver:    archiver,
		metrics:     metrics,
	}
}

// Restore loads the persisted document. A missing or unreadable file leaves
// the seeded defaults in place; the process never refuses to start over a
// bad database.
func (ds *DocumentService) Restore() error {
	doc, err := ds.persistence.Load()
	if err != nil {
		return err
	}
	doc.Normalize()

	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.doc = doc
	return nil
}

func (ds *DocumentService) Persist() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.persistence.Save(ds.doc)
}

func (ds *DocumentService) Snapshot() *models.Document {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.doc.Clone()
}

func (ds *DocumentService) Revision() uint64 {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.revision
}

func (ds *DocumentService) ChatCount() int {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return len(ds.doc.Chats)
}

func (ds *DocumentService) SceneCount() int {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return len(ds.doc.GlobalScenes)
}

// commit is the tail of every successful mutation: persist the document and
// re-send it to everyone. Called with ds.mu held. A failed write is logged
// and does not roll anything back; the next mutation writes again.
func (ds *DocumentService) commit() {
	ds.revision++

	start := time.Now()
	if err := ds.persistence.Save(ds.doc); err != nil {
		ds.logger.Errorf(providers.TypeApp, "Failed to persist document: %s", err)
	}
	ds.metrics.ObservePersistenceDuration(time.Since(start))
	ds.metrics.SetChatsTotal(len(ds.doc.Chats))
	ds.metrics.SetScenesTotal(len(ds.doc.GlobalScenes))

	ds.broadcaster.BroadcastDocument(ds.doc.Clone())
}

// mergePatch shallow-merges a partial JSON object onto dst. Unknown keys are
// dropped by the re-decode; values are not validated.
func mergePatch(dst interface{}, patch map[string]json.RawMessage) error {
	current, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(current, &fields); err != nil {
		return err
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage, len(patch))
	}
	for k, v := range patch {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, dst)
}
