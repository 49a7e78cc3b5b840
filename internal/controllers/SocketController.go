package controllers

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"stagehand/internal/hub"
	"stagehand/internal/models"
	"stagehand/internal/providers"
	"stagehand/internal/services"
	"stagehand/internal/structures"
)

// SocketController owns the event channel: it upgrades connections, hands
// them to the hub, and routes every inbound control/actor event to its
// mutation handler. The hub serves each new client its init payload.
type SocketController struct {
	logger   providers.Logger
	service  services.DocumentServiceInterface
	hub      *hub.Hub
	metrics  providers.MetricsProviderInterface
	upgrader websocket.Upgrader
	queue    int
}

func NewSocketController(conf *structures.Config, logger providers.Logger, service services.DocumentServiceInterface, h *hub.Hub, metrics providers.MetricsProviderInterface) *SocketController {
	return &SocketController{
		logger:   logger,
		service:  service,
		hub:      h,
		metrics:  metrics,
		upgrader: hub.Upgrader(conf.Socket.ReadBufferSize, conf.Socket.WriteBufferSize),
		queue:    conf.Socket.SendQueueSize,
	}
}

func (sc *SocketController) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := sc.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sc.logger.Warnf(providers.TypeSocket, "Upgrade failed: %s", err)
		return
	}

	sc.hub.ServeConnection(conn, sc, sc.queue)
}

type messagePayload struct {
	ChatID string `json:"chatId"`
	Text   string `json:"text"`
	Sender string `json:"sender,omitempty"`
}

type presetPayload struct {
	ChatID   string `json:"chatId"`
	PresetID string `json:"presetId,omitempty"`
	Text     string `json:"text"`
	Sender   string `json:"sender,omitempty"`
}

type matchMessagePayload struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

type statusPayload struct {
	ChatID string `json:"chatId,omitempty"`
	Text   string `json:"text"`
	Color  string `json:"color"`
}

type scenarioPayload struct {
	ChatID     string `json:"chatId"`
	ScenarioID string `json:"scenarioId,omitempty"`
	Name       string `json:"name,omitempty"`
}

type scenePayload struct {
	SceneID string `json:"sceneId"`
	Name    string `json:"name,omitempty"`
}

// Dispatch implements hub.Dispatcher. Unknown events and payloads that do
// not decode are answered with an error frame to the requester; handler
// errors (missing references) surface the same way and broadcast nothing.
func (sc *SocketController) Dispatch(event string, data json.RawMessage) error {
	if err := sc.dispatch(event, data); err != nil {
		sc.logger.Warnf(providers.TypeSocket, "Event %s rejected: %s", event, err)
		return err
	}
	sc.metrics.IncEventsTotal(event)
	return nil
}

func (sc *SocketController) dispatch(event string, data json.RawMessage) error {
	switch event {

	case services.EventControlCreateChat:
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		sc.service.CreateChat(name)
		return nil

	case services.EventControlSelectChat:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.SelectChat(id)

	case services.EventControlUpdateChat:
		var p struct {
			ChatID string `json:"chatId"`
			Name   string `json:"name"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.UpdateChat(p.ChatID, p.Name)

	case services.EventControlDeleteChat:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.DeleteChat(id)

	case services.EventControlSendMessage:
		var p messagePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		_, err := sc.service.SendMessage(p.ChatID, p.Text, p.Sender)
		return err

	case services.EventActorSendMessage:
		var p messagePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		_, err := sc.service.ActorSendMessage(p.ChatID, p.Text)
		return err

	case services.EventControlTypingStart:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.TypingStart(id)

	case services.EventControlClear:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.ClearChat(id)

	case services.EventControlReset:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.ResetChat(id)

	case services.EventControlSavePreset:
		var p presetPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.SavePreset(p.ChatID, p.Text, p.Sender)

	case services.EventControlUpdatePreset:
		var p presetPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.UpdatePreset(p.ChatID, p.PresetID, p.Text)

	case services.EventControlDeletePreset:
		var p presetPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.DeletePreset(p.ChatID, p.PresetID)

	case services.EventControlUpdateMatchMessage:
		var p matchMessagePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.UpdateMatchMessage(p.ChatID, p.Message)

	case services.EventControlSetStatus:
		var p statusPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.SetStatus(p.ChatID, p.Text, p.Color)

	case services.EventControlAddStatusPreset:
		var p statusPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		sc.service.AddStatusPreset(p.Text, p.Color)
		return nil

	case services.EventControlDeleteStatusPreset:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.DeleteStatusPreset(id)

	case services.EventControlSaveScenario:
		var p scenarioPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		_, err := sc.service.SaveScenario(p.ChatID, p.Name)
		return err

	case services.EventControlLoadScenario:
		var p scenarioPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.LoadScenario(p.ChatID, p.ScenarioID)

	case services.EventControlRenameScenario:
		var p scenarioPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.RenameScenario(p.ChatID, p.ScenarioID, p.Name)

	case services.EventControlDeleteScenario:
		var p scenarioPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.DeleteScenario(p.ChatID, p.ScenarioID)

	case services.EventControlClearAvatar:
		var p services.ClearAvatarRequest
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.ClearAvatar(&p)

	case services.EventControlSwitchApp:
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		sc.service.SwitchApp(name)
		return nil

	case services.EventControlCreateDatingProfile:
		var p models.DatingProfile
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		sc.service.CreateDatingProfile(&p)
		return nil

	case services.EventControlUpdateDatingProfile:
		var p models.DatingProfile
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.UpdateDatingProfile(&p)

	case services.EventControlDeleteDatingProfile:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.DeleteDatingProfile(id)

	case services.EventControlReorderDatingProfiles:
		var profiles []*models.DatingProfile
		if err := json.Unmarshal(data, &profiles); err != nil {
			return err
		}
		sc.service.ReorderDatingProfiles(profiles)
		return nil

	case services.EventControlSetActiveDatingProfile:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.SetActiveDatingProfile(id)

	case services.EventControlSaveDatingScenario:
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		sc.service.SaveDatingScenario(name)
		return nil

	case services.EventControlLoadDatingScenario:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.LoadDatingScenario(id)

	case services.EventControlDeleteDatingScenario:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.DeleteDatingScenario(id)

	case services.EventActorDatingSwipe:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.DatingSwipe(id)

	case services.EventControlUpdateAppName:
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		sc.service.UpdateAppName(name)
		return nil

	case services.EventControlUpdateDatingTheme:
		return sc.patch(data, sc.service.UpdateDatingTheme)
	case services.EventControlUpdateMatchSettings:
		return sc.patch(data, sc.service.UpdateDatingMatchSettings)
	case services.EventControlUpdateMessengerTheme:
		return sc.patch(data, sc.service.UpdateMessengerTheme)
	case services.EventControlUpdateDissolveSettings:
		return sc.patch(data, sc.service.UpdateMessengerDissolveSettings)
	case services.EventControlUpdateVfxSettings:
		return sc.patch(data, sc.service.UpdateVfxSettings)
	case services.EventControlUpdateLockScreenSettings:
		return sc.patch(data, sc.service.UpdateLockScreenSettings)
	case services.EventControlUpdateInstagram:
		return sc.patch(data, sc.service.UpdateInstagram)

	case services.EventControlSaveGlobalScene:
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		sc.service.SaveGlobalScene(name)
		return nil

	case services.EventControlLoadGlobalScene:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.LoadGlobalScene(id)

	case services.EventControlRenameGlobalScene:
		var p scenePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return sc.service.RenameGlobalScene(p.SceneID, p.Name)

	case services.EventControlDeleteGlobalScene:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.DeleteGlobalScene(id)

	case services.EventControlRestoreGlobalScene:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		return sc.service.RestoreGlobalScene(id)

	default:
		return fmt.Errorf("unknown event %q", event)
	}
}

func (sc *SocketController) patch(data json.RawMessage, apply func(map[string]json.RawMessage) error) error {
	var p map[string]json.RawMessage
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	return apply(p)
}
