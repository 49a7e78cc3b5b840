package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"stagehand/internal/hub"
	"stagehand/internal/services"
)

type HealthController struct {
	service   services.DocumentServiceInterface
	hub       *hub.Hub
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Revision      uint64  `json:"revision"`
	Chats         int     `json:"chats"`
	Clients       int     `json:"clients"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Revision:      hc.service.Revision(),
		Chats:         hc.service.ChatCount(),
		Clients:       hc.hub.ClientCount(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.DocumentServiceInterface, h *hub.Hub) *HealthController {
	return &HealthController{
		service:   service,
		hub:       h,
		startTime: time.Now(),
	}
}
