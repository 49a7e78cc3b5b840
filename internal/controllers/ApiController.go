package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"stagehand/internal/models"
	"stagehand/internal/providers"
	"stagehand/internal/services"
	"stagehand/internal/structures"
)

const defaultMaxUploadMB = 10

// ApiController is the plain request/response surface next to the event
// channel: document polling, the app-name setting and image uploads. All of
// it reads and writes the same DocumentService the socket events do.
type ApiController struct {
	logger  providers.Logger
	service services.DocumentServiceInterface
	cache   providers.CacheProviderInterface
	uploads structures.UploadsConfig
}

func NewApiController(conf *structures.Config, logger providers.Logger, service services.DocumentServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		uploads: conf.Uploads,
	}
}

// GetState serves the full document for clients polling instead of holding
// a socket. Cached per revision: a key is only ever written once, so a hit
// can never be stale.
func (ac *ApiController) GetState(w http.ResponseWriter, r *http.Request) {
	cacheKey := fmt.Sprintf("state:%d", ac.service.Revision())

	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSON(w, data)
		return
	}

	gson, err := json.Marshal(ac.service.Snapshot())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.cache.Set(cacheKey, gson)
	writeJSON(w, gson)
}

// UpdateAppName updates the dating app display name outside the event
// channel. It goes through the same service, so socket clients see the
// change on the next broadcast like any other mutation.
func (ac *ApiController) UpdateAppName(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.service.UpdateAppName(payload.Name)
	w.WriteHeader(http.StatusOK)
}

// Upload accepts a multipart image, stores it under a fresh name and points
// the purpose's reference field at it. The file the reference used to point
// at is deleted best-effort. This is the single path that surfaces errors
// to the user as HTTP responses.
func (ac *ApiController) Upload(w http.ResponseWriter, r *http.Request) {
	maxMB := ac.uploads.MaxSizeMB
	if maxMB <= 0 {
		maxMB = defaultMaxUploadMB
	}
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxMB)<<20)

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Bad Request: missing image", http.StatusBadRequest)
		return
	}
	defer file.Close()

	purpose := r.FormValue("purpose")
	if purpose == "" {
		http.Error(w, "Bad Request: missing purpose", http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(ac.uploads.Dir, 0o755); err != nil {
		ac.logger.Errorf(providers.TypePost, "Failed to create uploads dir: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	name := models.NewID() + strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(ac.uploads.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Failed to create upload file: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		ac.logger.Errorf(providers.TypePost, "Failed to store upload: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	dst.Close()

	url := "/uploads/" + name
	superseded, err := ac.service.ApplyUpload(purpose, r.FormValue("chatId"), r.FormValue("profileId"), url)
	if err != nil {
		os.Remove(path)
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		return
	}

	ac.removeSuperseded(superseded)

	resp, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, resp)
}

// removeSuperseded deletes a previously uploaded file once no reference
// points at it anymore. Only files under the uploads dir are touched.
func (ac *ApiController) removeSuperseded(url string) {
	const prefix = "/uploads/"
	if !strings.HasPrefix(url, prefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(url, prefix))
	if err := os.Remove(filepath.Join(ac.uploads.Dir, name)); err != nil && !os.IsNotExist(err) {
		ac.logger.Warnf(providers.TypePost, "Failed to remove superseded upload %s: %s", name, err)
	}
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
