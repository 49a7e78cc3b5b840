package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagehand/internal/models"
	"stagehand/internal/services"
	"stagehand/internal/structures"
	"stagehand/internal/testutil"
)

type apiFixture struct {
	ac    *ApiController
	svc   services.DocumentServiceInterface
	cache *testutil.MockCache
	dir   string
}

func newApiFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := &testutil.MockLogger{}
	svc := services.NewDocumentService(logger, &testutil.MockPersistence{}, &testutil.MockBroadcaster{}, &testutil.MockArchiver{}, &testutil.MockMetrics{})
	cache := testutil.NewMockCache()
	dir := t.TempDir()
	conf := &structures.Config{
		Uploads: structures.UploadsConfig{Dir: dir, MaxSizeMB: 10},
	}

	return &apiFixture{
		ac:    NewApiController(conf, logger, svc, cache),
		svc:   svc,
		cache: cache,
		dir:   dir,
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (f *apiFixture) upload(t *testing.T, fields map[string]string, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, fields, fileName, content)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	f.ac.Upload(rec, req)
	return rec
}

func (f *apiFixture) uploadedFiles(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestGetStateCacheMiss(t *testing.T) {
	f := newApiFixture(t)

	rec := httptest.NewRecorder()
	f.ac.GetState(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Chats, 1)
	assert.Equal(t, "Sarah", doc.Chats[0].Name)

	_, ok := f.cache.Get("state:0")
	assert.True(t, ok)
}

func TestGetStateCacheHit(t *testing.T) {
	f := newApiFixture(t)
	f.cache.Set("state:0", []byte(`{"cached":true}`))

	rec := httptest.NewRecorder()
	f.ac.GetState(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cached":true}`, rec.Body.String())
}

func TestGetStateNewRevisionBypassesOldEntry(t *testing.T) {
	f := newApiFixture(t)

	rec := httptest.NewRecorder()
	f.ac.GetState(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	f.svc.UpdateAppName("Ember")

	rec = httptest.NewRecorder()
	f.ac.GetState(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Ember", doc.DatingAppName)
}

func TestUpdateAppName(t *testing.T) {
	f := newApiFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/control/app-name", strings.NewReader(`{"name":"Ember"}`))
	rec := httptest.NewRecorder()
	f.ac.UpdateAppName(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ember", f.svc.Snapshot().DatingAppName)
}

func TestUpdateAppNameBadJSON(t *testing.T) {
	f := newApiFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/control/app-name", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	f.ac.UpdateAppName(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadActorAvatar(t *testing.T) {
	f := newApiFixture(t)

	rec := f.upload(t, map[string]string{"purpose": "actor"}, "photo.PNG", []byte("fake png bytes"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	url := resp["url"]
	require.True(t, strings.HasPrefix(url, "/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	assert.Equal(t, url, f.svc.Snapshot().ActorAvatar)

	stored, err := os.ReadFile(filepath.Join(f.dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), stored)
}

func TestUploadMissingImage(t *testing.T) {
	f := newApiFixture(t)

	rec := f.upload(t, map[string]string{"purpose": "actor"}, "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadMissingPurpose(t *testing.T) {
	f := newApiFixture(t)

	rec := f.upload(t, nil, "photo.png", []byte("x"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.uploadedFiles(t))
}

func TestUploadUnknownChat(t *testing.T) {
	f := newApiFixture(t)

	rec := f.upload(t, map[string]string{"purpose": "chat", "chatId": "missing"}, "photo.png", []byte("x"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, f.uploadedFiles(t))
}

func TestUploadUnknownPurpose(t *testing.T) {
	f := newApiFixture(t)

	rec := f.upload(t, map[string]string{"purpose": "hologram"}, "photo.png", []byte("x"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.uploadedFiles(t))
}

func TestUploadRemovesSupersededFile(t *testing.T) {
	f := newApiFixture(t)

	rec := f.upload(t, map[string]string{"purpose": "actor"}, "one.png", []byte("first"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.uploadedFiles(t), 1)

	rec = f.upload(t, map[string]string{"purpose": "actor"}, "two.png", []byte("second"))
	require.Equal(t, http.StatusOK, rec.Code)

	files := f.uploadedFiles(t)
	require.Len(t, files, 1)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/uploads/"+files[0], resp["url"])
}

func TestUploadDatingProfileImage(t *testing.T) {
	f := newApiFixture(t)
	p := f.svc.CreateDatingProfile(&models.DatingProfile{Name: "Mia"})

	rec := f.upload(t, map[string]string{"purpose": "dating", "profileId": p.ID}, "mia.png", []byte("png"))

	require.Equal(t, http.StatusOK, rec.Code)
	got := models.FindDatingProfile(f.svc.Snapshot().DatingProfiles, p.ID)
	require.NotNil(t, got)
	assert.NotEmpty(t, got.ImageUrl)
}

func TestUploadChatAvatar(t *testing.T) {
	f := newApiFixture(t)
	chatID := f.svc.Snapshot().Chats[0].ID

	rec := f.upload(t, map[string]string{"purpose": "chat", "chatId": chatID}, "face.jpg", []byte("jpeg"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, f.svc.Snapshot().Chats[0].AvatarImage)
}
