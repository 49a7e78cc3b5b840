package internal

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagehand/internal/controllers"
	"stagehand/internal/services"
	"stagehand/internal/structures"
	"stagehand/internal/testutil"
)

func TestInitRoutes_RegistersApiRoutes(t *testing.T) {
	conf := &structures.Config{
		Uploads: structures.UploadsConfig{Dir: t.TempDir()},
	}
	svc := services.NewDocumentService(&testutil.MockLogger{}, &testutil.MockPersistence{}, &testutil.MockBroadcaster{}, &testutil.MockArchiver{}, &testutil.MockMetrics{})
	ac := controllers.NewApiController(conf, &testutil.MockLogger{}, svc, testutil.NewMockCache())

	router := InitRoutes(ac, conf)
	routes := router.GetRoutes()

	require.Len(t, routes, 3)

	type key struct {
		method string
		url    string
	}
	seen := make(map[key]bool)
	for _, r := range routes {
		seen[key{r.Method, r.Url}] = true
	}

	assert.True(t, seen[key{http.MethodGet, "/state"}])
	assert.True(t, seen[key{http.MethodPost, "/control/app-name"}])
	assert.True(t, seen[key{http.MethodPost, "/upload"}])
}
