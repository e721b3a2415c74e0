package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/modelwerk/gltfkit/pkg/gltfio"
)

func TestServeHandler(t *testing.T) {
	doc := validDoc(t)
	report := &Report{File: "asset.gltf", Properties: liveCount(doc)}
	handler := newServeHandler(doc, report, newLogger(&bytes.Buffer{}, log.InfoLevel))

	t.Run("Stats", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var stats serveStats
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		require.Equal(t, 1, stats.Collections["scenes"])
		require.Equal(t, 1, stats.Collections["meshes"])
		require.Positive(t, stats.Links)
	})

	t.Run("Report", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, "asset.gltf", got.File)
	})

	t.Run("Asset", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/asset.gltf", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "model/gltf+json", rec.Header().Get("Content-Type"))

		// The payload must round-trip back into a document.
		roundTrip, err := gltfio.ReadGLTF(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		require.Len(t, roundTrip.Root().ListMeshes(), 1)
	})

	t.Run("Index", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "gltfkit preview")
	})
}
