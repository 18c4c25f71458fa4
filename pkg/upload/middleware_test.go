package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/places/api/http/presenter"
	"github.com/artem13815/places/pkg/apperr"
)

func multipartBody(t *testing.T, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "Empire State Building"))
	if contentType != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="photo.bin"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func newApp(t *testing.T, maxBytes int64, handler fiber.Handler) (*fiber.App, *Store) {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "images"), maxBytes)
	require.NoError(t, err)
	app := fiber.New(fiber.Config{ErrorHandler: presenter.ErrorHandler})
	app.Post("/upload", Single(store, "image"), handler)
	return app, store
}

func storedFiles(t *testing.T, store *Store) []string {
	t.Helper()
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSingle_StoresAllowedTypes(t *testing.T) {
	for contentType, ext := range mimeExtensions {
		t.Run(contentType, func(t *testing.T) {
			var gotPath string
			app, store := newApp(t, 0, func(c *fiber.Ctx) error {
				gotPath = ImagePath(c)
				return c.SendStatus(http.StatusCreated)
			})
			body, ct := multipartBody(t, contentType, []byte("fake image bytes"))
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", ct)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, http.StatusCreated, resp.StatusCode)
			assert.True(t, strings.HasSuffix(gotPath, "."+ext), gotPath)
			data, err := os.ReadFile(gotPath)
			require.NoError(t, err)
			assert.Equal(t, "fake image bytes", string(data))
			assert.Len(t, storedFiles(t, store), 1)
		})
	}
}

func TestSingle_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int
		maxBytes    int64
		wantMsg     string
	}{
		{name: "gif", contentType: "image/gif", size: 10, wantMsg: "Invalid mime type!"},
		{name: "octet stream", contentType: "application/octet-stream", size: 10, wantMsg: "Invalid mime type!"},
		{name: "missing file", contentType: "", wantMsg: "An image is required."},
		{name: "too large", contentType: "image/png", size: 2048, maxBytes: 1024, wantMsg: "File too large."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			app, store := newApp(t, tt.maxBytes, func(c *fiber.Ctx) error {
				reached = true
				return nil
			})
			body, ct := multipartBody(t, tt.contentType, bytes.Repeat([]byte("x"), tt.size))
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", ct)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			raw, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(raw), tt.wantMsg)
			assert.False(t, reached)
			assert.Empty(t, storedFiles(t, store))
		})
	}
}

func TestSingle_RemovesFileWhenHandlerFails(t *testing.T) {
	app, store := newApp(t, 0, func(c *fiber.Ctx) error {
		return apperr.Internal("Creating place failed, please try again.", fmt.Errorf("tx aborted"))
	})
	body, ct := multipartBody(t, "image/png", []byte("png"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, storedFiles(t, store))
}

func TestStore_RemoveMissingIsNoop(t *testing.T) {
	store, err := NewStore(t.TempDir(), 0)
	require.NoError(t, err)

	assert.NoError(t, store.Remove(filepath.Join(store.Dir(), "gone.png")))
}
