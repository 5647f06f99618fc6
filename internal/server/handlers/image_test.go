package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salafuz/admin-panel/internal/server/storage/files"
	"github.com/salafuz/admin-panel/internal/server/storage/sqlite"
	"github.com/salafuz/admin-panel/pkg/api"
)

// pngHeader достаточно для http.DetectContentType
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func setupImageHandler(t *testing.T, maxBytes int64) (*ImageHandler, string) {
	t.Helper()

	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	dir := t.TempDir()
	local, err := files.New(dir)
	require.NoError(t, err)

	return NewImageHandler(setupTestLogger(), s, local, "/api/v1/images/preview/", maxBytes), dir
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImageHandler_UploadPreviewDelete(t *testing.T) {
	h, dir := setupImageHandler(t, 1<<20)

	// 1. Загрузка
	w := httptest.NewRecorder()
	h.Upload(w, uploadRequest(t, "file", "cover.png", pngHeader))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	img := decodeBody[api.Image](t, w)
	assert.NotZero(t, img.ID)
	assert.True(t, strings.HasSuffix(img.Name, ".png"))
	assert.NotEqual(t, "cover.png", img.Name, "stored under a generated name")
	assert.Equal(t, img.Name, img.File)
	assert.Equal(t, "/api/v1/images/preview/"+img.Name, img.URL)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, int64(len(pngHeader)), img.Size)
	assert.FileExists(t, filepath.Join(dir, img.Name))

	// 2. Превью
	req := httptest.NewRequest(http.MethodGet, img.URL, nil)
	req.SetPathValue("name", img.Name)
	w = httptest.NewRecorder()
	h.Preview(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, w.Body.Bytes())

	// 3. Удаление записи вместе с файлом
	id := fmt.Sprint(img.ID)
	w = call(t, h.ForceDelete, http.MethodDelete, "/api/v1/images/delete/"+id, nil, "id", id)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := os.Stat(filepath.Join(dir, img.Name))
	assert.True(t, os.IsNotExist(err), "file should be removed")

	w = call(t, h.ForceDelete, http.MethodDelete, "/api/v1/images/delete/"+id, nil, "id", id)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageHandler_RenameThenPurge(t *testing.T) {
	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	dir := t.TempDir()
	local, err := files.New(dir)
	require.NoError(t, err)

	images := NewImageHandler(setupTestLogger(), s, local, "/api/v1/images/preview/", 1<<20)
	resources := NewResourceHandler(setupTestLogger(), s, DefaultKinds())

	upload := func() api.Image {
		w := httptest.NewRecorder()
		images.Upload(w, uploadRequest(t, "file", "photo.png", pngHeader))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decodeBody[api.Image](t, w)
	}
	a := upload()
	b := upload()

	// 1. Переименовываем A в имя файла B
	idA := fmt.Sprint(a.ID)
	w := call(t, resources.Update, http.MethodPut, "/api/v1/images/"+idA,
		map[string]any{"name": b.Name}, "res", api.ResourceImages, "id", idA)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	renamed := decodeBody[api.Image](t, w)
	assert.Equal(t, b.Name, renamed.Name)
	assert.Equal(t, a.File, renamed.File)
	assert.Equal(t, a.URL, renamed.URL, "url follows the stored file")

	// 2. Ключ файла через patch не меняется
	w = call(t, resources.Update, http.MethodPut, "/api/v1/images/"+idA,
		map[string]any{"file": b.File}, "res", api.ResourceImages, "id", idA)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// 3. Удаление A убирает только файл A
	w = call(t, images.ForceDelete, http.MethodDelete, "/api/v1/images/delete/"+idA, nil, "id", idA)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err = os.Stat(filepath.Join(dir, a.File))
	assert.True(t, os.IsNotExist(err), "file of the purged image should be removed")
	assert.FileExists(t, filepath.Join(dir, b.File), "file of the other image must stay")
}

func TestImageHandler_UploadRejects(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		content   []byte
		wantField string
		wantCode  int
	}{
		{
			name:      "missing file field",
			field:     "image",
			content:   pngHeader,
			wantCode:  http.StatusUnprocessableEntity,
			wantField: "file",
		},
		{
			name:      "not an image",
			field:     "file",
			content:   []byte("#!/bin/sh\necho hi\n"),
			wantCode:  http.StatusUnprocessableEntity,
			wantField: "file",
		},
		{
			name:      "too large",
			field:     "file",
			content:   append(append([]byte{}, pngHeader...), make([]byte, 2048)...),
			wantCode:  http.StatusUnprocessableEntity,
			wantField: "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, dir := setupImageHandler(t, 1024)

			w := httptest.NewRecorder()
			h.Upload(w, uploadRequest(t, tt.field, "upload.png", tt.content))

			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			assert.Contains(t, decodeBody[api.ErrorResponse](t, w).Errors, tt.wantField)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing should be stored")
		})
	}

	t.Run("not multipart", func(t *testing.T) {
		h, _ := setupImageHandler(t, 1024)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/images/upload", strings.NewReader(`{"name":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.Upload(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImageHandler_PreviewNotFound(t *testing.T) {
	h, _ := setupImageHandler(t, 1024)

	for _, name := range []string{"missing.png", "..", "a/b.png"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/images/preview/x", nil)
		req.SetPathValue("name", name)
		w := httptest.NewRecorder()
		h.Preview(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, name)
	}
}
