package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/salafuz/admin-panel/internal/models"
	"github.com/salafuz/admin-panel/internal/server/storage"
	"github.com/salafuz/admin-panel/pkg/api"
)

// allowedImageTypes - MIME типы, которые принимает загрузка, и расширение файла для каждого
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageHandler обрабатывает загрузку и превью изображений
type ImageHandler struct {
	responder
	records    storage.ResourceStorage
	files      storage.FileStorage
	previewURL string
	maxBytes   int64
}

// NewImageHandler создает handler изображений.
// previewURL - префикс публичного адреса превью, например /api/v1/images/preview/
func NewImageHandler(logger *slog.Logger, records storage.ResourceStorage, files storage.FileStorage, previewURL string, maxBytes int64) *ImageHandler {
	return &ImageHandler{
		responder:  responder{logger: logger},
		records:    records,
		files:      files,
		previewURL: previewURL,
		maxBytes:   maxBytes,
	}
}

// Upload обрабатывает POST /api/v1/images/upload (multipart, поле "file")
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+(1<<20))
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		h.sendError(w, "failed to parse multipart form", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.sendValidation(w, fieldError("file", "is required"))
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		h.sendValidation(w, fieldError("file", "is too large"))
		return
	}

	// 1. Тип определяем по содержимому, заголовку клиента не доверяем
	buffered := bufio.NewReader(file)
	head, _ := buffered.Peek(512)
	mimeType := http.DetectContentType(head)
	ext, ok := allowedImageTypes[mimeType]
	if !ok {
		h.sendValidation(w, fieldError("file", "must be a jpeg, png, gif or webp image"))
		return
	}

	// 2. Сохраняем под случайным именем
	name := uuid.NewString() + ext
	size, err := h.files.Save(ctx, name, buffered)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save upload", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// 3. Запись в коллекции images
	attrs, err := json.Marshal(map[string]any{
		"name":          name,
		models.FileAttr: name,
		"url":           h.previewURL + url.PathEscape(name),
		"mime_type":     mimeType,
		"size":          size,
	})
	if err != nil {
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	rec := &models.Record{Kind: api.ResourceImages, Name: name, Attributes: attrs}
	if err := h.records.CreateRecord(ctx, rec); err != nil {
		h.logger.ErrorContext(ctx, "failed to create image record", slog.Any("error", err))
		_ = h.files.Delete(ctx, name)
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "image uploaded",
		slog.Int64("id", rec.ID),
		slog.String("name", name),
		slog.Int64("size", size))

	doc, err := rec.Document()
	if err != nil {
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.sendJSON(w, doc, http.StatusCreated)
}

// Preview обрабатывает GET /api/v1/images/preview/{name}
func (h *ImageHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	f, err := h.files.Open(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			h.sendError(w, "image not found", http.StatusNotFound)
			return
		}
		h.logger.WarnContext(ctx, "failed to open image", slog.String("name", name), slog.Any("error", err))
		h.sendError(w, "image not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, name, time.Time{}, f)
}

// ForceDelete обрабатывает DELETE /api/v1/images/delete/{id}
// Удаляет запись и файл. Файл ищется по атрибуту file: name можно переименовать через PUT.
func (h *ImageHandler) ForceDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(r.PathValue("id"))
	if !ok {
		h.sendError(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.records.GetRecord(ctx, api.ResourceImages, id)
	if err == nil {
		err = h.records.ForceDeleteRecord(ctx, api.ResourceImages, id)
	}
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			h.sendError(w, "not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete image", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var file string
	if found, err := rec.Attr(models.FileAttr, &file); err != nil || !found || file == "" {
		h.logger.WarnContext(ctx, "image record has no file key", slog.Int64("id", id), slog.Any("error", err))
	} else if err := h.files.Delete(ctx, file); err != nil {
		h.logger.WarnContext(ctx, "image file left on disk", slog.String("file", file), slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "image deleted permanently", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}
