package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/salafuz/admin-panel/internal/models"
	"github.com/salafuz/admin-panel/internal/pagination"
	"github.com/salafuz/admin-panel/internal/server/storage"
	"github.com/salafuz/admin-panel/internal/slug"
	"github.com/salafuz/admin-panel/internal/validation"
	"github.com/salafuz/admin-panel/pkg/api"
)

// maxBodyBytes ограничивает JSON тело запросов на создание и изменение
const maxBodyBytes = 1 << 20

// errUnknownKind коллекция не найдена
var errUnknownKind = errors.New("unknown resource")

// ResourceHandler обслуживает CRUD для всех коллекций.
// Коллекция берется из path value {res}, id - из {id}.
type ResourceHandler struct {
	responder
	store storage.ResourceStorage
	kinds map[string]Kind
}

// NewResourceHandler создает handler ресурсов
func NewResourceHandler(logger *slog.Logger, store storage.ResourceStorage, kinds map[string]Kind) *ResourceHandler {
	return &ResourceHandler{
		responder: responder{logger: logger},
		store:     store,
		kinds:     kinds,
	}
}

// List обрабатывает GET /api/v1/{res}
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListDeleted обрабатывает GET /api/v1/{res}/deleted
func (h *ResourceHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *ResourceHandler) list(w http.ResponseWriter, r *http.Request, deleted bool) {
	ctx := r.Context()

	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	page := pagination.FromRequest(r)
	q := r.URL.Query()
	filter := models.ListFilter{
		Kind:      kind.Name,
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		Sort:      q.Get("sort"),
		Direction: q.Get("direction"),
		Limit:     page.PerPage,
		Offset:    page.Offset,
		Deleted:   deleted,
	}

	records, total, err := h.store.ListRecords(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list records", slog.String("kind", kind.Name), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	docs := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		doc, err := rec.Document()
		if err != nil {
			h.logger.ErrorContext(ctx, "broken record", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		docs = append(docs, doc)
	}

	h.sendJSON(w, api.ListResponse[map[string]any]{
		Data:    docs,
		Total:   total,
		Page:    page.Page,
		PerPage: page.PerPage,
	}, http.StatusOK)
}

// Get обрабатывает GET /api/v1/{res}/{id}
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}

	rec, ok := h.live(w, r, kind.Name, id)
	if !ok {
		return
	}
	h.sendRecord(w, r, rec, http.StatusOK)
}

// Create обрабатывает POST /api/v1/{res}
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, ok := h.kind(w, r)
	if !ok {
		return
	}
	if !kind.creatable {
		h.sendError(w, fmt.Sprintf("%s are created by upload", kind.Name), http.StatusMethodNotAllowed)
		return
	}

	patch, ok := h.decode(w, r, kind, true)
	if !ok {
		return
	}

	rec := &models.Record{Kind: kind.Name}
	if err := h.apply(ctx, kind, rec, patch, true); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.store.CreateRecord(ctx, rec); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "record created", slog.String("kind", kind.Name), slog.Int64("id", rec.ID))
	h.sendRecord(w, r, rec, http.StatusCreated)
}

// Update обрабатывает PUT /api/v1/{res}/{id}
// Частичное обновление: меняются только переданные поля
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, ok := h.kind(w, r)
	if !ok {
		return
	}
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}

	patch, ok := h.decode(w, r, kind, false)
	if !ok {
		return
	}

	rec, ok := h.live(w, r, kind.Name, id)
	if !ok {
		return
	}

	if err := h.apply(ctx, kind, rec, patch, false); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.UpdateRecord(ctx, rec); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "record updated", slog.String("kind", kind.Name), slog.Int64("id", rec.ID))
	h.sendRecord(w, r, rec, http.StatusOK)
}

// SoftDelete обрабатывает DELETE /api/v1/{res}/remove/{id}
func (h *ResourceHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "removed", func(ctx context.Context, kind string, id int64) error {
		return h.store.SoftDeleteRecord(ctx, kind, id, time.Now())
	})
}

// Restore обрабатывает POST /api/v1/{res}/restore/{id}
func (h *ResourceHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "restored", h.store.RestoreRecord)
}

// ForceDelete обрабатывает DELETE /api/v1/{res}/delete/{id}
// Запись удаляется без возможности восстановления
func (h *ResourceHandler) ForceDelete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "deleted permanently", h.store.ForceDeleteRecord)
}

func (h *ResourceHandler) mutate(w http.ResponseWriter, r *http.Request, action string, fn func(context.Context, string, int64) error) {
	ctx := r.Context()

	kind, ok := h.kind(w, r)
	if !ok {
		return
	}
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}

	if err := fn(ctx, kind.Name, id); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "record "+action, slog.String("kind", kind.Name), slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// AttachTag обрабатывает POST /api/v1/posts/{id}/tags
func (h *ResourceHandler) AttachTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, ok := h.id(w, r, "id")
	if !ok {
		return
	}

	var req api.AttachTagRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.Struct(req); err != nil {
		h.sendValidation(w, err)
		return
	}

	h.retag(w, r, postID, func(ids []int64) ([]int64, error) {
		if _, err := h.liveRecord(ctx, api.ResourceTags, req.TagID); err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				return nil, fieldError("tag_id", "does not exist")
			}
			return nil, err
		}
		if slices.Contains(ids, req.TagID) {
			return ids, nil
		}
		return append(ids, req.TagID), nil
	})
}

// DetachTag обрабатывает DELETE /api/v1/posts/{id}/tags/{tagID}
func (h *ResourceHandler) DetachTag(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.id(w, r, "id")
	if !ok {
		return
	}
	tagID, ok := h.id(w, r, "tagID")
	if !ok {
		return
	}

	h.retag(w, r, postID, func(ids []int64) ([]int64, error) {
		return slices.DeleteFunc(ids, func(id int64) bool { return id == tagID }), nil
	})
}

// retag меняет список tag_ids поста и отправляет обновленный пост
func (h *ResourceHandler) retag(w http.ResponseWriter, r *http.Request, postID int64, change func([]int64) ([]int64, error)) {
	ctx := r.Context()

	post, ok := h.live(w, r, api.ResourcePosts, postID)
	if !ok {
		return
	}

	var ids []int64
	if _, err := post.Attr("tag_ids", &ids); err != nil {
		h.fail(w, r, err)
		return
	}

	ids, err := change(ids)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}

	patch, err := json.Marshal(map[string]any{"tag_ids": ids})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := post.Merge(patch); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.UpdateRecord(ctx, post); err != nil {
		h.fail(w, r, err)
		return
	}

	h.sendRecord(w, r, post, http.StatusOK)
}

// CategoryByName обрабатывает GET /api/v1/categories/name/{name}
func (h *ResourceHandler) CategoryByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		h.sendError(w, "name is required", http.StatusBadRequest)
		return
	}

	rec, err := h.store.FindRecordByName(r.Context(), api.ResourceCategories, name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.sendRecord(w, r, rec, http.StatusOK)
}

// apply накладывает patch на запись и пересчитывает производные поля
func (h *ResourceHandler) apply(ctx context.Context, kind Kind, rec *models.Record, patch json.RawMessage, create bool) error {
	var changes map[string]json.RawMessage
	if err := json.Unmarshal(patch, &changes); err != nil {
		return fmt.Errorf("failed to decode patch: %w", err)
	}

	if err := rec.Merge(patch); err != nil {
		return err
	}

	derived := make(map[string]any)

	rec.Name = ""
	if _, err := rec.Attr(kind.titleKey, &rec.Name); err != nil {
		return err
	}
	if _, titleChanged := changes[kind.titleKey]; kind.slugged && (create || titleChanged) {
		derived["slug"] = slug.Generate(rec.Name)
	}

	if kind.Name == api.ResourcePosts {
		if err := h.preparePost(ctx, rec, changes, derived, create); err != nil {
			return err
		}
	}

	if len(derived) == 0 {
		return nil
	}
	extra, err := json.Marshal(derived)
	if err != nil {
		return fmt.Errorf("failed to encode derived fields: %w", err)
	}
	return rec.Merge(extra)
}

// preparePost проверяет ссылки поста и заполняет значения по умолчанию
func (h *ResourceHandler) preparePost(ctx context.Context, rec *models.Record, changes map[string]json.RawMessage, derived map[string]any, create bool) error {
	verr := &validation.Error{}

	if create {
		derived["views"] = 0
		if _, ok := changes["tag_ids"]; !ok {
			derived["tag_ids"] = []int64{}
		}
		if _, ok := changes["status"]; !ok {
			derived["status"] = api.StatusDraft
		}
	}

	rec.Status = api.StatusDraft
	if _, err := rec.Attr("status", &rec.Status); err != nil {
		return err
	}
	if s, ok := derived["status"].(string); ok {
		rec.Status = s
	}

	if _, ok := changes["category_id"]; ok {
		var categoryID int64
		if _, err := rec.Attr("category_id", &categoryID); err != nil {
			return err
		}
		if _, err := h.liveRecord(ctx, api.ResourceCategories, categoryID); err != nil {
			if !errors.Is(err, storage.ErrRecordNotFound) {
				return err
			}
			verr.Fields = map[string]string{"category_id": "does not exist"}
		}
	}

	if _, ok := changes["tag_ids"]; ok {
		var tagIDs []int64
		if _, err := rec.Attr("tag_ids", &tagIDs); err != nil {
			return err
		}
		for _, id := range tagIDs {
			if _, err := h.liveRecord(ctx, api.ResourceTags, id); err != nil {
				if !errors.Is(err, storage.ErrRecordNotFound) {
					return err
				}
				if verr.Fields == nil {
					verr.Fields = make(map[string]string)
				}
				verr.Fields["tag_ids"] = fmt.Sprintf("tag %d does not exist", id)
				break
			}
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// liveRecord возвращает неудаленную запись или ErrRecordNotFound
func (h *ResourceHandler) liveRecord(ctx context.Context, kind string, id int64) (*models.Record, error) {
	rec, err := h.store.GetRecord(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if rec.Deleted() {
		return nil, storage.ErrRecordNotFound
	}
	return rec, nil
}

func (h *ResourceHandler) live(w http.ResponseWriter, r *http.Request, kind string, id int64) (*models.Record, bool) {
	rec, err := h.liveRecord(r.Context(), kind, id)
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return rec, true
}

func (h *ResourceHandler) kind(w http.ResponseWriter, r *http.Request) (Kind, bool) {
	kind, ok := h.kinds[r.PathValue("res")]
	if !ok {
		h.sendError(w, errUnknownKind.Error(), http.StatusNotFound)
		return Kind{}, false
	}
	return kind, true
}

func (h *ResourceHandler) id(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, ok := parseID(r.PathValue(name))
	if !ok {
		h.sendError(w, fmt.Sprintf("invalid %s", name), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *ResourceHandler) decode(w http.ResponseWriter, r *http.Request, kind Kind, create bool) (json.RawMessage, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.sendError(w, "request body too large", http.StatusRequestEntityTooLarge)
		return nil, false
	}

	patch, err := kind.decode(body, create)
	if err != nil {
		h.sendValidation(w, err)
		return nil, false
	}
	return patch, true
}

func (h *ResourceHandler) sendRecord(w http.ResponseWriter, r *http.Request, rec *models.Record, status int) {
	doc, err := rec.Document()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.sendJSON(w, doc, status)
}

// fail переводит ошибку хранилища или валидации в HTTP ответ
func (h *ResourceHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		h.sendValidation(w, err)
	case errors.Is(err, storage.ErrRecordNotFound):
		h.sendError(w, "not found", http.StatusNotFound)
	default:
		h.logger.ErrorContext(r.Context(), "resource request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
	}
}
