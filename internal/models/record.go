package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record хранит один ресурс (post, category, tag, scholar, image).
// Общие поля вынесены в колонки, остальное лежит в Attributes как JSON.
type Record struct {
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  *time.Time      `json:"deleted_at,omitempty"`
	Kind       string          `json:"kind"`   // имя коллекции: posts, tags, ...
	Name       string          `json:"name"`   // title для постов, name для остальных; по нему идет поиск
	Status     string          `json:"status"` // статус поста, пусто для остальных
	Attributes json.RawMessage `json:"attributes"`
	ID         int64           `json:"id"`
}

// FileAttr - ключ файла изображения в хранилище. Задается при загрузке, patch его не меняет.
const FileAttr = "file"

// Deleted сообщает, помечена ли запись как удаленная
func (r *Record) Deleted() bool {
	return r.DeletedAt != nil
}

// Document собирает JSON объект ресурса: атрибуты плюс id и метки времени.
// Так ресурс уходит клиенту.
func (r *Record) Document() (map[string]any, error) {
	doc := make(map[string]any)
	if len(r.Attributes) > 0 {
		if err := json.Unmarshal(r.Attributes, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode attributes of %s %d: %w", r.Kind, r.ID, err)
		}
	}

	doc["id"] = r.ID
	doc["created_at"] = r.CreatedAt
	doc["updated_at"] = r.UpdatedAt
	if r.DeletedAt != nil {
		doc["deleted_at"] = *r.DeletedAt
	} else {
		delete(doc, "deleted_at")
	}
	return doc, nil
}

// Merge накладывает patch (JSON объект) поверх текущих атрибутов.
// Ключи, отсутствующие в patch, сохраняются.
func (r *Record) Merge(patch json.RawMessage) error {
	attrs := make(map[string]any)
	if len(r.Attributes) > 0 {
		if err := json.Unmarshal(r.Attributes, &attrs); err != nil {
			return fmt.Errorf("failed to decode attributes: %w", err)
		}
	}

	var changes map[string]any
	if err := json.Unmarshal(patch, &changes); err != nil {
		return fmt.Errorf("failed to decode patch: %w", err)
	}
	for k, v := range changes {
		switch k {
		case "id", "created_at", "updated_at", "deleted_at", FileAttr:
			continue
		}
		attrs[k] = v
	}

	data, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("failed to encode attributes: %w", err)
	}
	r.Attributes = data
	return nil
}

// Attr читает атрибут key в dst. Возвращает false, если ключа нет.
func (r *Record) Attr(key string, dst any) (bool, error) {
	var attrs map[string]json.RawMessage
	if len(r.Attributes) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(r.Attributes, &attrs); err != nil {
		return false, fmt.Errorf("failed to decode attributes: %w", err)
	}
	raw, ok := attrs[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("failed to decode attribute %q: %w", key, err)
	}
	return true, nil
}

// ListFilter описывает выборку записей одной коллекции
type ListFilter struct {
	Kind      string
	Search    string // подстрока в Name, без учета регистра
	Status    string
	Sort      string // колонка: id, name, status, created_at, updated_at
	Direction string // asc или desc
	Limit     int
	Offset    int
	Deleted   bool // true - только удаленные, false - только живые
}
