package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/salafuz/admin-panel/internal/validation"
	"github.com/salafuz/admin-panel/pkg/api"
)

// Kind описывает одну коллекцию ресурсов
type Kind struct {
	// decode разбирает и валидирует тело запроса, возвращает только переданные поля
	decode func(body []byte, create bool) (json.RawMessage, error)
	// Name имя коллекции в пути: posts, categories, ...
	Name string
	// titleKey атрибут, который хранится в колонке name и участвует в поиске
	titleKey string
	// slugged - slug генерируется из titleKey
	slugged bool
	// creatable - можно создать через POST /{res}; изображения создаются только загрузкой
	creatable bool
}

func newKind[In any](name, titleKey string, validate func(In, bool) error, slugged, creatable bool) Kind {
	return Kind{
		Name:      name,
		titleKey:  titleKey,
		slugged:   slugged,
		creatable: creatable,
		decode: func(body []byte, create bool) (json.RawMessage, error) {
			var in In
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&in); err != nil {
				return nil, fmt.Errorf("invalid request body: %w", err)
			}
			if err := validate(in, create); err != nil {
				return nil, err
			}

			// *Input сериализуется с omitempty, в patch попадают только переданные поля
			patch, err := json.Marshal(in)
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s: %w", name, err)
			}
			return patch, nil
		},
	}
}

// DefaultKinds возвращает все коллекции API
func DefaultKinds() map[string]Kind {
	kinds := []Kind{
		newKind(api.ResourcePosts, "title", validation.Post, true, true),
		newKind(api.ResourceCategories, "name", validation.Category, true, true),
		newKind(api.ResourceTags, "name", validation.Tag, false, true),
		newKind(api.ResourceScholars, "name", validation.Scholar, false, true),
		newKind(api.ResourceImages, "name", validation.Image, false, false),
	}

	m := make(map[string]Kind, len(kinds))
	for _, k := range kinds {
		m[k.Name] = k
	}
	return m
}
