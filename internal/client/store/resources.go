package store

import (
	"context"
	"io"
	"log/slog"

	"github.com/salafuz/admin-panel/internal/validation"
	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

// Tags is the tags store
type Tags = Store[pkgapi.Tag, pkgapi.TagInput]

// Scholars is the scholars store
type Scholars = Store[pkgapi.Scholar, pkgapi.ScholarInput]

// NewTags создает хранилище тегов
func NewTags(api ResourceAPI[pkgapi.Tag, pkgapi.TagInput], logger *slog.Logger) *Tags {
	return New(api, "tag", validation.Tag, logger)
}

// NewScholars создает хранилище ученых
func NewScholars(api ResourceAPI[pkgapi.Scholar, pkgapi.ScholarInput], logger *slog.Logger) *Scholars {
	return New(api, "scholar", validation.Scholar, logger)
}

// CategoryFinder ищет категорию по имени. Implemented by *api.Client.
type CategoryFinder interface {
	CategoryByName(ctx context.Context, name string) (*pkgapi.Category, error)
}

// Categories is the categories store
type Categories struct {
	*Store[pkgapi.Category, pkgapi.CategoryInput]
	finder CategoryFinder
}

// NewCategories создает хранилище категорий
func NewCategories(
	api ResourceAPI[pkgapi.Category, pkgapi.CategoryInput],
	finder CategoryFinder,
	logger *slog.Logger,
) *Categories {
	return &Categories{
		Store:  New(api, "category", validation.Category, logger),
		finder: finder,
	}
}

// FetchByName загружает категорию по имени. Items не меняются.
func (c *Categories) FetchByName(ctx context.Context, name string) (*pkgapi.Category, error) {
	c.clearErr()

	category, err := c.finder.CategoryByName(ctx, name)
	if err != nil {
		return nil, c.fail(ctx, "fetch by name", "Failed to fetch category.", err)
	}
	return category, nil
}

// ImageUploader загружает файлы изображений. Implemented by *api.Client.
type ImageUploader interface {
	UploadImage(ctx context.Context, filename string, content io.Reader) (*pkgapi.Image, error)
	PreviewURL(name string) string
}

// Images is the images store
type Images struct {
	*Store[pkgapi.Image, pkgapi.ImageInput]
	uploader ImageUploader
}

// NewImages создает хранилище изображений
func NewImages(
	api ResourceAPI[pkgapi.Image, pkgapi.ImageInput],
	uploader ImageUploader,
	logger *slog.Logger,
) *Images {
	return &Images{
		Store:    New(api, "image", validation.Image, logger),
		uploader: uploader,
	}
}

// Upload загружает файл и добавляет изображение в начало Items
func (i *Images) Upload(ctx context.Context, filename string, content io.Reader) (*pkgapi.Image, error) {
	i.clearErr()

	img, err := i.uploader.UploadImage(ctx, filename, content)
	if err != nil {
		return nil, i.fail(ctx, "upload", "Failed to upload image.", err)
	}

	i.prepend(*img)
	return img, nil
}

// PreviewURL returns the preview address of an uploaded image
func (i *Images) PreviewURL(name string) string {
	return i.uploader.PreviewURL(name)
}
