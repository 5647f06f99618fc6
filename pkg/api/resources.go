package api

import "time"

// Resource names as they appear in API paths.
const (
	ResourcePosts      = "posts"
	ResourceCategories = "categories"
	ResourceTags       = "tags"
	ResourceScholars   = "scholars"
	ResourceImages     = "images"
)

// Resources lists every collection served under /api/v1.
var Resources = []string{ResourcePosts, ResourceCategories, ResourceTags, ResourceScholars, ResourceImages}

// Post statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

// Timestamps are server-assigned and shared by every resource.
type Timestamps struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Post is a blog article.
type Post struct {
	Timestamps
	PublishAt  *time.Time `json:"publish_at,omitempty"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Content    string     `json:"content"`
	CoverImg   string     `json:"cover_img"`
	Status     string     `json:"status"`
	TagIDs     []int64    `json:"tag_ids"`
	ID         int64      `json:"id"`
	Views      int64      `json:"views"`
	CategoryID int64      `json:"category_id"`
}

// PostInput is used for create and partial update. Nil fields are not sent.
type PostInput struct {
	Title      *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content    *string    `json:"content,omitempty"`
	CoverImg   *string    `json:"cover_img,omitempty"`
	Status     *string    `json:"status,omitempty" validate:"omitempty,oneof=draft published scheduled"`
	PublishAt  *time.Time `json:"publish_at,omitempty"`
	CategoryID *int64     `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	TagIDs     []int64    `json:"tag_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// Category groups posts.
type Category struct {
	Timestamps
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ID          int64  `json:"id"`
}

// CategoryInput is used for create and partial update.
type CategoryInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1024"`
}

// Tag labels posts.
type Tag struct {
	Timestamps
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ID          int64  `json:"id"`
}

// TagInput is used for create and partial update.
type TagInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1024"`
}

// Scholar is an author profile.
type Scholar struct {
	Timestamps
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	Photo     string `json:"photo,omitempty"`
	ID        int64  `json:"id"`
	BirthYear int    `json:"birth_year,omitempty"`
	DeathYear int    `json:"death_year,omitempty"`
}

// ScholarInput is used for create and partial update.
type ScholarInput struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Bio       *string `json:"bio,omitempty"`
	Photo     *string `json:"photo,omitempty"`
	BirthYear *int    `json:"birth_year,omitempty" validate:"omitempty,gte=0"`
	DeathYear *int    `json:"death_year,omitempty" validate:"omitempty,gte=0"`
}

// Image is an uploaded file.
type Image struct {
	Timestamps
	Name     string `json:"name"`
	File     string `json:"file"` // storage key, kept when the image is renamed
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	ID       int64  `json:"id"`
	Size     int64  `json:"size"`
}

// ImageInput updates image metadata. Files are sent through the upload endpoint.
type ImageInput struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
}

// GetID returns the server-assigned id.
func (p Post) GetID() int64 { return p.ID }

// GetID returns the server-assigned id.
func (c Category) GetID() int64 { return c.ID }

// GetID returns the server-assigned id.
func (t Tag) GetID() int64 { return t.ID }

// GetID returns the server-assigned id.
func (s Scholar) GetID() int64 { return s.ID }

// GetID returns the server-assigned id.
func (i Image) GetID() int64 { return i.ID }

// ListResponse is one page of a collection.
type ListResponse[T any] struct {
	Data    []T `json:"data"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// AttachTagRequest attaches an existing tag to a post.
type AttachTagRequest struct {
	TagID int64 `json:"tag_id" validate:"required,gt=0"`
}
