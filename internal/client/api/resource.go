package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

// Resource is the CRUD endpoint set of one collection (posts, categories, ...).
// T is the resource type, In the create/update input.
type Resource[T any, In any] struct {
	client *Client
	name   string
}

// NewResource binds a collection name to the client
func NewResource[T any, In any](c *Client, name string) *Resource[T, In] {
	return &Resource[T, In]{client: c, name: name}
}

// Name returns the collection name used in paths
func (r *Resource[T, In]) Name() string {
	return r.name
}

func (r *Resource[T, In]) path(parts ...string) string {
	p := "/" + r.name
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// List returns one page of the collection
func (r *Resource[T, In]) List(ctx context.Context, q pkgapi.ListQuery) (*pkgapi.ListResponse[T], error) {
	var resp pkgapi.ListResponse[T]
	if err := r.client.call(ctx, http.MethodGet, r.path(), q.Values(), nil, &resp, firstAttempt); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return &resp, nil
}

// ListDeleted returns soft-deleted entries
func (r *Resource[T, In]) ListDeleted(ctx context.Context) (*pkgapi.ListResponse[T], error) {
	var resp pkgapi.ListResponse[T]
	if err := r.client.call(ctx, http.MethodGet, r.path("deleted"), nil, nil, &resp, firstAttempt); err != nil {
		return nil, fmt.Errorf("list deleted %s: %w", r.name, err)
	}
	return &resp, nil
}

// Get returns a single entry
func (r *Resource[T, In]) Get(ctx context.Context, id int64) (*T, error) {
	var resp T
	if err := r.client.call(ctx, http.MethodGet, r.path(idString(id)), nil, nil, &resp, firstAttempt); err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.name, id, err)
	}
	return &resp, nil
}

// Create posts a new entry and returns it as stored by the server
func (r *Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var resp T
	if err := r.client.call(ctx, http.MethodPost, r.path(), nil, in, &resp, firstAttempt); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.name, err)
	}
	return &resp, nil
}

// Update puts a partial input and returns the updated entry
func (r *Resource[T, In]) Update(ctx context.Context, id int64, in In) (*T, error) {
	var resp T
	if err := r.client.call(ctx, http.MethodPut, r.path(idString(id)), nil, in, &resp, firstAttempt); err != nil {
		return nil, fmt.Errorf("update %s %d: %w", r.name, id, err)
	}
	return &resp, nil
}

// SoftDelete moves the entry to the deleted set
func (r *Resource[T, In]) SoftDelete(ctx context.Context, id int64) error {
	if err := r.client.call(ctx, http.MethodDelete, r.path("remove", idString(id)), nil, nil, nil, firstAttempt); err != nil {
		return fmt.Errorf("remove %s %d: %w", r.name, id, err)
	}
	return nil
}

// Restore brings a soft-deleted entry back
func (r *Resource[T, In]) Restore(ctx context.Context, id int64) error {
	if err := r.client.call(ctx, http.MethodPost, r.path("restore", idString(id)), nil, nil, nil, firstAttempt); err != nil {
		return fmt.Errorf("restore %s %d: %w", r.name, id, err)
	}
	return nil
}

// ForceDelete removes the entry permanently
func (r *Resource[T, In]) ForceDelete(ctx context.Context, id int64) error {
	if err := r.client.call(ctx, http.MethodDelete, r.path("delete", idString(id)), nil, nil, nil, firstAttempt); err != nil {
		return fmt.Errorf("delete %s %d: %w", r.name, id, err)
	}
	return nil
}

// Posts returns the posts endpoint set
func (c *Client) Posts() *Resource[pkgapi.Post, pkgapi.PostInput] {
	return NewResource[pkgapi.Post, pkgapi.PostInput](c, pkgapi.ResourcePosts)
}

// Categories returns the categories endpoint set
func (c *Client) Categories() *Resource[pkgapi.Category, pkgapi.CategoryInput] {
	return NewResource[pkgapi.Category, pkgapi.CategoryInput](c, pkgapi.ResourceCategories)
}

// Tags returns the tags endpoint set
func (c *Client) Tags() *Resource[pkgapi.Tag, pkgapi.TagInput] {
	return NewResource[pkgapi.Tag, pkgapi.TagInput](c, pkgapi.ResourceTags)
}

// Scholars returns the scholars endpoint set
func (c *Client) Scholars() *Resource[pkgapi.Scholar, pkgapi.ScholarInput] {
	return NewResource[pkgapi.Scholar, pkgapi.ScholarInput](c, pkgapi.ResourceScholars)
}

// Images returns the images endpoint set
func (c *Client) Images() *Resource[pkgapi.Image, pkgapi.ImageInput] {
	return NewResource[pkgapi.Image, pkgapi.ImageInput](c, pkgapi.ResourceImages)
}
