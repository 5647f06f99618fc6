package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/salafuz/admin-panel/internal/validation"
	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

// PostTagger привязывает и отвязывает теги поста. Implemented by *api.Client.
type PostTagger interface {
	AttachTag(ctx context.Context, postID, tagID int64) error
	DetachTag(ctx context.Context, postID, tagID int64) error
}

// Posts is the posts store. It reads categories and tags through their own stores
// and never writes into them.
type Posts struct {
	*Store[pkgapi.Post, pkgapi.PostInput]
	tagger     PostTagger
	categories *Categories
	tags       *Tags
}

// NewPosts создает хранилище постов
func NewPosts(
	api ResourceAPI[pkgapi.Post, pkgapi.PostInput],
	tagger PostTagger,
	categories *Categories,
	tags *Tags,
	logger *slog.Logger,
) *Posts {
	return &Posts{
		Store:      New(api, "post", validation.Post, logger),
		tagger:     tagger,
		categories: categories,
		tags:       tags,
	}
}

// Categories returns the categories store used for post forms
func (p *Posts) Categories() *Categories {
	return p.categories
}

// Tags returns the tags store used for post forms
func (p *Posts) Tags() *Tags {
	return p.tags
}

// LoadRelations обновляет категории и теги для формы поста
func (p *Posts) LoadRelations(ctx context.Context) error {
	var errs []error
	if p.categories != nil {
		errs = append(errs, p.categories.FetchAll(ctx, nil))
	}
	if p.tags != nil {
		errs = append(errs, p.tags.FetchAll(ctx, nil))
	}
	return errors.Join(errs...)
}

// AttachTag привязывает тег и перечитывает пост, чтобы обновить его в Items
func (p *Posts) AttachTag(ctx context.Context, postID, tagID int64) (*pkgapi.Post, error) {
	p.clearErr()

	if err := p.tagger.AttachTag(ctx, postID, tagID); err != nil {
		return nil, p.fail(ctx, "attach tag", "Failed to add tag to post.", err)
	}
	return p.reload(ctx, postID)
}

// DetachTag отвязывает тег и перечитывает пост
func (p *Posts) DetachTag(ctx context.Context, postID, tagID int64) (*pkgapi.Post, error) {
	p.clearErr()

	if err := p.tagger.DetachTag(ctx, postID, tagID); err != nil {
		return nil, p.fail(ctx, "detach tag", "Failed to remove tag from post.", err)
	}
	return p.reload(ctx, postID)
}

func (p *Posts) reload(ctx context.Context, postID int64) (*pkgapi.Post, error) {
	post, err := p.FetchOne(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("reload post %d: %w", postID, err)
	}
	p.Merge(*post)
	return post, nil
}
