package store

import (
	"log/slog"

	apiclient "github.com/salafuz/admin-panel/internal/client/api"
)

// Stores holds one store per collection, all bound to the same client
type Stores struct {
	Posts      *Posts
	Categories *Categories
	Tags       *Tags
	Scholars   *Scholars
	Images     *Images
}

// NewStores создает хранилища всех коллекций поверх client
func NewStores(client *apiclient.Client, logger *slog.Logger) *Stores {
	categories := NewCategories(client.Categories(), client, logger)
	tags := NewTags(client.Tags(), logger)

	return &Stores{
		Posts:      NewPosts(client.Posts(), client, categories, tags, logger),
		Categories: categories,
		Tags:       tags,
		Scholars:   NewScholars(client.Scholars(), logger),
		Images:     NewImages(client.Images(), client, logger),
	}
}
