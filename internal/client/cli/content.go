package cli

import (
	"context"
	"fmt"
	"os"
)

// runPostsExtra handles "posts tag" and "posts untag"
func (c *Cli) runPostsExtra(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 || (args[0] != "tag" && args[0] != "untag") {
		return false, nil
	}
	action := args[0]
	if len(args) != 3 {
		return true, c.usageErr("posts %s <id> <tagID>", action)
	}

	postID, err := parseID(args[1])
	if err != nil {
		return true, err
	}
	tagID, err := parseID(args[2])
	if err != nil {
		return true, err
	}

	posts := c.stores.Posts
	if action == "tag" {
		if _, err := posts.AttachTag(ctx, postID, tagID); err != nil {
			return true, err
		}
		c.io.Printf("✓ Tag %s attached to post %s\n", fmtID(tagID), fmtID(postID))
		return true, nil
	}

	if _, err := posts.DetachTag(ctx, postID, tagID); err != nil {
		return true, err
	}
	c.io.Printf("✓ Tag %s detached from post %s\n", fmtID(tagID), fmtID(postID))
	return true, nil
}

// runCategoriesExtra handles "categories by-name"
func (c *Cli) runCategoriesExtra(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 || args[0] != "by-name" {
		return false, nil
	}
	if len(args) != 2 {
		return true, c.usageErr("categories by-name <name>")
	}

	category, err := c.stores.Categories.FetchByName(ctx, args[1])
	if err != nil {
		return true, err
	}
	return true, render(c, categoryView, *category)
}

// runImagesExtra handles "images upload" and "images preview"
func (c *Cli) runImagesExtra(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	switch args[0] {
	case "upload":
		if len(args) != 2 {
			return true, c.usageErr("images upload <path>")
		}
		return true, c.uploadImage(ctx, args[1])
	case "preview":
		if len(args) != 2 {
			return true, c.usageErr("images preview <name>")
		}
		c.io.Println(c.stores.Images.PreviewURL(args[1]))
		return true, nil
	}
	return false, nil
}

func (c *Cli) uploadImage(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	img, err := c.stores.Images.Upload(ctx, path, f)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Uploaded image %s\n", fmtID(img.ID))
	c.io.Printf("Preview: %s\n", c.stores.Images.PreviewURL(img.Name))
	return nil
}
