package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

// AttachTag привязывает тег к посту
func (c *Client) AttachTag(ctx context.Context, postID, tagID int64) error {
	path := fmt.Sprintf("/posts/%d/tags", postID)
	req := pkgapi.AttachTagRequest{TagID: tagID}
	if err := c.call(ctx, http.MethodPost, path, nil, req, nil, firstAttempt); err != nil {
		return fmt.Errorf("attach tag %d to post %d: %w", tagID, postID, err)
	}
	return nil
}

// DetachTag отвязывает тег от поста
func (c *Client) DetachTag(ctx context.Context, postID, tagID int64) error {
	path := fmt.Sprintf("/posts/%d/tags/%d", postID, tagID)
	if err := c.call(ctx, http.MethodDelete, path, nil, nil, nil, firstAttempt); err != nil {
		return fmt.Errorf("detach tag %d from post %d: %w", tagID, postID, err)
	}
	return nil
}

// CategoryByName возвращает категорию по имени
func (c *Client) CategoryByName(ctx context.Context, name string) (*pkgapi.Category, error) {
	var resp pkgapi.Category
	path := "/categories/name/" + url.PathEscape(name)
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &resp, firstAttempt); err != nil {
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	return &resp, nil
}

// UploadImage отправляет файл как multipart/form-data (поле "file")
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (*pkgapi.Image, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	// Тело целиком в памяти, чтобы запрос можно было повторить после refresh
	req := request{
		method:      http.MethodPost,
		path:        "/images/upload",
		body:        buf.Bytes(),
		contentType: mw.FormDataContentType(),
	}

	var resp pkgapi.Image
	if err := c.do(ctx, req, firstAttempt, &resp); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return &resp, nil
}

// PreviewURL возвращает адрес превью изображения по имени файла
func (c *Client) PreviewURL(name string) string {
	return c.baseURL + "/images/preview/" + url.PathEscape(name)
}
