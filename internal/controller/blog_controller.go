package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"brotech_admin/internal/blog"
	"brotech_admin/internal/model"
	"brotech_admin/internal/store"
	"brotech_admin/pkg/utils/image"
	"brotech_admin/pkg/utils/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImageRemover deletes a stored feature image by its public URL.
type ImageRemover interface {
	Delete(ctx context.Context, fullURL string) error
}

type BlogHandler struct {
	Posts *store.BlogPosts
	// Uploader ve Images R2 yapılandırılmamışsa nil kalır
	Uploader blog.Uploader
	Images   ImageRemover

	editors *editorPool
}

// editorPool shares one editor per post, so overlapping saves of the same
// post run into each other's state instead of both writing.
type editorPool struct {
	mu   sync.Mutex
	open map[string]*pooledEditor
}

type pooledEditor struct {
	editor *blog.Editor
	users  int
}

func newEditorPool() *editorPool {
	return &editorPool{open: map[string]*pooledEditor{}}
}

func (p *editorPool) acquire(id string, create func() *blog.Editor) *blog.Editor {
	p.mu.Lock()
	defer p.mu.Unlock()
	pe, ok := p.open[id]
	if !ok {
		pe = &pooledEditor{editor: create()}
		p.open[id] = pe
	}
	pe.users++
	return pe.editor
}

func (p *editorPool) release(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pe, ok := p.open[id]
	if !ok {
		return
	}
	pe.users--
	if pe.users == 0 {
		delete(p.open, id)
	}
}

func InitRestBlog(router fiber.Router, handler BlogHandler) BlogHandler {
	if handler.editors == nil {
		handler.editors = newEditorPool()
	}
	router.Get("/blog", handler.List)
	router.Get("/blog/:id", handler.Get)
	router.Post("/blog", handler.Create)
	router.Put("/blog/:id", handler.Update)
	router.Delete("/blog/:id", handler.Delete)

	return handler
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	posts, err := h.Posts.List(c.UserContext(), store.NewQuery().OrderBy("createdAt", true))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

func (h *BlogHandler) Get(c *fiber.Ctx) error {
	post, err := h.Posts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	return h.save(c, "")
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	return h.save(c, c.Params("id"))
}

// save formu okur ve editörle kaydeder; id boşsa yeni yazı oluşturulur
func (h *BlogHandler) save(c *fiber.Ctx, id string) error {
	draft, err := h.readDraft(c)
	if err != nil {
		return respondError(c, err)
	}
	if draft.Image != nil && h.Uploader == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Image storage is not configured. Save the post without a feature image or configure R2.",
		})
	}

	ctx := c.UserContext()
	var editor *blog.Editor
	if id == "" {
		editor = h.newEditor()
		editor.New()
	} else {
		editor = h.editors.acquire(id, h.newEditor)
		defer h.editors.release(id)
		if _, err := editor.Open(ctx, id); err != nil {
			if errors.Is(err, blog.ErrBusy) {
				return saveConflict(c)
			}
			return respondError(c, err)
		}
	}

	savedID, err := editor.Save(ctx, draft)
	switch {
	case errors.Is(err, blog.ErrUpload):
		zap.L().Error("Feature image upload failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not upload the feature image. The post was not saved.",
		})
	case errors.Is(err, blog.ErrBusy), errors.Is(err, blog.ErrNotEditing):
		// aynı yazı başka bir istekle kaydedildi
		return saveConflict(c)
	case err != nil:
		return respondError(c, err)
	}

	post, err := h.Posts.Get(ctx, savedID)
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusOK
	if id == "" {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(post)
}

func (h *BlogHandler) newEditor() *blog.Editor {
	editor := blog.NewEditor(h.Posts, h.Uploader)
	editor.OnProgress = func(pct int) {
		zap.L().Debug("Feature image upload progress", zap.Int("percent", pct))
	}
	if h.Images != nil {
		editor.Remover = h.Images
	}
	return editor
}

func saveConflict(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error": "This post is being saved by another request. Reload it and try again.",
	})
}

func (h *BlogHandler) readDraft(c *fiber.Ctx) (blog.Draft, error) {
	draft := blog.Draft{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Content: c.FormValue("content"),
		Status:  model.PostStatus(strings.TrimSpace(c.FormValue("status"))),
	}

	// Resim opsiyonel
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return draft, nil
	}
	if err := validation.ValidateImage(file); err != nil {
		return draft, validation.ImageError("image", err)
	}

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return draft, validation.New("image", "Could not process image. Please upload a valid JPG, PNG or WEBP file.")
	}
	draft.Image = &blog.Image{
		Filename:    file.Filename,
		ContentType: contentType,
		Size:        int64(buf.Len()),
		Body:        buf,
	}
	return draft, nil
}

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	post, err := h.Posts.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Posts.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}

	// Görsel silinemese de yazı silinmiş sayılır
	if post.FeatureImageURL != "" && h.Images != nil {
		if err := h.Images.Delete(ctx, post.FeatureImageURL); err != nil {
			zap.L().Warn("Could not delete feature image", zap.String("url", post.FeatureImageURL), zap.Error(err))
		}
	}

	return c.JSON(fiber.Map{
		"message": "Blog post deleted successfully",
	})
}
