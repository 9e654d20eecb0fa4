// Package blog holds the save flow of the blog post editor.
package blog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"brotech_admin/internal/model"
	"brotech_admin/internal/session"
	"brotech_admin/pkg/utils/validation"

	"go.uber.org/zap"
)

// ImageFolder is the blob store folder for feature images.
const ImageFolder = "blog"

type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading-existing"
	StateEditing   State = "editing"
	StateUploading State = "uploading-image"
	StateSaving    State = "saving"
	StateError     State = "error"
)

var (
	ErrBusy       = errors.New("a save is already in progress")
	ErrNotEditing = errors.New("editor has no open post")
	// ErrUpload wraps a failed feature image upload; the post is not written.
	ErrUpload = errors.New("upload feature image")
)

// Uploader stores a file and returns its public URL. progress receives 0-100.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string, progress func(pct int)) (string, error)
}

// Remover deletes a stored file by the URL Upload returned.
type Remover interface {
	Delete(ctx context.Context, fullURL string) error
}

type Posts interface {
	Get(ctx context.Context, id string) (*model.BlogPost, error)
	Create(ctx context.Context, post *model.BlogPost) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) error
}

// Image is a newly attached feature image.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Draft is the editor form content.
type Draft struct {
	Title   string
	Content string
	Status  model.PostStatus
	Image   *Image
}

func (d Draft) validate() error {
	return validation.Each(
		validation.Required("title", d.Title),
		validation.Required("content", d.Content),
		statusError(d.Status),
	)
}

func statusError(s model.PostStatus) error {
	if s != "" && !s.Valid() {
		return validation.New("status", "status must be draft or published")
	}
	return nil
}

// ImageKey is "{folder}/{epochMillis}_{originalFilename}".
func ImageKey(filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s", ImageFolder, now.UnixMilli(), path.Base(strings.ReplaceAll(filename, `\`, "/")))
}

// Editor drives one post through load, edit and save. A new image is always
// uploaded before the record is written; if the upload fails nothing is written.
type Editor struct {
	posts    Posts
	uploader Uploader
	now      func() time.Time

	// OnProgress, if set, receives upload progress.
	OnProgress func(pct int)
	// Remover, if set, deletes an uploaded image whose post could not be written.
	Remover Remover

	mu       sync.Mutex
	state    State
	existing *model.BlogPost
	progress int
	lastErr  error
}

func NewEditor(posts Posts, uploader Uploader) *Editor {
	return &Editor{posts: posts, uploader: uploader, now: time.Now, state: StateIdle}
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Editor) Progress() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress
}

func (e *Editor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Existing returns the post being edited, nil for a new post.
func (e *Editor) Existing() *model.BlogPost {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.existing
}

func (e *Editor) setState(s State, err error) {
	e.mu.Lock()
	e.state = s
	e.lastErr = err
	e.mu.Unlock()
}

// New starts editing a fresh post.
func (e *Editor) New() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.existing = nil
	e.progress = 0
	e.state = StateEditing
	e.lastErr = nil
}

// Open loads an existing post for editing. It fails with ErrBusy while the
// editor is loading or saving.
func (e *Editor) Open(ctx context.Context, id string) (*model.BlogPost, error) {
	e.mu.Lock()
	if e.busy() {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	e.state = StateLoading
	e.lastErr = nil
	e.mu.Unlock()

	post, err := e.posts.Get(ctx, id)
	if err != nil {
		e.setState(StateError, err)
		return nil, err
	}

	e.mu.Lock()
	e.existing = post
	e.progress = 0
	e.state = StateEditing
	e.lastErr = nil
	e.mu.Unlock()
	return post, nil
}

func (e *Editor) busy() bool {
	return e.state == StateLoading || e.state == StateUploading || e.state == StateSaving
}

// Save validates d, uploads its image if any, then creates or merges the post.
// It returns the post id.
func (e *Editor) Save(ctx context.Context, d Draft) (string, error) {
	if err := d.validate(); err != nil {
		return "", err
	}

	// Kontrol ve durum geçişi aynı kilit altında
	e.mu.Lock()
	switch {
	case e.busy():
		e.mu.Unlock()
		return "", ErrBusy
	case e.state == StateIdle:
		e.mu.Unlock()
		return "", ErrNotEditing
	}
	existing := e.existing
	e.progress = 0
	e.lastErr = nil
	if d.Image != nil {
		e.state = StateUploading
	} else {
		e.state = StateSaving
	}
	e.mu.Unlock()

	if d.Status == "" {
		d.Status = model.PostStatusDraft
	}

	imageURL := ""
	if d.Image != nil {
		url, err := e.uploader.Upload(ctx, ImageKey(d.Image.Filename, e.now()), d.Image.Body, d.Image.Size, d.Image.ContentType, e.reportProgress)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrUpload, err)
			zap.L().Error("feature image upload failed, post not saved", zap.Error(err))
			e.setState(StateError, err)
			return "", err
		}
		imageURL = url
		e.setState(StateSaving, nil)
	}

	id, err := e.write(ctx, existing, d, imageURL)
	if err != nil {
		e.discard(imageURL)
		e.setState(StateError, err)
		return "", err
	}

	e.mu.Lock()
	e.existing = nil
	e.state = StateIdle
	e.mu.Unlock()
	return id, nil
}

// discard removes an image that was uploaded for a write that then failed.
func (e *Editor) discard(url string) {
	if url == "" || e.Remover == nil {
		return
	}
	// istek iptal edilmiş olabilir, temizlik kendi süresiyle çalışır
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Remover.Delete(ctx, url); err != nil {
		zap.L().Warn("Could not delete orphaned feature image", zap.String("url", url), zap.Error(err))
	}
}

func (e *Editor) write(ctx context.Context, existing *model.BlogPost, d Draft, imageURL string) (string, error) {
	if existing != nil {
		// Mevcut kayıt üzerine birleştir
		fields := map[string]any{
			"title":   d.Title,
			"content": d.Content,
			"status":  d.Status,
		}
		if imageURL != "" {
			fields["featureImageUrl"] = imageURL
		}
		if err := e.posts.Update(ctx, existing.ID, fields); err != nil {
			return "", err
		}
		return existing.ID, nil
	}

	post := &model.BlogPost{
		Title:           d.Title,
		Content:         d.Content,
		Status:          d.Status,
		FeatureImageURL: imageURL,
	}
	if user, ok := session.CurrentUser(ctx); ok {
		post.Author = user.Email
	}
	return e.posts.Create(ctx, post)
}

func (e *Editor) reportProgress(pct int) {
	pct = min(max(pct, 0), 100)
	e.mu.Lock()
	if pct < e.progress {
		e.mu.Unlock()
		return
	}
	e.progress = pct
	fn := e.OnProgress
	e.mu.Unlock()

	if fn != nil {
		fn(pct)
	}
}
