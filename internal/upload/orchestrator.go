package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/rijan-rayamajhi/gem-business/internal/config"
	"github.com/rijan-rayamajhi/gem-business/internal/storage"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// Rule bounds one upload slot: how many files, how large, what MIME prefix.
type Rule struct {
	Field      string
	MinCount   int
	MaxCount   int
	MimePrefix string
}

// Orchestrator validates multipart files and pushes them to the object store
// one at a time, in caller order. Already-stored files are not removed when a
// later file fails; that leak is the accepted baseline.
type Orchestrator struct {
	store storage.ObjectStore
	cfg   config.UploadConfig
}

// NewOrchestrator constructs the orchestrator.
func NewOrchestrator(store storage.ObjectStore, cfg config.UploadConfig) *Orchestrator {
	return &Orchestrator{store: store, cfg: cfg}
}

// Validate checks count, size and MIME type of the files for one rule
// before any byte is stored.
func (o *Orchestrator) Validate(files []*multipart.FileHeader, rule Rule) error {
	if len(files) < rule.MinCount {
		return apperrors.NewValidationError(
			fmt.Sprintf("%s requires at least %d file(s)", rule.Field, rule.MinCount), nil)
	}
	if rule.MaxCount > 0 && len(files) > rule.MaxCount {
		return apperrors.NewValidationError(
			fmt.Sprintf("%s allows at most %d file(s)", rule.Field, rule.MaxCount), nil)
	}
	for _, file := range files {
		if err := o.validateFile(file, rule); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) validateFile(file *multipart.FileHeader, rule Rule) error {
	contentType := file.Header.Get("Content-Type")
	if rule.MimePrefix != "" && !strings.HasPrefix(contentType, rule.MimePrefix) {
		return apperrors.NewValidationError(
			fmt.Sprintf("%s must be %s*, got %s", file.Filename, rule.MimePrefix, contentType), nil)
	}
	if file.Size > o.maxBytesFor(contentType) {
		return apperrors.NewValidationError(
			fmt.Sprintf("%s exceeds the size limit", file.Filename), nil)
	}
	return nil
}

// Store uploads the files sequentially and returns their public URLs in the
// same order the caller supplied them. Prefix scopes the object paths, e.g.
// "listings/<owner-id>".
func (o *Orchestrator) Store(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := o.storeOne(ctx, prefix, file)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (o *Orchestrator) storeOne(ctx context.Context, prefix string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", file.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file.Filename, err)
	}

	path := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), filepath.Ext(file.Filename))
	return o.store.Put(ctx, path, file.Header.Get("Content-Type"), data)
}

func (o *Orchestrator) maxBytesFor(contentType string) int64 {
	if strings.HasPrefix(contentType, "video/") {
		return o.cfg.MaxVideoBytes
	}
	return o.cfg.MaxImageBytes
}
