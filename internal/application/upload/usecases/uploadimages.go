package usecases

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/fixdesk/fixdesk/internal/infrastructure/storage"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

const (
	DefaultMaxFiles    = 5
	DefaultMaxFileSize = 5 * 1024 * 1024

	msgNoFiles      = "No files uploaded"
	msgTooManyFiles = "Max 5 images allowed"
	msgFileTooLarge = "Max 5MB per file"
	msgOnlyJPGOrPNG = "Only JPG/PNG allowed"
	msgUploadFailed = "Upload failed"
)

// FileStore persists one upload and returns the public URL it is served from
type FileStore interface {
	Save(ctx context.Context, ownerID, originalName string, r io.Reader) (string, error)
	Remove(publicURL string) error
}

// UploadFile is one part of the multipart request. Open is called once.
type UploadFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

type UploadImagesCommand struct {
	UserID string
	Files  []UploadFile
}

type UploadImagesResult struct {
	ImageURLs []string `json:"imageUrls"`
}

type UploadImagesExecutor interface {
	Execute(ctx context.Context, cmd UploadImagesCommand) (*UploadImagesResult, error)
}

type UploadImagesUseCase struct {
	store       FileStore
	maxFiles    int
	maxFileSize int64
	logger      logger.Interface
}

func NewUploadImagesUseCase(store FileStore, maxFiles int, maxFileSize int64, logger logger.Interface) *UploadImagesUseCase {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &UploadImagesUseCase{
		store:       store,
		maxFiles:    maxFiles,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Execute stores every file or none of them
func (uc *UploadImagesUseCase) Execute(ctx context.Context, cmd UploadImagesCommand) (*UploadImagesResult, error) {
	uc.logger.Infow("executing upload images use case", "user_id", cmd.UserID, "files", len(cmd.Files))

	if len(cmd.Files) == 0 {
		return nil, errors.NewValidationError(msgNoFiles)
	}
	if len(cmd.Files) > uc.maxFiles {
		return nil, errors.NewValidationError(msgTooManyFiles)
	}
	for _, f := range cmd.Files {
		if f.Size > uc.maxFileSize {
			return nil, errors.NewValidationError(msgFileTooLarge)
		}
	}

	urls := make([]string, 0, len(cmd.Files))
	for _, f := range cmd.Files {
		url, err := uc.save(ctx, cmd.UserID, f)
		if err != nil {
			uc.discard(urls)
			return nil, err
		}
		urls = append(urls, url)
	}

	uc.logger.Infow("images uploaded", "user_id", cmd.UserID, "count", len(urls))
	return &UploadImagesResult{ImageURLs: urls}, nil
}

func (uc *UploadImagesUseCase) save(ctx context.Context, userID string, f UploadFile) (string, error) {
	rc, err := f.Open()
	if err != nil {
		uc.logger.Errorw("failed to open uploaded file", "name", f.Name, "error", err)
		return "", errors.NewInternalError(msgUploadFailed)
	}
	defer rc.Close()

	url, err := uc.store.Save(ctx, userID, f.Name, rc)
	switch {
	case err == nil:
		return url, nil
	case stderrors.Is(err, storage.ErrUnsupportedType):
		uc.logger.Warnw("rejected upload content type", "name", f.Name, "error", err)
		return "", errors.NewValidationError(msgOnlyJPGOrPNG)
	case stderrors.Is(err, storage.ErrTooLarge):
		return "", errors.NewValidationError(msgFileTooLarge)
	default:
		uc.logger.Errorw("failed to store upload", "name", f.Name, "error", err)
		return "", errors.NewInternalError(msgUploadFailed)
	}
}

func (uc *UploadImagesUseCase) discard(urls []string) {
	for _, url := range urls {
		if err := uc.store.Remove(url); err != nil {
			uc.logger.Warnw("failed to remove partial upload", "url", url, "error", err)
		}
	}
}
