package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospilog/internal/models/response_models"
	"hospilog/pkg/utils"
)

// Accounts upload licences, contracts and certificate scans.
var allowedUploads = []string{"application/pdf", "image/png", "image/jpeg"}

var storedName = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.[a-z]{3,4}$`)

const sniffLen = 3072

type UploadServiceInterface interface {
	Save(ctx context.Context, size int64, r io.Reader) (*response_models.UploadResponse, error)
	Resolve(name string) (string, error)
}

type UploadService struct {
	dir      string
	maxBytes int64
	baseURL  string
	logger   *zap.Logger
}

func NewUploadService(dir string, maxBytes int64, baseURL string, logger *zap.Logger) (UploadServiceInterface, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare upload dir: %w", err)
	}
	return &UploadService{
		dir:      dir,
		maxBytes: maxBytes,
		baseURL:  baseURL,
		logger:   logger.Named("uploads"),
	}, nil
}

func (u *UploadService) Save(ctx context.Context, size int64, r io.Reader) (*response_models.UploadResponse, error) {
	if u.maxBytes > 0 && size > u.maxBytes {
		return nil, utils.Invalid("file", fmt.Sprintf("must not exceed %d bytes", u.maxBytes))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", errors.Join(utils.ErrInternal, err))
	}
	if n == 0 {
		return nil, utils.Invalid("file", "is empty")
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !mimetype.EqualsAny(mt.String(), allowedUploads...) {
		return nil, utils.Invalid("file", "only PDF, PNG and JPEG files are accepted")
	}

	name := uuid.NewString() + mt.Extension()
	path := filepath.Join(u.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload: %w", errors.Join(utils.ErrInternal, err))
	}

	src := io.MultiReader(bytes.NewReader(head), r)
	if u.maxBytes > 0 {
		src = io.LimitReader(src, u.maxBytes+1)
	}
	written, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && u.maxBytes > 0 && written > u.maxBytes {
		err = utils.Invalid("file", fmt.Sprintf("must not exceed %d bytes", u.maxBytes))
	}
	if err != nil {
		_ = os.Remove(path)
		var ve *utils.ValidationError
		if errors.As(err, &ve) {
			return nil, err
		}
		return nil, fmt.Errorf("write upload: %w", errors.Join(utils.ErrInternal, err))
	}

	u.logger.Info("file stored", zap.String("name", name), zap.String("mime", mt.String()), zap.Int64("bytes", written))
	return &response_models.UploadResponse{
		Name: name,
		URL:  u.baseURL + "/uploads/" + name,
		Size: written,
	}, nil
}

// Resolve maps a stored name back to its path. Only names produced by Save
// are accepted, which rules out traversal.
func (u *UploadService) Resolve(name string) (string, error) {
	if !storedName.MatchString(name) {
		return "", utils.NotFound("File")
	}
	path := filepath.Join(u.dir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", utils.NotFound("File")
		}
		return "", fmt.Errorf("stat upload: %w", errors.Join(utils.ErrInternal, err))
	}
	return path, nil
}
