package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yeshua-high/school-site-api/pkg/errors"
	"github.com/yeshua-high/school-site-api/pkg/storage"
)

var extensionByMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// MediaConfig bounds what the upload endpoint accepts.
type MediaConfig struct {
	UploadDir    string
	MaxBytes     int64
	AllowedMIMEs []string
}

// MediaService stores uploaded images in object storage. The content type
// is sniffed from the payload rather than trusted from the request, and
// stored names are generated so an upload can never clobber another.
type MediaService struct {
	store   storage.ObjectStorage
	metrics *MetricsService
	config  MediaConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewMediaService constructs a MediaService.
func NewMediaService(store storage.ObjectStorage, metrics *MetricsService, config MediaConfig, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MaxBytes <= 0 {
		config.MaxBytes = 5 << 20
	}
	if len(config.AllowedMIMEs) == 0 {
		config.AllowedMIMEs = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	}
	return &MediaService{store: store, metrics: metrics, config: config, logger: logger, now: time.Now}
}

// UploadResult reports where an accepted upload landed.
type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	MIMEType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// Upload validates and stores a multipart file.
func (s *MediaService) Upload(ctx context.Context, header *multipart.FileHeader) (*UploadResult, error) {
	if header == nil {
		return nil, errors.Clone(errors.ErrValidation, "file is required")
	}
	if header.Size > s.config.MaxBytes {
		s.metrics.RecordUpload(false, 0)
		return nil, errors.Clone(errors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", s.config.MaxBytes))
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to open upload")
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to read upload")
	}
	mimeType := normalizeMIME(http.DetectContentType(head[:n]))
	if !s.allowed(mimeType) {
		s.metrics.RecordUpload(false, 0)
		return nil, errors.Clone(errors.ErrValidation, fmt.Sprintf("unsupported file type %s", mimeType))
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to rewind upload")
	}

	key := s.objectKey(mimeType)
	url, err := s.store.Put(ctx, key, mimeType, file, header.Size)
	if err != nil {
		s.metrics.RecordUpload(false, 0)
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to store upload")
	}

	s.metrics.RecordUpload(true, header.Size)
	s.logger.Info("stored upload",
		zap.String("key", key),
		zap.String("mime_type", mimeType),
		zap.Int64("size", header.Size))

	return &UploadResult{URL: url, Key: key, MIMEType: mimeType, Size: header.Size}, nil
}

// Remove deletes a stored object. Missing objects are not an error so the
// admin console can retry deletes safely.
func (s *MediaService) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errors.Clone(errors.ErrValidation, "key is required")
	}
	if !validObjectKey(key) {
		return errors.Clone(errors.ErrValidation, "invalid object key")
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to delete upload")
	}
	return nil
}

// objectKey builds `<upload-dir>/<unix-ms>-<uuid-fragment>.<ext>`.
func (s *MediaService) objectKey(mimeType string) string {
	ext := extensionByMIME[mimeType]
	fragment := strings.SplitN(uuid.NewString(), "-", 2)[0]
	name := fmt.Sprintf("%d-%s.%s", s.now().UnixMilli(), fragment, ext)
	if s.config.UploadDir == "" {
		return name
	}
	return path.Join(s.config.UploadDir, name)
}

func (s *MediaService) allowed(mimeType string) bool {
	for _, allowed := range s.config.AllowedMIMEs {
		if strings.EqualFold(allowed, mimeType) {
			return true
		}
	}
	return false
}

// validObjectKey rejects keys that could address anything outside the
// flat upload namespace, such as absolute paths or dot-dot segments.
func validObjectKey(key string) bool {
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

func normalizeMIME(detected string) string {
	if idx := strings.IndexByte(detected, ';'); idx >= 0 {
		detected = detected[:idx]
	}
	return strings.TrimSpace(strings.ToLower(detected))
}
