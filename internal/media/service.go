package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"

	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/metrics"
	"github.com/google/uuid"
)

// extensionByType maps the accepted image types to their object key
// extension. Anything outside this set is rejected.
var extensionByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload describes a stored image.
type Upload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// uploader is the slice of the GCS client the service needs.
type uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Service validates and stores admin image uploads.
type Service struct {
	storage  uploader
	maxBytes int64
	metrics  *metrics.DomainMetrics
}

// NewService constructs the media service.
func NewService(storage uploader, maxBytes int64, domainMetrics *metrics.DomainMetrics) (*Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage client required")
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &Service{storage: storage, maxBytes: maxBytes, metrics: domainMetrics}, nil
}

// Store reads at most maxBytes from body, verifies the content by its magic
// bytes (the declared type alone is not trusted), and streams it to storage
// under a fresh uuid key.
func (s *Service) Store(ctx context.Context, filename string, body io.Reader) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read upload")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("image exceeds the %d byte limit", s.maxBytes))
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image is empty")
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensionByType[contentType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unsupported image type %s; use JPEG, PNG or WebP", contentType))
	}
	// Keep the submitted extension only when it agrees with the sniffed type.
	if submitted := path.Ext(filename); submitted == ext {
		ext = submitted
	}

	key := uuid.NewString() + ext
	url, err := s.storage.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "gcs: upload image")
	}

	if s.metrics != nil {
		s.metrics.IncMediaUpload(contentType)
	}
	return &Upload{
		Key:         key,
		URL:         url,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}, nil
}
