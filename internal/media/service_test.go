package media

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
)

// pngHeader is the 8-byte PNG signature plus enough padding for sniffing.
var pngHeader = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

type fakeUploader struct {
	key         string
	contentType string
	size        int
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.key = key
	f.contentType = contentType
	f.size = len(data)
	return "https://storage.googleapis.com/fixnest-media/" + key, nil
}

func newTestService(t *testing.T, maxBytes int64) (*Service, *fakeUploader) {
	t.Helper()
	uploads := &fakeUploader{}
	svc, err := NewService(uploads, maxBytes, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, uploads
}

func TestStoreAcceptsPNG(t *testing.T) {
	svc, uploads := newTestService(t, 1<<20)

	upload, err := svc.Store(context.Background(), "hero.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if upload.ContentType != "image/png" {
		t.Fatalf("expected image/png, got %s", upload.ContentType)
	}
	if !strings.HasSuffix(upload.Key, ".png") {
		t.Fatalf("expected .png key, got %s", upload.Key)
	}
	if uploads.size != len(pngHeader) {
		t.Fatalf("expected %d bytes uploaded, got %d", len(pngHeader), uploads.size)
	}
	if upload.URL == "" {
		t.Fatal("expected hosted url")
	}
}

func TestStoreRejectsOversized(t *testing.T) {
	svc, _ := newTestService(t, 32)

	_, err := svc.Store(context.Background(), "big.png", bytes.NewReader(pngHeader))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStoreRejectsNonImage(t *testing.T) {
	svc, _ := newTestService(t, 1<<20)

	_, err := svc.Store(context.Background(), "notes.txt", strings.NewReader("just some text, clearly not an image"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStoreRejectsEmpty(t *testing.T) {
	svc, _ := newTestService(t, 1<<20)

	_, err := svc.Store(context.Background(), "empty.png", bytes.NewReader(nil))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
