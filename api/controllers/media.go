package controllers

import (
	"net/http"

	"github.com/fixnest/fixnest-backend/api/responses"
	"github.com/fixnest/fixnest-backend/internal/media"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/logger"
)

// MediaUpload accepts a multipart form with a single "file" field and stores
// the image, returning the public URL.
func MediaUpload(svc *media.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Cap the whole request body; Store re-checks the file itself.
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+4096)

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "a \"file\" form field is required"))
			return
		}
		defer file.Close()

		upload, err := svc.Store(r.Context(), header.Filename, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, upload)
	}
}
