package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/messages"
	"storefront/internal/observability/metrics"
	"storefront/internal/uploads"
)

type imageHandler struct {
	images   ImageStorage
	maxBytes int64
}

func (h *imageHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formImage(w, r)
	if !ok {
		return
	}
	defer file.Close()

	filename, err := h.images.SaveImage(header.Filename, file)
	if err != nil {
		metrics.ImagesUploadedTotal.WithLabelValues("image", "failure").Inc()
		writeImageError(w, header.Filename, err)
		return
	}

	metrics.ImagesUploadedTotal.WithLabelValues("image", "success").Inc()
	writeJSON(w, http.StatusCreated, dto.UploadResponse{
		Message:  messages.Get("image_uploaded", filename),
		Filename: filename,
	})
}

func (h *imageHandler) getImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	path, err := h.images.Path(filename)
	if err != nil {
		writeImageError(w, filename, err)
		return
	}
	http.ServeFile(w, r, path)
}

func (h *imageHandler) deleteImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if err := h.images.Delete(filename); err != nil {
		if errors.Is(err, domain.ErrImageNotFound) || errors.Is(err, uploads.ErrIllegalFilename) || errors.Is(err, uploads.ErrIllegalExtension) {
			writeImageError(w, filename, err)
			return
		}
		writeInternal(w, "image_delete_failed", err)
		return
	}
	writeMessage(w, http.StatusOK, "image_deleted", filename)
}

// uploadAvatar stores the caller's avatar, replacing any previous one.
func (h *imageHandler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeMissingToken(w)
		return
	}

	file, header, ok := h.formImage(w, r)
	if !ok {
		return
	}
	defer file.Close()

	filename, err := h.images.SaveAvatar(claims.UserID, header.Filename, file)
	if err != nil {
		metrics.ImagesUploadedTotal.WithLabelValues("avatar", "failure").Inc()
		writeImageError(w, header.Filename, err)
		return
	}

	metrics.ImagesUploadedTotal.WithLabelValues("avatar", "success").Inc()
	writeJSON(w, http.StatusOK, dto.UploadResponse{
		Message:  messages.Get("avatar_uploaded", filename),
		Filename: filename,
	})
}

func (h *imageHandler) getAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r, "userID")
	if !ok {
		writeMessage(w, http.StatusNotFound, "user_not_found")
		return
	}
	filename, err := h.images.FindAvatar(userID)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "avatar_not_found")
		return
	}
	path, err := h.images.Path(filename)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "avatar_not_found")
		return
	}
	http.ServeFile(w, r, path)
}

// formImage pulls the uploaded file out of the multipart form, holding the
// body below the configured size cap.
func (h *imageHandler) formImage(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeMessage(w, http.StatusBadRequest, "image_too_large")
		} else {
			writeMessage(w, http.StatusBadRequest, "field_blank", "image")
		}
		return nil, nil, false
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "field_blank", "image")
		return nil, nil, false
	}
	return file, header, true
}

func writeImageError(w http.ResponseWriter, filename string, err error) {
	switch {
	case errors.Is(err, uploads.ErrIllegalExtension):
		ext := strings.ToLower(filepath.Ext(filename))
		writeMessage(w, http.StatusBadRequest, "image_illegal_extension", ext)
	case errors.Is(err, uploads.ErrIllegalFilename):
		writeMessage(w, http.StatusBadRequest, "image_illegal_filename", filename)
	case errors.Is(err, domain.ErrImageNotFound):
		writeMessage(w, http.StatusNotFound, "image_not_found", filename)
	default:
		writeInternal(w, "failed_to_store_image", err)
	}
}
