package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Inrrs/TG-Drop/internal/response"
	"github.com/Inrrs/TG-Drop/internal/storage"
)

// Handler holds HTTP handlers for upload and blob retrieval endpoints.
type Handler struct {
	svc            *Service
	blobs          storage.BlobStore
	defaultStorage string
}

// NewHandler creates a new upload Handler. defaultStorage is the process-wide
// STORAGE_TYPE; a request's X-Storage-Type header overrides it.
func NewHandler(svc *Service, blobs storage.BlobStore, defaultStorage string) *Handler {
	return &Handler{svc: svc, blobs: blobs, defaultStorage: defaultStorage}
}

// UploadFile godoc
//
//	@Summary		Upload a file
//	@Description	Stores a file of any type in the backend selected by the X-Storage-Type header (falling back to the configured default).
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file			formData	file	true	"file to upload"
//	@Param			X-Storage-Type	header		string	false	"storage backend override (KV or TELEGRAM)"
//	@Success		200	{object}	Result
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/files/upload [post]
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "file", "/files", false)
}

// UploadImage godoc
//
//	@Summary		Upload an image
//	@Description	Stores an image (max 10MB) in the backend selected by the X-Storage-Type header.
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image			formData	file	true	"image to upload"
//	@Param			X-Storage-Type	header		string	false	"storage backend override (KV or TELEGRAM)"
//	@Success		200	{object}	Result
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/images [post]
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "image", "/images", true)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request, field, basePath string, imageOnly bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		response.BadRequest(w, fmt.Sprintf("no %s field in request", field))
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "could not read uploaded file")
		return
	}

	res, err := h.svc.Store(r.Context(), &Request{
		Payload:   payload,
		Filename:  header.Filename,
		MimeType:  header.Header.Get("Content-Type"),
		Backend:   storage.Resolve(r.Header.Get("X-Storage-Type"), h.defaultStorage),
		Origin:    requestOrigin(r),
		BasePath:  basePath,
		ImageOnly: imageOnly,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, res)
}

// GetImage godoc
//
//	@Summary		Fetch a blob-stored image
//	@Tags			images
//	@Produce		image/*
//	@Param			filename	path	string	true	"generated object key"
//	@Success		200
//	@Failure		404
//	@Router			/images/{filename} [get]
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, meta, err := h.blobs.Get(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Image not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error fetching image", http.StatusInternalServerError)
		return
	}

	contentType := meta.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	_, _ = w.Write(data)
}

// GetFile godoc
//
//	@Summary		Download a blob-stored file
//	@Tags			files
//	@Produce		application/octet-stream
//	@Param			filename	path	string	true	"generated object key"
//	@Success		200
//	@Failure		404
//	@Router			/files/{filename} [get]
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	data, meta, err := h.blobs.Get(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error fetching file", http.StatusInternalServerError)
		return
	}

	contentType := meta.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.Filename))
	_, _ = w.Write(data)
}

// writeError maps service errors to HTTP statuses. Validation failures are
// 400; backend failures keep their originating message on a 500.
func writeError(w http.ResponseWriter, err error) {
	var sizeErr *SizeLimitError
	var typeErr *UnsupportedTypeError
	switch {
	case errors.As(err, &sizeErr), errors.As(err, &typeErr):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, err.Error())
	}
}

// requestOrigin reconstructs the scheme://host origin the client used.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
