package content

import (
	"encoding/json"
	"net/http"

	"github.com/Inrrs/TG-Drop/internal/response"
	"github.com/Inrrs/TG-Drop/internal/storage"
)

// Handler holds HTTP handlers for content block endpoints.
type Handler struct {
	svc            *Service
	defaultStorage string
}

// NewHandler creates a new content Handler.
func NewHandler(svc *Service, defaultStorage string) *Handler {
	return &Handler{svc: svc, defaultStorage: defaultStorage}
}

type createRequest struct {
	Type    string `json:"type"    example:"poetry"`
	Title   string `json:"title"   example:"Ode to a Nightingale"`
	Content string `json:"content"`
}

// List godoc
//
//	@Summary		List content blocks
//	@Tags			contents
//	@Produce		json
//	@Success		200	{array}		Block
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/contents [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.svc.List(r.Context())
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}
	response.OK(w, blocks)
}

// Create godoc
//
//	@Summary		Create a content block
//	@Description	Stores a content block; textual types are mirrored to Telegram when the relay backend is selected.
//	@Tags			contents
//	@Accept			json
//	@Produce		json
//	@Param			block			body		createRequest	true	"content block"
//	@Param			X-Storage-Type	header		string			false	"storage backend override (KV or TELEGRAM)"
//	@Success		200	{object}	Block
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/contents [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.Type == "" || req.Title == "" || req.Content == "" {
		response.BadRequest(w, "type, title, and content are required")
		return
	}

	backend := storage.Resolve(r.Header.Get("X-Storage-Type"), h.defaultStorage)
	block, err := h.svc.Create(r.Context(), req.Type, req.Title, req.Content, backend)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}
	response.OK(w, block)
}
