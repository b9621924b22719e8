// Package vars exposes an allowlisted, read-only subset of configuration to
// the frontend as plain text.
package vars

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Inrrs/TG-Drop/internal/config"
	"github.com/Inrrs/TG-Drop/internal/storage"
)

// Handler serves configuration values by name.
type Handler struct {
	cfg *config.Config
}

// NewHandler creates a new vars Handler.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

var allowed = map[string]bool{
	"SYNC_INTERVAL":      true,
	"STORAGE_TYPE":       true,
	"TELEGRAM_BOT_TOKEN": true,
	"TELEGRAM_CHAT_ID":   true,
}

// Get godoc
//
//	@Summary		Read a configuration value
//	@Description	Returns an allowlisted configuration value as plain text. STORAGE_TYPE answers the backend resolved for this request.
//	@Tags			vars
//	@Produce		plain
//	@Param			name			path	string	true	"variable name"
//	@Param			X-Storage-Type	header	string	false	"storage backend override"
//	@Success		200
//	@Failure		403
//	@Failure		404
//	@Router			/vars/{name} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !allowed[name] {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	// STORAGE_TYPE reflects the per-request resolution, not just the
	// configured default.
	if name == "STORAGE_TYPE" {
		backend := storage.Resolve(r.Header.Get("X-Storage-Type"), h.cfg.StorageType)
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(backend))
		return
	}

	value := h.value(name)
	if value == "" {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(value))
}

func (h *Handler) value(name string) string {
	switch name {
	case "SYNC_INTERVAL":
		return h.cfg.SyncInterval
	case "TELEGRAM_BOT_TOKEN":
		return h.cfg.TelegramBotToken
	case "TELEGRAM_CHAT_ID":
		return h.cfg.TelegramChatID
	default:
		return ""
	}
}
