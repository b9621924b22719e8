package vars

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/Inrrs/TG-Drop/internal/config"
)

func newTestRouter(cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Get("/vars/{name}", NewHandler(cfg).Get)
	return r
}

func get(t *testing.T, h http.Handler, name, storageHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/vars/"+name, nil)
	if storageHeader != "" {
		req.Header.Set("X-Storage-Type", storageHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGet_AllowlistedValue(t *testing.T) {
	h := newTestRouter(&config.Config{TelegramChatID: "1001234567890"})
	rec := get(t, h, "TELEGRAM_CHAT_ID", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1001234567890", rec.Body.String())
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}

func TestGet_NonAllowlistedIsForbidden(t *testing.T) {
	h := newTestRouter(&config.Config{DatabaseURL: "postgres://secret"})
	rec := get(t, h, "DATABASE_URL", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGet_UnsetValueIsNotFound(t *testing.T) {
	h := newTestRouter(&config.Config{})
	rec := get(t, h, "SYNC_INTERVAL", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGet_StorageTypeReflectsResolution(t *testing.T) {
	tests := []struct {
		name       string
		configType string
		header     string
		want       string
	}{
		{"default", "", "", "KV"},
		{"config default", "TELEGRAM", "", "TELEGRAM"},
		{"header override", "", "TELEGRAM", "TELEGRAM"},
		{"header beats config", "TELEGRAM", "KV", "KV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(&config.Config{StorageType: tt.configType})
			rec := get(t, h, "STORAGE_TYPE", tt.header)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}
