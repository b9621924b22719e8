// Package proxy re-serves Telegram-stored files to clients. It is the only
// path back to raw file bytes: the upstream URLs embed the bot credential and
// are never exposed.
package proxy

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Fetcher downloads a stored file by its platform-internal path.
type Fetcher interface {
	FetchFile(ctx context.Context, filePath string) ([]byte, string, error)
}

// Handler streams relay-stored files with byte-range support.
type Handler struct {
	relay Fetcher
}

// NewHandler creates a new proxy Handler.
func NewHandler(relay Fetcher) *Handler {
	return &Handler{relay: relay}
}

// mimeByExt overrides the upstream content type for known media extensions.
// This table is part of the endpoint's contract.
var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
}

var rangeRe = regexp.MustCompile(`bytes=(\d+)-(\d*)`)

// Serve godoc
//
//	@Summary		Stream a Telegram-stored file
//	@Description	Fetches the file behind a Telegram file path and serves it with byte-range support for seekable playback.
//	@Tags			images
//	@Param			path	query	string	true	"Telegram file path"
//	@Param			Range	header	string	false	"HTTP byte range"
//	@Success		200
//	@Success		206
//	@Failure		400
//	@Failure		500
//	@Router			/images/proxy [get]
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	filePath := r.URL.Query().Get("path")
	if filePath == "" {
		http.Error(w, "Missing file path", http.StatusBadRequest)
		return
	}

	data, upstreamType, err := h.relay.FetchFile(r.Context(), filePath)
	if err != nil {
		http.Error(w, "Error fetching file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	contentType := mimeByExt[strings.ToLower(filepath.Ext(filePath))]
	if contentType == "" {
		contentType = upstreamType
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	size := len(data)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Disposition", "inline")
	// Relay-stored content is immutable once uploaded.
	w.Header().Set("Cache-Control", "public, max-age=31536000")

	if start, end, ok := parseRange(r.Header.Get("Range"), size); ok {
		chunk := data[start : end+1]
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
		w.Header().Set("Content-Length", strconv.Itoa(len(chunk)))
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write(chunk)
		return
	}

	w.Header().Set("Content-Length", strconv.Itoa(size))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(data)
}

// parseRange parses "bytes=<start>-<end?>"; end defaults to the last byte.
// Malformed or out-of-bounds headers are treated as absent rather than
// rejected — media players send odd ranges and expect the full object back.
func parseRange(header string, size int) (start, end int, ok bool) {
	if header == "" || size == 0 {
		return 0, 0, false
	}
	m := rangeRe.FindStringSubmatch(header)
	if m == nil {
		return 0, 0, false
	}

	start, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	end = size - 1
	if m[2] != "" {
		end, err = strconv.Atoi(m[2])
		if err != nil {
			return 0, 0, false
		}
	}
	if end > size-1 {
		end = size - 1
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}
