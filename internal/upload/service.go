// Package upload implements file uploads over the tiered storage backends:
// the S3-compatible blob store and the Telegram relay.
package upload

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/Inrrs/TG-Drop/internal/storage"
	"github.com/Inrrs/TG-Drop/internal/telegram"
)

// Size caps enforced before any backend call.
const (
	MaxImageSize = 10 << 20 // 10MB
	MaxFileSize  = 50 << 20 // 50MB, videos and everything else

	// DirectSizeLimit is the largest payload for which a direct Telegram
	// file link is resolved. Above it the extra getFile round trip is
	// wasted, so the message permalink is returned instead.
	DirectSizeLimit = 20 << 20 // 20MB
)

// Relay is the subset of the Telegram client the upload service needs.
type Relay interface {
	SendFile(ctx context.Context, payload []byte, filename string) (*telegram.SendResult, error)
	GetFile(ctx context.Context, fileID string) (string, error)
	MessageLink(messageID int64) string
}

// Service contains the upload business logic: validation, backend dispatch,
// and the permalink fallback policy for relay uploads.
type Service struct {
	blobs storage.BlobStore
	relay Relay
}

// NewService creates a new upload Service.
func NewService(blobs storage.BlobStore, relay Relay) *Service {
	return &Service{blobs: blobs, relay: relay}
}

// Request describes one upload.
type Request struct {
	Payload  []byte
	Filename string
	MimeType string
	Backend  storage.Backend
	Origin   string // request origin, e.g. "https://example.com"
	BasePath string // public route prefix for blob-backed objects
	// ImageOnly rejects any non-image MIME type before storing.
	ImageOnly bool
}

// Result is the response body for a successful upload. The telegram fields
// are only present for relay-backed uploads.
type Result struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"type"`

	TelegramType string `json:"telegram_type,omitempty"`
	FileID       string `json:"file_id,omitempty"`
}

// Store validates the upload and writes it to the requested backend.
func (s *Service) Store(ctx context.Context, req *Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	size := int64(len(req.Payload))
	res := &Result{
		Filename: req.Filename,
		Size:     size,
		MimeType: req.MimeType,
	}

	if req.Backend == storage.BackendTelegram {
		out, err := s.storeRelay(ctx, req)
		if err != nil {
			return nil, err
		}
		res.URL = out.url
		res.TelegramType = string(out.kind)
		res.FileID = out.fileID
		return res, nil
	}

	key := storage.NewObjectKey(req.Filename)
	meta := storage.ObjectMeta{
		ContentType: req.MimeType,
		Filename:    req.Filename,
		Size:        size,
	}
	if err := s.blobs.Put(ctx, key, req.Payload, meta); err != nil {
		return nil, fmt.Errorf("store %q: %w", req.Filename, err)
	}
	res.URL = originOf(req.Origin) + req.BasePath + "/" + key
	return res, nil
}

// validate enforces the MIME restriction and per-category size caps without
// side effects.
func validate(req *Request) error {
	mime := strings.ToLower(req.MimeType)
	if req.ImageOnly && !strings.HasPrefix(mime, "image/") {
		return &UnsupportedTypeError{MimeType: req.MimeType}
	}

	category, limit := "file", int64(MaxFileSize)
	switch {
	case strings.HasPrefix(mime, "image/"):
		category, limit = "image", MaxImageSize
	case strings.HasPrefix(mime, "video/"):
		category = "video"
	}

	if size := int64(len(req.Payload)); size > limit {
		return &SizeLimitError{Category: category, Limit: limit, Actual: size}
	}
	return nil
}

type relayOutcome struct {
	url    string
	kind   telegram.Kind
	fileID string
}

// storeRelay uploads through Telegram. Files over DirectSizeLimit skip link
// resolution entirely; for the rest, a failed resolution degrades to the
// message permalink instead of failing an upload that already succeeded.
func (s *Service) storeRelay(ctx context.Context, req *Request) (*relayOutcome, error) {
	sent, err := s.relay.SendFile(ctx, req.Payload, req.Filename)
	if err != nil {
		return nil, err
	}

	if int64(len(req.Payload)) > DirectSizeLimit {
		return s.permalink(sent), nil
	}

	if sent.FileID == "" {
		log.Printf("upload: no file_id in telegram response for %q, using message link", req.Filename)
		return s.permalink(sent), nil
	}

	path, err := s.relay.GetFile(ctx, sent.FileID)
	if err != nil {
		log.Printf("upload: resolving direct link for %q failed, using message link: %v", req.Filename, err)
		return s.permalink(sent), nil
	}

	return &relayOutcome{
		url:    telegram.ProxyURL(req.Origin, path),
		kind:   sent.Kind,
		fileID: sent.FileID,
	}, nil
}

// permalink builds the message-link form used for oversized files and failed
// link resolutions. Photos are reported as documents on this path; with the
// image cap below DirectSizeLimit that branch never fires for oversized
// uploads, but it is kept for the resolution-failure case. Videos and
// documents keep their file_id on this path even though the URL is a message
// link — clients use it to tell relay uploads apart; only photos drop it.
func (s *Service) permalink(sent *telegram.SendResult) *relayOutcome {
	kind := telegram.KindDocument
	if sent.Kind == telegram.KindVideo {
		kind = telegram.KindVideo
	}
	fileID := sent.FileID
	if sent.Kind == telegram.KindPhoto {
		fileID = ""
	}
	return &relayOutcome{
		url:    s.relay.MessageLink(sent.MessageID),
		kind:   kind,
		fileID: fileID,
	}
}

// originOf extracts "scheme://host" from a request URL; an unparsable value
// yields an empty origin and therefore a relative public URL.
func originOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
