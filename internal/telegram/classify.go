package telegram

import (
	"path/filepath"
	"strings"
)

// Kind is the Telegram media category a file is sent as. It decides both the
// Bot API send method and which response field carries the file id.
type Kind string

const (
	KindPhoto    Kind = "photo"
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".bmp": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".webm": true,
}

// Classify maps a filename to its media kind by extension, case-insensitively.
// Anything that is neither a known image nor a known video type is sent as a
// document.
func Classify(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageExts[ext]:
		return KindPhoto
	case videoExts[ext]:
		return KindVideo
	default:
		return KindDocument
	}
}

// sendMethod is the Bot API method used to upload this kind of file.
func (k Kind) sendMethod() string {
	switch k {
	case KindPhoto:
		return "sendPhoto"
	case KindVideo:
		return "sendVideo"
	default:
		return "sendDocument"
	}
}

// fieldName is the multipart form field the payload is attached under.
func (k Kind) fieldName() string {
	return string(k)
}
