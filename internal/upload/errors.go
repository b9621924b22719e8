package upload

import "fmt"

// SizeLimitError is returned when an upload exceeds its per-category cap.
type SizeLimitError struct {
	Category string // "image", "video", or "file"
	Limit    int64
	Actual   int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("%s size exceeds the %dMB limit (got %.2fMB)",
		e.Category, e.Limit/(1<<20), float64(e.Actual)/(1<<20))
}

// UnsupportedTypeError is returned when an endpoint restricted to one MIME
// category receives something else.
type UnsupportedTypeError struct {
	MimeType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: only images can be uploaded here", e.MimeType)
}
