package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	data        []byte
	contentType string
	err         error
	lastPath    string
}

func (f *fakeFetcher) FetchFile(ctx context.Context, filePath string) ([]byte, string, error) {
	f.lastPath = filePath
	return f.data, f.contentType, f.err
}

func serve(t *testing.T, fetcher *fakeFetcher, target, rangeHeader string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(fetcher)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	rec := httptest.NewRecorder()
	h.Serve(rec, req)
	return rec
}

func payload(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func TestServe_MissingPath(t *testing.T) {
	fetcher := &fakeFetcher{}
	rec := serve(t, fetcher, "/images/proxy", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fetcher.lastPath, "no upstream fetch without a path")
}

func TestServe_FullResponse(t *testing.T) {
	data := payload(1000)
	fetcher := &fakeFetcher{data: data}
	rec := serve(t, fetcher, "/images/proxy?path=photos/abc.png", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "photos/abc.png", fetcher.lastPath)
	assert.Equal(t, data, rec.Body.Bytes())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1000", rec.Header().Get("Content-Length"))
	assert.Equal(t, "bytes", rec.Header().Get("Accept-Ranges"))
	assert.Equal(t, "inline", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "public, max-age=31536000", rec.Header().Get("Cache-Control"))
}

func TestServe_RangeRequest(t *testing.T) {
	data := payload(1000)
	fetcher := &fakeFetcher{data: data}
	rec := serve(t, fetcher, "/images/proxy?path=photos/abc.png", "bytes=100-199")

	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, data[100:200], rec.Body.Bytes())
	assert.Len(t, rec.Body.Bytes(), 100)
	assert.Equal(t, "bytes 100-199/1000", rec.Header().Get("Content-Range"))
	assert.Equal(t, "100", rec.Header().Get("Content-Length"))
	assert.Equal(t, "bytes", rec.Header().Get("Accept-Ranges"))
}

func TestServe_OpenEndedRange(t *testing.T) {
	data := payload(1000)
	fetcher := &fakeFetcher{data: data}
	rec := serve(t, fetcher, "/images/proxy?path=clip.mp4", "bytes=900-")

	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, data[900:], rec.Body.Bytes())
	assert.Equal(t, "bytes 900-999/1000", rec.Header().Get("Content-Range"))
}

func TestServe_RangeEndClamped(t *testing.T) {
	data := payload(100)
	fetcher := &fakeFetcher{data: data}
	rec := serve(t, fetcher, "/images/proxy?path=clip.mp4", "bytes=50-5000")

	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, data[50:], rec.Body.Bytes())
	assert.Equal(t, "bytes 50-99/100", rec.Header().Get("Content-Range"))
}

func TestServe_MalformedRangesFallThroughToFullResponse(t *testing.T) {
	headers := []string{
		"bytes=abc-def",
		"bytes=-",
		"items=0-100",
		"bytes=",
		"bytes=-500", // suffix ranges are not supported
		"garbage",
	}
	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			fetcher := &fakeFetcher{data: payload(1000)}
			rec := serve(t, fetcher, "/images/proxy?path=clip.mp4", header)

			assert.Equal(t, http.StatusOK, rec.Code, "malformed Range must never be rejected")
			assert.Len(t, rec.Body.Bytes(), 1000)
		})
	}
}

func TestServe_RangeStartPastEnd(t *testing.T) {
	fetcher := &fakeFetcher{data: payload(100)}
	rec := serve(t, fetcher, "/images/proxy?path=clip.mp4", "bytes=2000-")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Body.Bytes(), 100)
}

func TestServe_ContentTypeInference(t *testing.T) {
	tests := []struct {
		path     string
		upstream string
		want     string
	}{
		{"a.jpg", "application/octet-stream", "image/jpeg"},
		{"a.JPEG", "", "image/jpeg"},
		{"a.png", "", "image/png"},
		{"a.gif", "", "image/gif"},
		{"a.webp", "", "image/webp"},
		{"a.mp4", "", "video/mp4"},
		{"a.webm", "", "video/webm"},
		{"a.avi", "", "video/x-msvideo"},
		{"a.mov", "", "video/quicktime"},
		{"a.pdf", "application/pdf", "application/pdf"},
		{"a.bin", "", "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			fetcher := &fakeFetcher{data: []byte("x"), contentType: tt.upstream}
			rec := serve(t, fetcher, "/images/proxy?path="+tt.path, "")
			assert.Equal(t, tt.want, rec.Header().Get("Content-Type"))
		})
	}
}

func TestServe_UpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("upstream status 502")}
	rec := serve(t, fetcher, "/images/proxy?path=clip.mp4", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream status 502")
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		header             string
		size               int
		wantStart, wantEnd int
		wantOK             bool
	}{
		{"bytes=0-0", 10, 0, 0, true},
		{"bytes=0-9", 10, 0, 9, true},
		{"bytes=5-", 10, 5, 9, true},
		{"bytes=5-100", 10, 5, 9, true},
		{"bytes=10-", 10, 0, 0, false},
		{"", 10, 0, 0, false},
		{"bytes=0-", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.header, tt.size), func(t *testing.T) {
			start, end, ok := parseRange(tt.header, tt.size)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantStart, start)
				assert.Equal(t, tt.wantEnd, end)
			}
		})
	}
}
