package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		headerValue string
		configValue string
		want        Backend
	}{
		{"header wins over config", "TELEGRAM", "KV", BackendTelegram},
		{"header blob wins over config telegram", "KV", "TELEGRAM", BackendBlob},
		{"config used when header empty", "", "TELEGRAM", BackendTelegram},
		{"default when both empty", "", "", BackendBlob},
		{"unknown header falls back to blob", "S3", "", BackendBlob},
		{"match is case-sensitive", "telegram", "", BackendBlob},
		{"unknown config falls back to blob", "", "telegram", BackendBlob},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.headerValue, tt.configValue))
		})
	}
}

func TestNewObjectKey_Format(t *testing.T) {
	keyRe := regexp.MustCompile(`^\d{13}-[0-9a-z]{13}\.jpg$`)
	key := NewObjectKey("holiday.jpg")
	assert.Regexp(t, keyRe, key)
}

func TestNewObjectKey_LowercasesExtension(t *testing.T) {
	key := NewObjectKey("REPORT.PDF")
	assert.Regexp(t, `\.pdf$`, key)
}

func TestNewObjectKey_KeepsLastExtensionOnly(t *testing.T) {
	key := NewObjectKey("archive.tar.gz")
	assert.Regexp(t, `^\d+-[0-9a-z]{13}\.gz$`, key)
}

func TestNewObjectKey_NoExtension(t *testing.T) {
	key := NewObjectKey("README")
	assert.Regexp(t, `^\d+-[0-9a-z]{13}$`, key)
}

func TestNewObjectKey_Unique(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		key := NewObjectKey("same-name.png")
		if seen[key] {
			t.Fatalf("duplicate key after %d iterations: %s", i, key)
		}
		seen[key] = true
	}
}
