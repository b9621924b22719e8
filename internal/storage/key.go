package storage

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

const (
	keyTokenLength   = 13
	keyTokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewObjectKey generates a collision-resistant storage key of the form
// "{millisecond timestamp}-{random token}{.ext}". The extension is taken from
// the original filename, lowercased; a filename without an extension yields a
// key without a suffix.
func NewObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomToken(keyTokenLength), ext)
}

func randomToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = keyTokenAlphabet[rand.Intn(len(keyTokenAlphabet))]
	}
	return string(b)
}
