// Package testutil builds ZIP fixtures for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"testing"
)

// ZipEntry is one entry to place in a test archive. A name ending in "/"
// produces a directory entry.
type ZipEntry struct {
	Name string
	Body []byte
}

// BuildZip assembles an in-memory ZIP archive with entries in the given
// order.
func BuildZip(tb testing.TB, entries []ZipEntry) []byte {
	tb.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			tb.Fatalf("create zip entry %s: %v", e.Name, err)
		}
		if len(e.Body) > 0 {
			if _, err := w.Write(e.Body); err != nil {
				tb.Fatalf("write zip entry %s: %v", e.Name, err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("close zip writer: %v", err)
	}
	return buf.Bytes()
}

// EmptyZip returns a valid archive containing no entries.
func EmptyZip(tb testing.TB) []byte {
	tb.Helper()
	return BuildZip(tb, nil)
}
