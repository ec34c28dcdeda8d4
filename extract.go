package repack

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
)

// extractMembers reads every regular file out of a ZIP archive held in
// memory. Directory entries are excluded entirely. The report callback is
// invoked after each extracted member with (done, total) counts.
// Cancellation is checked between members.
func extractMembers(ctx context.Context, src []byte, report func(done, total int)) ([]Member, error) {
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceFormat, err)
	}

	total := 0
	for _, f := range zr.File {
		if !isDirEntry(f) {
			total++
		}
	}

	members := make([]Member, 0, total)
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isDirEntry(f) {
			continue
		}
		content, err := readMember(f)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: f.Name, Content: content})
		if report != nil {
			report(len(members), total)
		}
	}
	return members, nil
}

func isDirEntry(f *zip.File) bool {
	return f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/")
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrExtraction, f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrExtraction, f.Name, err)
	}
	return content, nil
}
