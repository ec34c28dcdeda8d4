package repack

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsuregar/repack/internal/testutil"
)

func TestExtractMembers(t *testing.T) {
	t.Parallel()

	t.Run("preserves order and content", func(t *testing.T) {
		t.Parallel()
		src := testutil.BuildZip(t, []testutil.ZipEntry{
			{Name: "one.txt", Body: []byte("1")},
			{Name: "two.txt", Body: []byte("2")},
			{Name: "three.txt", Body: []byte("3")},
		})
		members, err := extractMembers(context.Background(), src, nil)
		require.NoError(t, err)
		require.Len(t, members, 3)
		assert.Equal(t, "one.txt", members[0].Name)
		assert.Equal(t, "two.txt", members[1].Name)
		assert.Equal(t, "three.txt", members[2].Name)
		assert.Equal(t, []byte("2"), members[1].Content)
	})

	t.Run("excludes directories", func(t *testing.T) {
		t.Parallel()
		src := testutil.BuildZip(t, []testutil.ZipEntry{
			{Name: "dir/"},
			{Name: "dir/file.txt", Body: []byte("x")},
			{Name: "empty-dir/"},
		})
		members, err := extractMembers(context.Background(), src, nil)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "dir/file.txt", members[0].Name)
	})

	t.Run("reports member counts", func(t *testing.T) {
		t.Parallel()
		src := testutil.BuildZip(t, []testutil.ZipEntry{
			{Name: "dir/"},
			{Name: "a", Body: []byte("a")},
			{Name: "b", Body: []byte("b")},
		})
		var dones []int
		var totals []int
		_, err := extractMembers(context.Background(), src, func(done, total int) {
			dones = append(dones, done)
			totals = append(totals, total)
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, dones)
		assert.Equal(t, []int{2, 2}, totals, "directories excluded from the total")
	})

	t.Run("invalid archive", func(t *testing.T) {
		t.Parallel()
		_, err := extractMembers(context.Background(), []byte("definitely not a zip"), nil)
		assert.ErrorIs(t, err, ErrSourceFormat)
	})

	t.Run("corrupted member", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.CreateHeader(&zip.FileHeader{Name: "stored.bin", Method: zip.Store})
		require.NoError(t, err)
		_, err = w.Write([]byte("stored-content"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		// Flip a content byte so the CRC check fails at read time. Stored
		// data starts right after the 30-byte local header plus the name.
		src := buf.Bytes()
		src[30+len("stored.bin")] ^= 0xFF

		_, err = extractMembers(context.Background(), src, nil)
		assert.ErrorIs(t, err, ErrExtraction)
	})
}
