package repack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Container geometry. The output is a sequence of 512-byte blocks: one
// header block per record, content rounded up to the block boundary, and
// two all-zero blocks as the end-of-archive marker.
const (
	blockSize = 512
	nameSize  = 100

	// maxMemberSize is the largest content size representable in the
	// 11-digit octal size field.
	maxMemberSize = 1<<33 - 1
)

// Header field offsets.
const (
	offName     = 0
	offMode     = 100
	offUID      = 108
	offGID      = 116
	offSize     = 124
	offModTime  = 136
	offChecksum = 148
	offTypeflag = 156
)

// Constant header fields. All records are regular files owned by root
// with 0644 permissions.
const (
	fieldMode    = "0000644\x00"
	fieldOwner   = "0000000\x00"
	typeRegular  = '0'
	aliasSuffix  = ".duplicates.json"
	checksumMask = "        "
)

// aliasManifest is the payload of a synthetic record listing the member
// names collapsed into the stored record it follows.
type aliasManifest struct {
	Duplicates   []string `json:"duplicates"`
	OriginalFile string   `json:"originalFile"`
}

// framer serializes UniqueMembers into the container format. The
// modification time is captured once at construction and reused for every
// record in the conversion.
type framer struct {
	modTime int64
}

func newFramer(now time.Time) *framer {
	return &framer{modTime: now.Unix()}
}

// frame serializes the members in order, emitting an alias-manifest record
// immediately after any record with more than one alias, and terminates
// the container with two zero blocks. The result length is always a
// multiple of blockSize.
func (f *framer) frame(uniques []UniqueMember) ([]byte, error) {
	var buf bytes.Buffer
	for _, u := range uniques {
		if len(u.Name) > nameSize {
			return nil, fmt.Errorf("%w: %q", ErrNameTooLong, u.Name)
		}
		if err := f.writeRecord(&buf, u.Name, u.Content); err != nil {
			return nil, err
		}
		if len(u.Aliases) > 1 {
			payload, err := json.Marshal(aliasManifest{
				Duplicates:   u.Aliases[1:],
				OriginalFile: u.Aliases[0],
			})
			if err != nil {
				return nil, err
			}
			if err := f.writeRecord(&buf, truncateName(u.Name+aliasSuffix), payload); err != nil {
				return nil, err
			}
		}
	}
	buf.Write(make([]byte, 2*blockSize))
	return buf.Bytes(), nil
}

// writeRecord emits one header block, the content, and padding up to the
// next block boundary. Content already block-aligned gets no padding.
func (f *framer) writeRecord(buf *bytes.Buffer, name string, content []byte) error {
	if int64(len(content)) > maxMemberSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrSizeOverflow, name, len(content))
	}

	hdr := make([]byte, blockSize)
	copy(hdr[offName:offName+nameSize], name)
	copy(hdr[offMode:], fieldMode)
	copy(hdr[offUID:], fieldOwner)
	copy(hdr[offGID:], fieldOwner)
	writeOctal(hdr[offSize:offSize+12], int64(len(content)))
	writeOctal(hdr[offModTime:offModTime+12], f.modTime)
	hdr[offTypeflag] = typeRegular

	// The checksum is the byte sum of the header with the checksum field
	// itself counted as ASCII spaces, stored as six octal digits, NUL,
	// space.
	copy(hdr[offChecksum:offChecksum+8], checksumMask)
	var sum int64
	for _, b := range hdr {
		sum += int64(b)
	}
	copy(hdr[offChecksum:offChecksum+7], fmt.Sprintf("%06o\x00", sum))

	buf.Write(hdr)
	buf.Write(content)
	if rem := len(content) % blockSize; rem != 0 {
		buf.Write(make([]byte, blockSize-rem))
	}
	return nil
}

// writeOctal fills a 12-byte numeric field: eleven zero-padded octal
// digits and a trailing space.
func writeOctal(field []byte, v int64) {
	copy(field, fmt.Sprintf("%011o ", v))
}

// truncateName clips synthetic record names to the header name field.
// Member names are validated before framing; only derived manifest names
// can exceed the field.
func truncateName(name string) string {
	if len(name) > nameSize {
		return name[:nameSize]
	}
	return name
}
