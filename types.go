package repack

import (
	"fmt"
	"time"
)

// Algorithm identifies the compression codec applied to the framed container.
type Algorithm uint8

const (
	// AlgorithmGzip compresses with deflate in gzip framing.
	AlgorithmGzip Algorithm = iota

	// AlgorithmBzip2 compresses with the Burrows-Wheeler bzip2 coder.
	AlgorithmBzip2

	// AlgorithmBrotli compresses with brotli, falling back to gzip at
	// maximum level if the brotli encoder fails.
	AlgorithmBrotli

	// AlgorithmXz compresses with LZMA2 in xz framing.
	AlgorithmXz
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmGzip:
		return "gzip"
	case AlgorithmBzip2:
		return "bzip2"
	case AlgorithmBrotli:
		return "brotli"
	case AlgorithmXz:
		return "xz"
	default:
		return "unknown"
	}
}

// Extension returns the conventional file extension for a compressed tar
// produced with this algorithm.
func (a Algorithm) Extension() string {
	switch a {
	case AlgorithmBzip2:
		return ".tar.bz2"
	case AlgorithmBrotli:
		return ".tar.br"
	case AlgorithmXz:
		return ".tar.xz"
	default:
		return ".tar.gz"
	}
}

// ParseAlgorithm converts an algorithm name to its Algorithm value.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "gzip":
		return AlgorithmGzip, nil
	case "bzip2":
		return AlgorithmBzip2, nil
	case "brotli":
		return AlgorithmBrotli, nil
	case "xz":
		return AlgorithmXz, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// Member is one regular file extracted from the source archive.
// Directory entries are never materialized as members.
type Member struct {
	// Name is the member path as recorded in the source archive.
	Name string

	// Content is the member's uncompressed bytes.
	Content []byte
}

// UniqueMember is one stored record in the output container: the
// representative of a group of byte-identical members.
type UniqueMember struct {
	// Name is the first-seen name of the content.
	Name string

	// Content is the stored bytes, identical for every alias.
	Content []byte

	// Aliases lists every member name that carried this content, in
	// encounter order. Aliases[0] == Name and the slice is never empty;
	// names beyond the first are not re-stored.
	Aliases []string
}

// Result is the outcome of a successful conversion.
type Result struct {
	// Compressed is the compressed container.
	Compressed []byte

	// OriginalChecksum is the hex SHA-256 of the source archive bytes.
	OriginalChecksum string

	// CompressedChecksum is the hex SHA-256 of Compressed. Empty when the
	// integrity check is disabled.
	CompressedChecksum string

	// Ratio is the space saving in percent:
	// (OriginalSize - CompressedSize) / OriginalSize * 100.
	// May be negative for incompressible input.
	Ratio float64

	// OriginalSize is the size of the source archive in bytes.
	OriginalSize uint64

	// CompressedSize is len(Compressed).
	CompressedSize uint64

	// Elapsed is the wall-clock duration of the conversion.
	Elapsed time.Duration

	// Algorithm is the codec that produced Compressed.
	Algorithm Algorithm

	// DuplicateSummaries describes the first few duplicate groups in
	// human-readable form, e.g. "2 duplicates of a.txt". Capped at 5
	// entries; every group is deduplicated regardless of the cap.
	DuplicateSummaries []string
}
