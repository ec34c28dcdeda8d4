package repack

import "errors"

// Sentinel errors. Every failure returned by Convert wraps exactly one of
// these; callers classify with errors.Is.
var (
	// ErrSourceFormat is returned when the input is not a parseable ZIP archive.
	ErrSourceFormat = errors.New("repack: not a valid zip archive")

	// ErrExtraction is returned when a specific member fails to decompress
	// from the source archive.
	ErrExtraction = errors.New("repack: member extraction failed")

	// ErrCompression is returned when the output compressor fails.
	ErrCompression = errors.New("repack: compression failed")

	// ErrIntegrity is returned when checksum computation fails. Integrity
	// reporting is an explicit feature when enabled, so this is fatal to the
	// job rather than silently skipped.
	ErrIntegrity = errors.New("repack: checksum computation failed")

	// ErrNameTooLong is returned when a member name exceeds the 100-byte
	// header name field. Oversized names are rejected rather than silently
	// truncated, since truncation can collapse distinct names.
	ErrNameTooLong = errors.New("repack: member name exceeds 100 bytes")

	// ErrSizeOverflow is returned when member content exceeds the 11-digit
	// octal size field (8 GiB - 1 per member).
	ErrSizeOverflow = errors.New("repack: member size exceeds header field limit")

	// ErrInvalidLevel is returned by New when the compression level is
	// outside 1..9.
	ErrInvalidLevel = errors.New("repack: compression level out of range")

	// ErrUnknownAlgorithm is returned when an algorithm name does not parse.
	ErrUnknownAlgorithm = errors.New("repack: unknown algorithm")
)
