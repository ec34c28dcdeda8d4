package repack

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	"github.com/rsuregar/repack/internal/file"
)

// copyBufSize is the chunk size used to feed encoders, keeping long
// compressions cancellable between chunks.
const copyBufSize = 32 * 1024

// Codec compresses a framed container. Implementations are stateless and
// safe for concurrent use.
type Codec interface {
	// Compress returns data compressed at the given level (1..9).
	// Compression is attempted exactly once; failures wrap ErrCompression.
	Compress(ctx context.Context, data []byte, level int) ([]byte, error)
}

// codecFor selects the codec for an algorithm tag. Unrecognized tags
// behave as gzip at the requested level.
func codecFor(a Algorithm) Codec {
	switch a {
	case AlgorithmBzip2:
		return bzip2Codec{}
	case AlgorithmBrotli:
		return brotliCodec{}
	case AlgorithmXz:
		return xzCodec{}
	default:
		return gzipCodec{}
	}
}

// gzipCodec is deflate with gzip framing.
type gzipCodec struct{}

func (gzipCodec) Compress(ctx context.Context, data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %v", ErrCompression, err)
	}
	return drain(ctx, &buf, zw, data, "gzip")
}

// bzip2Codec is the Burrows-Wheeler coder. Levels 1..9 map directly to
// the coder's block-size presets.
type bzip2Codec struct{}

func (bzip2Codec) Compress(ctx context.Context, data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: level})
	if err != nil {
		return nil, fmt.Errorf("%w: bzip2: %v", ErrCompression, err)
	}
	return drain(ctx, &buf, zw, data, "bzip2")
}

// brotliCodec prefers the brotli encoder and falls back to gzip at
// maximum level when the encoder fails. Cancellation is never treated as
// an encoder failure.
type brotliCodec struct{}

func (brotliCodec) Compress(ctx context.Context, data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	out, err := drain(ctx, &buf, brotli.NewWriterLevel(&buf, level), data, "brotli")
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	return gzipCodec{}.Compress(ctx, data, gzip.BestCompression)
}

// xzCodec is LZMA2 with xz framing. The level scales the dictionary
// capacity from 64 KiB (level 1) to 16 MiB (level 9).
type xzCodec struct{}

func (xzCodec) Compress(ctx context.Context, data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	cfg := xz.WriterConfig{DictCap: 1 << (15 + uint(level))}
	zw, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: xz: %v", ErrCompression, err)
	}
	return drain(ctx, &buf, zw, data, "xz")
}

// drain feeds data through an encoder, closes it, and returns the
// accumulated output. Context errors pass through unwrapped so callers
// can distinguish cancellation from encoder failure.
func drain(ctx context.Context, buf *bytes.Buffer, zw io.WriteCloser, data []byte, name string) ([]byte, error) {
	if _, err := file.CopyWithContext(ctx, zw, bytes.NewReader(data), make([]byte, copyBufSize)); err != nil {
		zw.Close()
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrCompression, name, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %v", ErrCompression, name, err)
	}
	return buf.Bytes(), nil
}
