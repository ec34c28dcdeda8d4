package repack

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Converter transforms ZIP archives into compressed tar containers.
// Configuration is fixed at construction; a Converter is safe for
// concurrent Convert calls, each of which is an independent job.
type Converter struct {
	algorithm Algorithm
	level     int
	dedup     bool
	integrity bool
	logger    *slog.Logger
	progress  ProgressFunc
}

// New creates a Converter. Defaults: gzip at level 6 with deduplication
// and integrity checking enabled. Fails fast with ErrInvalidLevel when
// the level is outside 1..9.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		algorithm: AlgorithmGzip,
		level:     6,
		dedup:     true,
		integrity: true,
		logger:    slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.level < 1 || c.level > 9 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, c.level)
	}
	return c, nil
}

// job tracks per-conversion progress state. Percentages are clamped to be
// monotonically non-decreasing and reach 100 only on success.
type job struct {
	id      string
	report  ProgressFunc
	percent float64
}

func (j *job) emit(stage Stage, percent float64) {
	if percent > j.percent {
		j.percent = percent
	}
	if j.report != nil {
		j.report(ProgressEvent{JobID: j.id, Stage: stage, Percent: j.percent})
	}
}

// Convert runs the full pipeline on a ZIP archive held in memory:
// checksum, extraction, optional deduplication, framing, compression,
// optional integrity check. A failed job returns no partial result.
func (c *Converter) Convert(ctx context.Context, src []byte) (*Result, error) {
	j := &job{id: uuid.NewString(), report: c.progress}
	start := time.Now()

	res, err := c.convert(ctx, j, src)
	if err != nil {
		j.emit(StageError, j.percent)
		c.logger.Error("conversion failed",
			slog.String("job_id", j.id),
			slog.Any("error", err))
		return nil, err
	}
	res.Elapsed = time.Since(start)

	c.logger.Info("conversion complete",
		slog.String("job_id", j.id),
		slog.String("algorithm", res.Algorithm.String()),
		slog.Uint64("original_size", res.OriginalSize),
		slog.Uint64("compressed_size", res.CompressedSize),
		slog.Duration("elapsed", res.Elapsed))
	return res, nil
}

func (c *Converter) convert(ctx context.Context, j *job, src []byte) (*Result, error) {
	j.emit(StagePending, 0)

	j.emit(StageAnalyzing, 2)
	originalChecksum := Fingerprint(src)
	j.emit(StageAnalyzing, 5)

	members, err := extractMembers(ctx, src, func(done, total int) {
		j.emit(StageAnalyzing, 5+35*float64(done)/float64(total))
	})
	if err != nil {
		return nil, err
	}
	j.emit(StageAnalyzing, 40)

	var uniques []UniqueMember
	var summaries []string
	if c.dedup {
		j.emit(StageDeduplicating, 45)
		uniques, summaries, err = deduplicate(ctx, members)
		if err != nil {
			return nil, err
		}
		j.emit(StageDeduplicating, 50)
	} else {
		uniques = passthrough(members)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	j.emit(StageConverting, 55)
	framed, err := newFramer(time.Now()).frame(uniques)
	if err != nil {
		return nil, err
	}
	j.emit(StageConverting, 65)

	compressed, err := codecFor(c.algorithm).Compress(ctx, framed, c.level)
	if err != nil {
		return nil, err
	}
	j.emit(StageConverting, 90)

	var compressedChecksum string
	if c.integrity {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		compressedChecksum = Fingerprint(compressed)
		j.emit(StageConverting, 95)
	}

	originalSize := uint64(len(src))
	compressedSize := uint64(len(compressed))
	var ratio float64
	if originalSize > 0 {
		ratio = (float64(originalSize) - float64(compressedSize)) / float64(originalSize) * 100
	}

	j.emit(StageCompleted, 100)
	return &Result{
		Compressed:         compressed,
		OriginalChecksum:   originalChecksum,
		CompressedChecksum: compressedChecksum,
		Ratio:              ratio,
		OriginalSize:       originalSize,
		CompressedSize:     compressedSize,
		Algorithm:          c.algorithm,
		DuplicateSummaries: summaries,
	}, nil
}
