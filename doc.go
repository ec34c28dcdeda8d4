// Package repack converts ZIP archives into deduplicated, checksummed,
// compressed tar archives.
//
// A conversion extracts every regular file from the source archive,
// fingerprints each member with SHA-256, collapses byte-identical members
// into a single stored copy, frames the survivors into a 512-byte-block
// tar container (with synthetic alias-manifest records describing the
// collapsed duplicates), and compresses the container with a selectable
// codec.
//
// # Quick Start
//
// Convert an in-memory ZIP archive to a bzip2-compressed tar:
//
//	c, err := repack.New(
//	    repack.WithAlgorithm(repack.AlgorithmBzip2),
//	    repack.WithLevel(9),
//	)
//	if err != nil {
//	    return err
//	}
//	res, err := c.Convert(ctx, zipBytes)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("out.tar.bz2", res.Compressed, 0o644)
//
// # Progress
//
// Register a callback to observe per-job progress. Events carry a job ID,
// a stage, and a monotonically non-decreasing percentage that reaches 100
// only on success:
//
//	c, err := repack.New(repack.WithProgress(func(ev repack.ProgressEvent) {
//	    fmt.Printf("%s %s %.0f%%\n", ev.JobID, ev.Stage, ev.Percent)
//	}))
//
// A Converter is immutable after construction and safe for concurrent use;
// each Convert call is an independent job with its own buffers.
package repack
