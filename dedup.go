package repack

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// maxDuplicateSummaries caps the length of the human-readable duplicate
// report. Every group is still deduplicated; only the report is truncated.
const maxDuplicateSummaries = 5

// deduplicate collapses byte-identical members into one UniqueMember per
// content fingerprint. Output order follows the first-seen order of
// distinct fingerprints; alias order within a group follows encounter
// order. Fingerprints are computed concurrently.
func deduplicate(ctx context.Context, members []Member) ([]UniqueMember, []string, error) {
	prints := make([]string, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range members {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			prints[i] = Fingerprint(members[i].Content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	byPrint := make(map[string]int, len(members))
	uniques := make([]UniqueMember, 0, len(members))
	for i, m := range members {
		if j, ok := byPrint[prints[i]]; ok {
			uniques[j].Aliases = append(uniques[j].Aliases, m.Name)
			continue
		}
		byPrint[prints[i]] = len(uniques)
		uniques = append(uniques, UniqueMember{
			Name:    m.Name,
			Content: m.Content,
			Aliases: []string{m.Name},
		})
	}

	var summaries []string
	for _, u := range uniques {
		if len(u.Aliases) < 2 {
			continue
		}
		if len(summaries) < maxDuplicateSummaries {
			summaries = append(summaries, fmt.Sprintf("%d duplicates of %s", len(u.Aliases), u.Name))
		}
	}
	return uniques, summaries, nil
}

// passthrough is the identity transform used when deduplication is
// disabled: every member becomes its own UniqueMember.
func passthrough(members []Member) []UniqueMember {
	uniques := make([]UniqueMember, len(members))
	for i, m := range members {
		uniques[i] = UniqueMember{
			Name:    m.Name,
			Content: m.Content,
			Aliases: []string{m.Name},
		}
	}
	return uniques
}
