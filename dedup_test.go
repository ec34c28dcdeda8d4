package repack

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicate(t *testing.T) {
	t.Parallel()

	t.Run("groups identical content", func(t *testing.T) {
		t.Parallel()
		members := []Member{
			{Name: "a.txt", Content: []byte("hello")},
			{Name: "b.txt", Content: []byte("hello")},
			{Name: "c.txt", Content: []byte("world")},
		}
		uniques, summaries, err := deduplicate(context.Background(), members)
		require.NoError(t, err)

		require.Len(t, uniques, 2)
		assert.Equal(t, "a.txt", uniques[0].Name)
		assert.Equal(t, []string{"a.txt", "b.txt"}, uniques[0].Aliases)
		assert.Equal(t, []byte("hello"), uniques[0].Content)
		assert.Equal(t, "c.txt", uniques[1].Name)
		assert.Equal(t, []string{"c.txt"}, uniques[1].Aliases)

		assert.Equal(t, []string{"2 duplicates of a.txt"}, summaries)
	})

	t.Run("alias invariants", func(t *testing.T) {
		t.Parallel()
		members := []Member{
			{Name: "x", Content: []byte("1")},
			{Name: "y", Content: []byte("2")},
			{Name: "z", Content: []byte("1")},
		}
		uniques, _, err := deduplicate(context.Background(), members)
		require.NoError(t, err)
		for _, u := range uniques {
			require.NotEmpty(t, u.Aliases)
			assert.Equal(t, u.Name, u.Aliases[0])
		}
	})

	t.Run("preserves first-seen order", func(t *testing.T) {
		t.Parallel()
		members := []Member{
			{Name: "late", Content: []byte("zzz")},
			{Name: "early", Content: []byte("aaa")},
			{Name: "mid", Content: []byte("mmm")},
		}
		uniques, _, err := deduplicate(context.Background(), members)
		require.NoError(t, err)
		require.Len(t, uniques, 3)
		assert.Equal(t, "late", uniques[0].Name)
		assert.Equal(t, "early", uniques[1].Name)
		assert.Equal(t, "mid", uniques[2].Name)
	})

	t.Run("summary cap is reporting only", func(t *testing.T) {
		t.Parallel()
		var members []Member
		for g := 0; g < 7; g++ {
			content := []byte(fmt.Sprintf("group-%d", g))
			members = append(members,
				Member{Name: fmt.Sprintf("g%d-first", g), Content: content},
				Member{Name: fmt.Sprintf("g%d-second", g), Content: content},
			)
		}
		uniques, summaries, err := deduplicate(context.Background(), members)
		require.NoError(t, err)

		// All seven groups collapse even though only five are reported.
		assert.Len(t, uniques, 7)
		require.Len(t, summaries, maxDuplicateSummaries)
		assert.Equal(t, "2 duplicates of g0-first", summaries[0])
		for _, u := range uniques {
			assert.Len(t, u.Aliases, 2)
		}
	})

	t.Run("idempotent on its own output", func(t *testing.T) {
		t.Parallel()
		members := []Member{
			{Name: "a", Content: []byte("same")},
			{Name: "b", Content: []byte("same")},
			{Name: "c", Content: []byte("other")},
		}
		uniques, _, err := deduplicate(context.Background(), members)
		require.NoError(t, err)

		again := make([]Member, len(uniques))
		for i, u := range uniques {
			again[i] = Member{Name: u.Name, Content: u.Content}
		}
		reUniques, reSummaries, err := deduplicate(context.Background(), again)
		require.NoError(t, err)

		require.Len(t, reUniques, len(uniques))
		for i := range reUniques {
			assert.Equal(t, uniques[i].Name, reUniques[i].Name)
			assert.Equal(t, uniques[i].Content, reUniques[i].Content)
			assert.Equal(t, []string{uniques[i].Name}, reUniques[i].Aliases)
		}
		assert.Empty(t, reSummaries)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := deduplicate(ctx, []Member{{Name: "a", Content: []byte("x")}})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPassthrough(t *testing.T) {
	t.Parallel()

	members := []Member{
		{Name: "a.txt", Content: []byte("hello")},
		{Name: "b.txt", Content: []byte("hello")},
	}
	uniques := passthrough(members)

	require.Len(t, uniques, len(members))
	for i, u := range uniques {
		assert.Equal(t, members[i].Name, u.Name)
		assert.Equal(t, members[i].Content, u.Content)
		assert.Equal(t, []string{members[i].Name}, u.Aliases)
	}
}
