package knowledge_test

import (
	"testing"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(t *testing.T, category, title, body string, keywords []string, updatedAt time.Time) *knowledge.Entry {
	t.Helper()

	e, err := knowledge.NewEntry(kernel.NewUUID(), category, title, body, keywords, updatedAt)
	require.NoError(t, err)
	return e
}

func TestNewEntry(t *testing.T) {
	t.Run("should normalize keywords", func(t *testing.T) {
		e := newEntry(t, "Routing", "Traffic guidance", "Check the traffic layer.",
			[]string{" GPS ", "Traffic", ""}, time.Now())

		assert.Equal(t, "routing", e.Category())
		assert.Equal(t, []string{"gps", "traffic"}, e.Keywords())
	})

	t.Run("should require category title and body", func(t *testing.T) {
		_, err := knowledge.NewEntry(kernel.NewUUID(), "", "", "", nil, time.Now())
		require.Error(t, err)
	})

	t.Run("zero value entry is not constructed", func(t *testing.T) {
		var e knowledge.Entry
		require.ErrorIs(t, e.Validate(), knowledge.ErrEntryIsNotConstructed)
	})
}

func TestTokenize(t *testing.T) {
	t.Run("should lowercase, split, and drop stopwords", func(t *testing.T) {
		tokens := knowledge.Tokenize("How can I restart the GPS navigation?")
		assert.Equal(t, []string{"restart", "gps", "navigation"}, tokens)
	})

	t.Run("should deduplicate repeated words", func(t *testing.T) {
		tokens := knowledge.Tokenize("toll toll toll")
		assert.Equal(t, []string{"toll"}, tokens)
	})

	t.Run("should return nothing for stopwords only", func(t *testing.T) {
		assert.Empty(t, knowledge.Tokenize("what should you"))
	})
}

func TestRank(t *testing.T) {
	now := time.Now()

	gps := newEntry(t, "technical_support", "GPS troubleshooting",
		"Restart the app, then toggle location services if GPS is not working.",
		[]string{"gps", "navigation", "location"}, now.Add(-time.Hour))
	cod := newEntry(t, "policy_query", "Cash on delivery handling",
		"Collect the exact COD amount and record it in the app before leaving.",
		[]string{"cod", "cash", "payment"}, now.Add(-2*time.Hour))
	parking := newEntry(t, "routing", "Parking near delivery points",
		"Use designated loading zones; never block emergency lanes.",
		[]string{"parking", "loading", "zones"}, now)

	all := []*knowledge.Entry{gps, cod, parking}

	t.Run("should rank keyword matches first and drop unrelated entries", func(t *testing.T) {
		got := knowledge.Rank(all, "my gps navigation is acting up", 3)

		require.Len(t, got, 1)
		assert.Equal(t, "GPS troubleshooting", got[0].Title())
	})

	t.Run("should respect the limit", func(t *testing.T) {
		got := knowledge.Rank(all, "gps parking cod", 2)
		assert.Len(t, got, 2)
	})

	t.Run("should break score ties by most recently updated", func(t *testing.T) {
		older := newEntry(t, "routing", "Toll rules", "Avoid toll roads when instructed.",
			[]string{"toll"}, now.Add(-48*time.Hour))
		newer := newEntry(t, "routing", "Toll updates", "New toll policy effective toll gates.",
			[]string{"toll"}, now)

		got := knowledge.Rank([]*knowledge.Entry{older, newer}, "toll", 2)

		require.Len(t, got, 2)
		assert.Equal(t, "Toll updates", got[0].Title())
	})

	t.Run("should return nothing for an empty query", func(t *testing.T) {
		assert.Empty(t, knowledge.Rank(all, "", 3))
	})
}
