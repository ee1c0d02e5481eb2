package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/knowledge"
)

func buildSeedEntries(t *testing.T) []*knowledge.Entry {
	t.Helper()

	now := time.Now().UTC()
	entries := make([]*knowledge.Entry, 0, len(seedEntries()))
	for _, seed := range seedEntries() {
		entry, err := knowledge.NewEntry(kernel.NewUUID(), seed.category, seed.title,
			seed.body, seed.keywords, now)
		require.NoError(t, err)
		entries = append(entries, entry)
	}
	return entries
}

func TestSeedEntries_GPSQuestionGroundsOnTechnicalSupport(t *testing.T) {
	entries := buildSeedEntries(t)

	ranked := knowledge.Rank(entries, "My GPS is not working", 3)

	require.NotEmpty(t, ranked)
	assert.Equal(t, "technical_support", ranked[0].Category())
	assert.Equal(t, "GPS Not Working - Troubleshooting", ranked[0].Title())
}

func TestSeedEntries_CategoriesMatchIntentDomains(t *testing.T) {
	knowledgeIntents := map[string]bool{}
	for _, intent := range []conversation.Intent{
		conversation.IntentPolicyQuery,
		conversation.IntentTechnicalSupport,
		conversation.IntentCustomerCommunication,
		conversation.IntentRouting,
		conversation.IntentEmergency,
		conversation.IntentEarnings,
	} {
		knowledgeIntents[string(intent)] = true
	}

	for _, seed := range seedEntries() {
		assert.True(t, knowledgeIntents[seed.category],
			"seed entry %q has category %q outside the intent domains", seed.title, seed.category)
	}
}
