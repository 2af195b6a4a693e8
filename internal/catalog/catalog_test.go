package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapSource backs a Resolver with a plain map for tests.
type mapSource map[Topic]Override

func (m mapSource) ContentOverride(id Topic) (Override, bool) {
	ov, ok := m[id]
	return ov, ok
}

func TestGetKnownTopics(t *testing.T) {
	for _, id := range Topics() {
		meta, ok := Get(id)
		require.True(t, ok, "topic %s missing from static catalog", id)
		assert.Equal(t, id, meta.ID)
		assert.NotEmpty(t, meta.Description)
	}
}

func TestResolveNoOverride(t *testing.T) {
	r := NewResolver(mapSource{})
	meta, ok := r.Resolve(TopicDoppler)
	require.True(t, ok)

	static, _ := Get(TopicDoppler)
	assert.Equal(t, static, meta)
}

func TestResolveOverridePrecedence(t *testing.T) {
	desc := "X"
	r := NewResolver(mapSource{
		TopicDoppler: {Description: &desc},
	})

	meta, ok := r.Resolve(TopicDoppler)
	require.True(t, ok)

	static, _ := Get(TopicDoppler)
	assert.Equal(t, "X", meta.Description)
	assert.Equal(t, static.Icon, meta.Icon, "fields absent from the patch keep static values")
	assert.Equal(t, static.SubTopics, meta.SubTopics)
}

func TestResolveSubTopicsReplacedWholesale(t *testing.T) {
	r := NewResolver(mapSource{
		TopicQA: {SubTopics: []SubTopic{{ID: "qa-new", Title: "New Unit"}}},
	})

	meta, ok := r.Resolve(TopicQA)
	require.True(t, ok)
	require.Len(t, meta.SubTopics, 1)
	assert.Equal(t, "qa-new", meta.SubTopics[0].ID)
}

func TestResolveUnknownTopic(t *testing.T) {
	r := NewResolver(mapSource{})
	_, ok := r.Resolve(Topic("Astrology"))
	assert.False(t, ok)
}

func TestHasSubTopic(t *testing.T) {
	meta, _ := Get(TopicFundamentals)
	assert.True(t, meta.HasSubTopic("fund-params"))
	assert.False(t, meta.HasSubTopic("nope"))
}
