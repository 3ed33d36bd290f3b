package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectIdeas_DirectJSON(t *testing.T) {
	raw, err := ParseProjectIdeas(`[{"name":"PhotoLicense","type":"nft_marketplace"}]`)
	require.NoError(t, err)

	var ideas []map[string]any
	require.NoError(t, json.Unmarshal(raw, &ideas))
	assert.Len(t, ideas, 1)
	assert.Equal(t, "PhotoLicense", ideas[0]["name"])
}

func TestParseProjectIdeas_EmbeddedInProse(t *testing.T) {
	text := "Here are some ideas for you:\n\n[\n  {\"name\": \"BeatDrop\", \"type\": \"creator\"},\n  {\"name\": \"TrailToken\", \"type\": \"token\"}\n]\n\nHope these help!"

	raw, err := ParseProjectIdeas(text)
	require.NoError(t, err)

	var ideas []map[string]any
	require.NoError(t, json.Unmarshal(raw, &ideas))
	assert.Len(t, ideas, 2)
	assert.Equal(t, "BeatDrop", ideas[0]["name"])
}

func TestParseProjectIdeas_NoArray(t *testing.T) {
	_, err := ParseProjectIdeas("I could not come up with anything today.")
	assert.Error(t, err)
}

func TestParseProjectIdeas_MalformedArray(t *testing.T) {
	_, err := ParseProjectIdeas("sure: [not valid json]")
	assert.Error(t, err)
}
