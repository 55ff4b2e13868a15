package localdump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/tk-dump/tavernkeeper"
)

func TestRenderTranscript(t *testing.T) {
	roleplay := tavernkeeper.Record{
		"id":   "10",
		"name": "Opening Scene",
		"messages": []tavernkeeper.Record{
			{
				"id":         "100",
				"content":    "<p>Hello <strong>world</strong></p>",
				"created_at": "2020-02-02",
				"character":  map[string]any{"name": "Anna"},
			},
			{
				"id":      "101",
				"content": "<p>Well met</p>",
				"user":    map[string]any{"name": "bob"},
				"comments": []tavernkeeper.Record{
					{"id": "900", "content": "<p>nice</p>", "user": map[string]any{"name": "cat"}},
				},
			},
			{"id": "102"},
		},
	}

	out, err := RenderTranscript(roleplay, "My Camp")
	require.NoError(t, err)

	assert.Contains(t, out, "title: Opening Scene\n")
	assert.Contains(t, out, "campaign: My Camp\n")
	assert.Contains(t, out, "messages: 3\n")
	assert.Contains(t, out, "comments: 1\n")
	assert.Contains(t, out, "## Anna (2020-02-02)\n\nHello **world**\n")
	assert.Contains(t, out, "## bob\n\nWell met\n")
	assert.Contains(t, out, "> **cat**: nice\n")
	assert.Contains(t, out, "## unknown\n")
}
