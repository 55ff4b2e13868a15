package tavernkeeper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAccessors(t *testing.T) {
	r := Record{
		"id":            json.Number("17"),
		"name":          "Ser Pounce",
		"comment_count": json.Number("2"),
		"pages":         "4",
		"score":         1.5,
		"archived":      true,
		"character":     map[string]any{"name": "Pounce"},
		"messages":      []any{map[string]any{"id": "a"}, "junk"},
		"comments":      []Record{{"id": "c"}},
	}

	assert.Equal(t, "17", r.ID())
	assert.Equal(t, "Ser Pounce", r.Name())
	assert.Equal(t, int64(2), r.Int("comment_count"))
	assert.Equal(t, int64(4), r.Int("pages"))
	assert.Equal(t, int64(1), r.Int("score"))
	assert.Equal(t, int64(0), r.Int("missing"))
	assert.Equal(t, "true", r.String("archived"))
	assert.Equal(t, "", r.String("missing"))
	assert.Equal(t, "Pounce", r.Object("character").Name())
	assert.Equal(t, "", r.Object("name").Name())
	assert.Len(t, r.Records("messages"), 1)
	assert.Len(t, r.Records("comments"), 1)
	assert.Empty(t, r.Records("missing"))
}
