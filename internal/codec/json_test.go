package codec

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONKeepsNumbers(t *testing.T) {
	c := NewJSON()

	var got []map[string]any
	err := c.Unmarshal([]byte(`[{"id":9007199254740993,"start":305,"definition":null}]`), &got)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, json.Number("9007199254740993"), got[0]["id"])
	assert.Equal(t, json.Number("305"), got[0]["start"])
	assert.Nil(t, got[0]["definition"])

	out, err := c.Marshal(got[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":9007199254740993`)
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSON().NewEncoder(&buf).Encode(map[string]any{"name": "Design"}))
	assert.JSONEq(t, `{"name":"Design"}`, buf.String())
}
