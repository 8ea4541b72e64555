package parser

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser_Lines(t *testing.T) {
	input := `{"pmid":"D1","title":"ignored","lines":[{"text":"a"},{"text":"b","label":"D001"}]}`
	p := &JSONParser{}
	doc, err := p.Parse(strings.NewReader(input), "D1")
	require.NoError(t, err)
	assert.Equal(t, "D1", string(doc.PMID))
	require.Len(t, doc.Mentions, 2)

	var second map[string]string
	require.NoError(t, json.Unmarshal(doc.Mentions[1], &second))
	assert.Equal(t, "D001", second["label"])
}

func TestJSONParser_EmptyLines(t *testing.T) {
	p := &JSONParser{}
	doc, err := p.Parse(strings.NewReader(`{"lines":[]}`), "D2")
	require.NoError(t, err)
	assert.Empty(t, doc.Mentions)
}

func TestJSONParser_MissingLines(t *testing.T) {
	p := &JSONParser{}
	for _, input := range []string{`{}`, `{"lines":null}`} {
		_, err := p.Parse(strings.NewReader(input), "D3")
		assert.ErrorIs(t, err, ErrMissingLines, "input %s", input)
	}
}

func TestJSONParser_Malformed(t *testing.T) {
	p := &JSONParser{}
	cases := []string{`{"lines":[`, `not json`, `{"lines":"abc"}`}
	for _, input := range cases {
		_, err := p.Parse(strings.NewReader(input), "D4")
		require.Error(t, err, "input %q", input)
		assert.Contains(t, err.Error(), "D4")
	}
}

func TestJSONParser_TrailingData(t *testing.T) {
	p := &JSONParser{}

	_, err := p.Parse(strings.NewReader(`{"lines":[{"text":"a"}]} {"lines": garbage`), "D6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "D6")

	_, err = p.Parse(strings.NewReader(`{"lines":[{"text":"a"}]}{}`), "D6")
	assert.ErrorIs(t, err, ErrTrailingData)

	_, err = p.Parse(strings.NewReader(`{"lines":[{"text":"a"}]}[1]`), "D6")
	assert.Error(t, err)

	doc, err := p.Parse(strings.NewReader("{\"lines\":[{\"text\":\"a\"}]}\n\n  "), "D6")
	require.NoError(t, err)
	assert.Len(t, doc.Mentions, 1)
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "D5.json"), []byte(`{"lines":[{"text":"x"}]}`), 0o644))
	l := NewLoader(dir)

	doc, err := l.Load("D5")
	require.NoError(t, err)
	require.Len(t, doc.Mentions, 1)
	assert.Equal(t, `{"text":"x"}`, string(doc.Mentions[0]))

	_, err = l.Load("missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
