package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/mentionset/internal/corpus"
	"github.com/dgallion1/mentionset/internal/dataset"
	"github.com/dgallion1/mentionset/internal/instance"
	"github.com/dgallion1/mentionset/internal/splits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openReader(t *testing.T) *dataset.Reader {
	t.Helper()
	dataDir, docDir := t.TempDir(), t.TempDir()
	for split, body := range map[corpus.Split]string{corpus.Train: "A\n", corpus.Dev: "B\n", corpus.Test: ""} {
		require.NoError(t, os.WriteFile(splits.ManifestPath(dataDir, split), []byte(body), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(docDir, "A.json"), []byte(`{"lines":[{"text":"x y"}]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docDir, "B.json"), []byte(`{"lines":[{"text":"p"},{"text":"q r"}]}`), 0o644))

	r, err := dataset.Open(dataset.Options{
		DatasetDir:      dataDir,
		PreprocessedDir: docDir,
		Builder:         &instance.FieldBuilder{TextField: "text"},
		Log:             slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)
	return r
}

func TestExport_WritesNDJSON(t *testing.T) {
	var buf bytes.Buffer
	n, err := export(context.Background(), openReader(t), "dev", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var inst instance.Instance
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &inst))
	assert.Equal(t, 2, inst.MentionID)
	assert.Equal(t, corpus.Dev, inst.Split)
	assert.Equal(t, []string{"q", "r"}, inst.Tokens)
}

func TestExport_UnknownSplit(t *testing.T) {
	var buf bytes.Buffer
	_, err := export(context.Background(), openReader(t), "validation", &buf)
	assert.True(t, errors.Is(err, corpus.ErrUnknownSplit))
	assert.Zero(t, buf.Len())
}
