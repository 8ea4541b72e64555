package splits

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/mentionset/internal/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestManifestPath_UsesTrngForTrain(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "corpus_pubtator_pmids_trng.txt"), ManifestPath("data", corpus.Train))
	assert.Equal(t, filepath.Join("data", "corpus_pubtator_pmids_dev.txt"), ManifestPath("data", corpus.Dev))
	assert.Equal(t, filepath.Join("data", "corpus_pubtator_pmids_test.txt"), ManifestPath("data/", corpus.Test))
}

func TestParseManifest_SkipsBlankLines(t *testing.T) {
	pmids, err := parseManifest(strings.NewReader("D1\n\n  \nD2\r\n D3 \n"))
	require.NoError(t, err)
	assert.Equal(t, []corpus.PMID{"D1", "D2", "D3"}, pmids)
}

func TestParseManifest_Empty(t *testing.T) {
	pmids, err := parseManifest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, pmids)
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFilter_PreservesOrderAndDropsMissing(t *testing.T) {
	docDir := t.TempDir()
	writeFile(t, filepath.Join(docDir, "D3.json"), `{"lines":[]}`)
	writeFile(t, filepath.Join(docDir, "D1.json"), `{"lines":[]}`)

	kept, skipped := Filter(docDir, []corpus.PMID{"D1", "D2", "D3", "D4"})
	assert.Equal(t, []corpus.PMID{"D1", "D3"}, kept)
	assert.Equal(t, []corpus.PMID{"D2", "D4"}, skipped)
}

func TestResolve_BlankLineExample(t *testing.T) {
	dataDir := t.TempDir()
	docDir := t.TempDir()
	writeFile(t, ManifestPath(dataDir, corpus.Train), "D1\n\nD2\n")
	writeFile(t, ManifestPath(dataDir, corpus.Dev), "")
	writeFile(t, ManifestPath(dataDir, corpus.Test), "")
	writeFile(t, DocumentPath(docDir, "D1"), `{"lines":[{"text":"a"},{"text":"b"}]}`)

	res, err := Resolve(dataDir, docDir)
	require.NoError(t, err)
	assert.Equal(t, []corpus.PMID{"D1", "D2"}, res.Manifest[corpus.Train])
	assert.Equal(t, []corpus.PMID{"D1"}, res.PMIDs(corpus.Train))
	assert.Equal(t, []corpus.PMID{"D2"}, res.Skipped[corpus.Train])
	assert.Empty(t, res.PMIDs(corpus.Dev))
	assert.Empty(t, res.PMIDs(corpus.Test))
}

func TestResolve_MissingManifestIsFatal(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, ManifestPath(dataDir, corpus.Train), "D1\n")
	writeFile(t, ManifestPath(dataDir, corpus.Dev), "D2\n")

	_, err := Resolve(dataDir, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "test split")
}

func TestResolve_KeptIsSubsequenceOfManifest(t *testing.T) {
	dataDir := t.TempDir()
	docDir := t.TempDir()
	writeFile(t, ManifestPath(dataDir, corpus.Train), "A\nB\nC\nD\nE\n")
	writeFile(t, ManifestPath(dataDir, corpus.Dev), "F\nG\n")
	writeFile(t, ManifestPath(dataDir, corpus.Test), "H\n")
	for _, p := range []string{"B", "D", "E", "G", "H"} {
		writeFile(t, filepath.Join(docDir, p+".json"), `{"lines":[]}`)
	}

	res, err := Resolve(dataDir, docDir)
	require.NoError(t, err)

	for _, split := range corpus.Splits {
		manifest := res.Manifest[split]
		j := 0
		for _, pmid := range res.PMIDs(split) {
			for j < len(manifest) && manifest[j] != pmid {
				j++
			}
			require.Less(t, j, len(manifest), "pmid %s out of order in %s", pmid, split)
			assert.True(t, DocumentExists(docDir, pmid))
			j++
		}
	}
	assert.Equal(t, []corpus.PMID{"B", "D", "E"}, res.PMIDs(corpus.Train))
}
