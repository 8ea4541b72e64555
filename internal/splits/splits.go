package splits

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mentionset/internal/corpus"
)

const manifestPrefix = "corpus_pubtator_pmids_"

// Resolved holds the pmids of each split that have a preprocessed document,
// plus the ones that were dropped for lacking one.
type Resolved struct {
	Manifest map[corpus.Split][]corpus.PMID
	Kept     map[corpus.Split][]corpus.PMID
	Skipped  map[corpus.Split][]corpus.PMID
}

// PMIDs returns the kept pmids for a split.
func (r Resolved) PMIDs(split corpus.Split) []corpus.PMID {
	return r.Kept[split]
}

// ManifestPath returns the manifest file for a split inside datasetDir.
func ManifestPath(datasetDir string, split corpus.Split) string {
	return filepath.Join(datasetDir, manifestPrefix+split.ManifestSuffix()+".txt")
}

// DocumentPath returns where the preprocessed document for pmid lives.
func DocumentPath(docDir string, pmid corpus.PMID) string {
	return filepath.Join(docDir, string(pmid)+".json")
}

// ReadManifest reads one pmid per line, skipping blank lines.
func ReadManifest(path string) ([]corpus.PMID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	pmids, err := parseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return pmids, nil
}

func parseManifest(r io.Reader) ([]corpus.PMID, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pmids []corpus.PMID
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		pmids = append(pmids, corpus.PMID(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pmids, nil
}

// DocumentExists reports whether a preprocessed document exists for pmid.
// Any stat failure counts as absent.
func DocumentExists(docDir string, pmid corpus.PMID) bool {
	_, err := os.Stat(DocumentPath(docDir, pmid))
	return err == nil
}

// Filter keeps the pmids that have a preprocessed document, preserving order.
func Filter(docDir string, pmids []corpus.PMID) (kept, skipped []corpus.PMID) {
	kept = make([]corpus.PMID, 0, len(pmids))
	for _, pmid := range pmids {
		if DocumentExists(docDir, pmid) {
			kept = append(kept, pmid)
		} else {
			skipped = append(skipped, pmid)
		}
	}
	return kept, skipped
}

// ReadAll reads the three manifests. A missing manifest is fatal.
func ReadAll(datasetDir string) (map[corpus.Split][]corpus.PMID, error) {
	out := make(map[corpus.Split][]corpus.PMID, len(corpus.Splits))
	for _, split := range corpus.Splits {
		pmids, err := ReadManifest(ManifestPath(datasetDir, split))
		if err != nil {
			return nil, fmt.Errorf("%s split: %w", split, err)
		}
		out[split] = pmids
	}
	return out, nil
}

// FilterAll applies Filter to every split of a manifest set.
func FilterAll(docDir string, manifest map[corpus.Split][]corpus.PMID) Resolved {
	res := Resolved{
		Manifest: manifest,
		Kept:     make(map[corpus.Split][]corpus.PMID, len(corpus.Splits)),
		Skipped:  make(map[corpus.Split][]corpus.PMID, len(corpus.Splits)),
	}
	for _, split := range corpus.Splits {
		kept, skipped := Filter(docDir, manifest[split])
		res.Kept[split] = kept
		res.Skipped[split] = skipped
	}
	return res
}

// Resolve reads the manifests in datasetDir and filters them against docDir.
func Resolve(datasetDir, docDir string) (Resolved, error) {
	manifest, err := ReadAll(datasetDir)
	if err != nil {
		return Resolved{}, err
	}
	return FilterAll(docDir, manifest), nil
}
