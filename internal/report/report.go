package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dgallion1/mentionset/internal/corpus"
	"github.com/dgallion1/mentionset/internal/dataset"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// maxSkippedListed caps how many skipped pmids are spelled out per split.
const maxSkippedListed = 20

// Source is the loaded corpus a report describes.
type Source interface {
	Stats() []dataset.SplitStats
	Skipped(split corpus.Split) []corpus.PMID
}

// FromSource builds the Markdown report for a loaded corpus.
func FromSource(title string, src Source) string {
	stats := src.Stats()
	skipped := make(map[string][]string, len(stats))
	for _, st := range stats {
		for _, pmid := range src.Skipped(st.Split) {
			skipped[string(st.Split)] = append(skipped[string(st.Split)], string(pmid))
		}
	}
	return Markdown(title, stats, skipped)
}

// Markdown renders a dataset summary.
func Markdown(title string, stats []dataset.SplitStats, skipped map[string][]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	sb.WriteString("| split | manifest pmids | kept pmids | skipped pmids | mentions |\n")
	sb.WriteString("|---|---:|---:|---:|---:|\n")
	var total dataset.SplitStats
	for _, st := range stats {
		fmt.Fprintf(&sb, "| %s | %d | %d | %d | %d |\n", st.Split, st.Manifest, st.Kept, st.Skipped, st.Mentions)
		total.Manifest += st.Manifest
		total.Kept += st.Kept
		total.Skipped += st.Skipped
		total.Mentions += st.Mentions
	}
	fmt.Fprintf(&sb, "| **total** | %d | %d | %d | %d |\n", total.Manifest, total.Kept, total.Skipped, total.Mentions)

	for _, st := range stats {
		pmids := skipped[string(st.Split)]
		if len(pmids) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## Skipped in %s\n\n", st.Split)
		for i, pmid := range pmids {
			if i == maxSkippedListed {
				fmt.Fprintf(&sb, "- and %d more\n", len(pmids)-maxSkippedListed)
				break
			}
			fmt.Fprintf(&sb, "- %s\n", codeSpan(pmid))
		}
	}
	return sb.String()
}

// codeSpan wraps s in a backtick fence longer than any backtick run inside it.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, c := range s {
		if c == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}

// HTML converts Markdown to an HTML fragment. Tables need the GFM extension.
func HTML(md string) (string, error) {
	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := conv.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}
