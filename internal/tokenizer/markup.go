package tokenizer

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Markup drops tags and decodes entities before handing text to Next.
// PubTator abstracts occasionally carry inline <i>/<sub> markup.
type Markup struct {
	Next Tokenizer
}

func (m Markup) Tokenize(text string) ([]string, error) {
	plain, err := StripMarkup(text)
	if err != nil {
		return nil, err
	}
	next := m.Next
	if next == nil {
		next = Whitespace{}
	}
	return next.Tokenize(plain)
}

// StripMarkup returns the text content of an HTML/XML fragment.
// Tags are replaced by nothing; block boundaries are not preserved.
func StripMarkup(text string) (string, error) {
	if !strings.ContainsAny(text, "<&") {
		return text, nil
	}
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			return sb.String(), nil
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
