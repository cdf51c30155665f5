package fetcher

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractText walks an HTML document and returns its visible text, one line
// per text node, with script/style/noscript content dropped. Line structure
// is preserved so the summarizer can treat each chunk as a candidate.
func ExtractText(body io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(body)
	var b strings.Builder
	skipDepth := 0

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return strings.TrimRight(b.String(), "\n"), nil
			}
			return "", tokenizer.Err()

		case html.StartTagToken:
			token := tokenizer.Token()
			if skippedTag(token.Data) {
				skipDepth++
			}

		case html.EndTagToken:
			token := tokenizer.Token()
			if skippedTag(token.Data) && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.Join(strings.Fields(tokenizer.Token().Data), " ")
			if text != "" {
				b.WriteString(text)
				b.WriteByte('\n')
			}
		}
	}
}

func skippedTag(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "iframe":
		return true
	}
	return false
}
