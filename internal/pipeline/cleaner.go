package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// nbspReplacer folds the space characters that entity decoding and CJK
// sources produce but `\s` does not cover
var nbspReplacer = strings.NewReplacer("\u00a0", " ", "\u3000", " ")

// CleanHTML reduces page markup to visible text: script/style/noscript/
// iframe subtrees are dropped, entities are decoded by the parser, and
// whitespace is collapsed to single spaces.
func CleanHTML(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// html.Parse is extremely tolerant; treat the rare failure as text
		return CollapseWhitespace(raw)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return CollapseWhitespace(buf.String())
}

// CollapseWhitespace trims and folds whitespace runs to single spaces
func CollapseWhitespace(s string) string {
	s = nbspReplacer.Replace(s)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
