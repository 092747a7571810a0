package metadata

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText reduces raw HTML to readable plain text, dropping scripts,
// styles and other noise, collapsing whitespace, and truncating to
// maxLength characters. Unparseable input yields "".
func ExtractText(rawHTML string, maxLength int) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var builder strings.Builder
	collectText(doc, &builder)

	text := strings.Join(strings.Fields(builder.String()), " ")
	if maxLength > 0 && len(text) > maxLength {
		text = text[:maxLength] + "..."
	}
	return text
}

func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}
	if n.Type == html.ElementNode && isSkippedElement(strings.ToLower(n.Data)) {
		return
	}
	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			builder.WriteString(text)
			builder.WriteString(" ")
		}
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, builder)
	}
}

// isSkippedElement reports elements whose content is never readable text.
func isSkippedElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "iframe", "svg", "head", "template":
		return true
	}
	return false
}
