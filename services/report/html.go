package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WriteHTML serializes the tree as a complete HTML document. Escaping is left
// to the html package.
func WriteHTML(w io.Writer, root *Element) error {
	document := &html.Node{Type: html.DocumentNode}
	document.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	document.AppendChild(toHTMLNode(root))

	if err := html.Render(w, document); err != nil {
		return fmt.Errorf("could not render report: %w", err)
	}

	return nil
}

func RenderHTML(root *Element) (string, error) {
	var builder strings.Builder
	if err := WriteHTML(&builder, root); err != nil {
		return "", err
	}
	return builder.String(), nil
}

func toHTMLNode(element *Element) *html.Node {
	if element.IsText() {
		return &html.Node{Type: html.TextNode, Data: element.Text}
	}

	node := &html.Node{
		Type:     html.ElementNode,
		Data:     element.Tag,
		DataAtom: atom.Lookup([]byte(element.Tag)),
	}
	for _, attr := range element.Attrs {
		node.Attr = append(node.Attr, html.Attribute{Key: attr.Key, Val: attr.Value})
	}
	for _, child := range element.Children {
		node.AppendChild(toHTMLNode(child))
	}

	return node
}
