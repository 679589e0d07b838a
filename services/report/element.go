package report

// Element is a node of the report document. An element with an empty Tag is
// a text node holding Text; otherwise it is a tagged element with ordered
// attributes and children. Serializers live apart from the tree.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	Text     string
}

type Attr struct {
	Key   string
	Value string
}

func NewElement(tag string, attrs []Attr, children ...*Element) *Element {
	return &Element{Tag: tag, Attrs: attrs, Children: children}
}

func NewText(text string) *Element {
	return &Element{Text: text}
}

func (e *Element) IsText() bool {
	return len(e.Tag) == 0
}

func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Attr returns the value of the attribute named key.
func (e *Element) Attr(key string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// TextContent concatenates all text below e, markup stripped.
func (e *Element) TextContent() string {
	if e.IsText() {
		return e.Text
	}

	var text string
	for _, child := range e.Children {
		text += child.TextContent()
	}
	return text
}
