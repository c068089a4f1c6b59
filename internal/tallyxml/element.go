// Package tallyxml builds the Tally import/export XML wire format from a
// structured element tree. Escaping and well-formedness come from the
// builder itself; no caller ever concatenates markup strings.
package tallyxml

import "strings"

// Attr is one attribute on an element.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the document tree. An element holds either Text or
// Children, never both.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement creates an empty element.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Text creates a leaf element with character data.
func Text(name, value string) *Element {
	return &Element{Name: name, Text: value}
}

// WithAttr adds an attribute and returns the element for chaining.
func (e *Element) WithAttr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Add appends child elements and returns the parent for chaining. Nil
// children are skipped so builders can emit optional fields inline.
func (e *Element) Add(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// AddText appends a text leaf child.
func (e *Element) AddText(name, value string) *Element {
	return e.Add(Text(name, value))
}

// Render serializes the tree into a compact XML string.
func (e *Element) Render() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

func (e *Element) writeTo(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		writeEscaped(b, a.Value)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if len(e.Children) > 0 {
		for _, c := range e.Children {
			c.writeTo(b)
		}
	} else {
		writeEscaped(b, e.Text)
	}
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteByte('>')
}

// writeEscaped escapes the five XML metacharacters. Everything else passes
// through untouched; names were already sanitized upstream.
func writeEscaped(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
}
