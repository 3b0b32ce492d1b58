// internal/dom/dom.go
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// NodeType distinguishes element nodes from text nodes.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// ElementData holds the tag name and attributes of an element node.
type ElementData struct {
	TagName    string
	Attributes map[string]string
}

// Node is a node of the document tree consumed by the style engine.
type Node struct {
	Type     NodeType
	Text     string
	Element  ElementData
	Children []*Node
	// Source is the parsed markup node this node was converted from, if any.
	Source *html.Node
}

// Elem creates an element node.
func Elem(tagName string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{
		Type:     ElementNode,
		Element:  ElementData{TagName: tagName, Attributes: attrs},
		Children: children,
	}
}

// Text creates a text node.
func Text(data string) *Node {
	return &Node{Type: TextNode, Text: data}
}

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

// ID returns the value of the id attribute.
func (e *ElementData) ID() (string, bool) {
	id, ok := e.Attributes["id"]
	return id, ok
}

// Classes returns the set of class names. The class attribute is split on
// single spaces, so repeated spaces yield an empty entry that never matches a
// parsed class selector.
func (e *ElementData) Classes() map[string]struct{} {
	classes := make(map[string]struct{})
	classList, ok := e.Attributes["class"]
	if !ok {
		return classes
	}
	for _, class := range strings.Split(classList, " ") {
		classes[class] = struct{}{}
	}
	return classes
}

// Walk visits n and its descendants in document order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// FindByID returns the first element whose id attribute equals id.
func (n *Node) FindByID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.IsElement() {
			if v, ok := c.Element.ID(); ok && v == id {
				found = c
				return false
			}
		}
		return true
	})
	return found
}
