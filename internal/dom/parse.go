package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoRootElement is returned when the markup does not yield an <html> element.
var ErrNoRootElement = errors.New("document has no root element")

// Parse reads markup and converts it into a document tree rooted at the
// <html> element. Comments, doctypes, whitespace-only text and the <head>
// subtree are dropped.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return convert(c), nil
		}
	}
	return nil, ErrNoRootElement
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Node, error) {
	return Parse(strings.NewReader(markup))
}

func convert(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		node := Text(n.Data)
		node.Source = n
		return node
	case html.ElementNode:
		if strings.EqualFold(n.Data, "head") {
			return nil
		}
		attrs := make(map[string]string, len(n.Attr))
		for _, attr := range n.Attr {
			if _, seen := attrs[attr.Key]; !seen {
				attrs[attr.Key] = attr.Val
			}
		}
		node := Elem(strings.ToLower(n.Data), attrs)
		node.Source = n
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				node.Children = append(node.Children, child)
			}
		}
		return node
	default:
		return nil
	}
}

// SourceDocument walks up from the source node of n to the document node of
// the markup it was parsed from.
func SourceDocument(n *Node) *html.Node {
	if n == nil || n.Source == nil {
		return nil
	}
	root := n.Source
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}
