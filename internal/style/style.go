// internal/style/style.go
package style

import (
	"github.com/xkilldash9x/boxflow/internal/dom"
	"github.com/xkilldash9x/boxflow/internal/parser"
	"go.uber.org/zap"
)

// Display is the box generation mode of a node.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayNone:
		return "none"
	default:
		return "inline"
	}
}

// StyledNode pairs a document node with its specified values. The document
// node is borrowed and must outlive the styled tree.
type StyledNode struct {
	Node            *dom.Node
	SpecifiedValues PropertyMap
	Children        []*StyledNode
}

// Value returns the specified value of a property, if any.
func (sn *StyledNode) Value(name string) (parser.Value, bool) {
	v, ok := sn.SpecifiedValues[name]
	return v, ok
}

// Lookup returns the value of name, or of fallbackName if name is not
// specified, or def if neither is. Values are never taken from ancestors.
func (sn *StyledNode) Lookup(name, fallbackName string, def parser.Value) parser.Value {
	if v, ok := sn.Value(name); ok {
		return v
	}
	if fallbackName != "" {
		if v, ok := sn.Value(fallbackName); ok {
			return v
		}
	}
	return def
}

// Display maps the display keyword to a Display. Anything other than block
// or none, including no value at all, is inline.
func (sn *StyledNode) Display() Display {
	v, ok := sn.Value("display")
	if !ok || v.Kind != parser.KeywordValue {
		return DisplayInline
	}
	switch v.Keyword {
	case "block":
		return DisplayBlock
	case "none":
		return DisplayNone
	}
	return DisplayInline
}

// Engine builds styled trees against a single stylesheet.
type Engine struct {
	sheet  parser.StyleSheet
	logger *zap.Logger
}

// NewEngine creates a style engine. A nil logger is replaced by a no-op logger.
func NewEngine(sheet parser.StyleSheet, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{sheet: sheet, logger: logger.Named("style")}
}

// BuildTree mirrors the document tree, attaching specified values to every
// element. Text nodes get an empty map. Children keep document order and
// nothing is filtered out, display:none included.
func (se *Engine) BuildTree(root *dom.Node) *StyledNode {
	if root == nil {
		return nil
	}
	count := 0
	styled := se.buildTreeRecursive(root, &count)
	se.logger.Debug("Style tree built", zap.Int("nodes", count), zap.Int("rules", len(se.sheet.Rules)))
	return styled
}

func (se *Engine) buildTreeRecursive(node *dom.Node, count *int) *StyledNode {
	*count++
	values := PropertyMap{}
	if node.IsElement() {
		values = SpecifiedValues(&node.Element, &se.sheet)
	}

	sn := &StyledNode{
		Node:            node,
		SpecifiedValues: values,
		Children:        make([]*StyledNode, 0, len(node.Children)),
	}
	for _, child := range node.Children {
		sn.Children = append(sn.Children, se.buildTreeRecursive(child, count))
	}
	return sn
}

// BuildTree styles root with sheet without logging.
func BuildTree(root *dom.Node, sheet parser.StyleSheet) *StyledNode {
	return NewEngine(sheet, nil).BuildTree(root)
}
