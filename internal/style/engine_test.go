package style

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/boxflow/internal/dom"
	"github.com/xkilldash9x/boxflow/internal/parser"
)

func mustParse(t *testing.T, css string) parser.StyleSheet {
	t.Helper()
	sheet, err := parser.ParseString(css)
	require.NoError(t, err)
	return sheet
}

func TestSpecifiedValues(t *testing.T) {
	target := element("p", map[string]string{"id": "target", "class": "highlight"})

	t.Run("Specificity Ordering", func(t *testing.T) {
		sheet := mustParse(t, `
			#target { width: 3px }
			p.highlight { width: 2px }
			p { width: 1px }
		`)
		values := SpecifiedValues(target, &sheet)
		assert.Equal(t, parser.PxLength(3), values["width"])
	})

	t.Run("Later Rule Wins Tie", func(t *testing.T) {
		sheet := mustParse(t, `.highlight { width: 1px } .highlight { width: 2px }`)
		values := SpecifiedValues(target, &sheet)
		assert.Equal(t, parser.PxLength(2), values["width"])
	})

	t.Run("Later Declaration Wins Within Rule", func(t *testing.T) {
		sheet := mustParse(t, `p { width: 1px; width: 2px }`)
		values := SpecifiedValues(target, &sheet)
		assert.Equal(t, parser.PxLength(2), values["width"])
	})

	t.Run("Stable Sort Keeps Sheet Order", func(t *testing.T) {
		sheet := mustParse(t, `
			p { height: 1px }
			#target { width: 9px }
			p { height: 2px }
			.highlight { height: 5px }
			p { height: 3px }
		`)
		values := SpecifiedValues(target, &sheet)
		assert.Equal(t, parser.PxLength(5), values["height"])
		assert.Equal(t, parser.PxLength(9), values["width"])
	})

	t.Run("Stable Sort Across Many Equal Rules", func(t *testing.T) {
		// Enough rules that a non-stable sort would not fall back to insertion sort.
		var css strings.Builder
		for i := 1; i <= 40; i++ {
			switch i % 4 {
			case 0:
				fmt.Fprintf(&css, "#target { width: %dpx }\n", i)
			case 1:
				fmt.Fprintf(&css, ".highlight { padding-top: %dpx }\n", i)
			default:
				fmt.Fprintf(&css, "p { height: %dpx; margin-top: %dpx }\n", i, i)
			}
		}
		sheet := mustParse(t, css.String())
		require.Len(t, sheet.Rules, 40)

		values := SpecifiedValues(target, &sheet)
		assert.Equal(t, parser.PxLength(39), values["height"], "last of the equal tag rules wins")
		assert.Equal(t, parser.PxLength(39), values["margin-top"])
		assert.Equal(t, parser.PxLength(37), values["padding-top"], "last of the equal class rules wins")
		assert.Equal(t, parser.PxLength(40), values["width"])
	})

	t.Run("First Matching Selector Sets Specificity", func(t *testing.T) {
		elem := element("div", map[string]string{"id": "x"})
		sheet := mustParse(t, `div, #x { width: 1px } div { width: 2px }`)
		values := SpecifiedValues(elem, &sheet)
		assert.Equal(t, parser.PxLength(2), values["width"])
	})

	t.Run("No Matches", func(t *testing.T) {
		sheet := mustParse(t, `span { width: 1px }`)
		assert.Empty(t, SpecifiedValues(target, &sheet))
	})
}

func TestEngine_BuildTree(t *testing.T) {
	sheet := mustParse(t, `div { display: block } .hidden { display: none } span { width: 4px }`)
	root := dom.Elem("div", nil,
		dom.Elem("span", nil, dom.Text("hello")),
		dom.Elem("p", map[string]string{"class": "hidden"}),
	)

	engine := NewEngine(sheet, zaptest.NewLogger(t))
	styled := engine.BuildTree(root)
	require.NotNil(t, styled)

	assert.Same(t, root, styled.Node)
	assert.Equal(t, DisplayBlock, styled.Display())
	require.Len(t, styled.Children, 2, "display:none children are kept in the style tree")

	span := styled.Children[0]
	assert.Equal(t, DisplayInline, span.Display())
	assert.Equal(t, parser.PxLength(4), span.SpecifiedValues["width"])

	require.Len(t, span.Children, 1)
	text := span.Children[0]
	assert.Equal(t, dom.TextNode, text.Node.Type)
	assert.NotNil(t, text.SpecifiedValues)
	assert.Empty(t, text.SpecifiedValues)
	assert.Equal(t, DisplayInline, text.Display())

	assert.Equal(t, DisplayNone, styled.Children[1].Display())

	assert.Nil(t, engine.BuildTree(nil))
}

func TestBuildTree_Idempotent(t *testing.T) {
	sheet := mustParse(t, `div { display: block; margin: auto }`)
	root := dom.Elem("div", nil, dom.Elem("div", nil))
	first := BuildTree(root, sheet)
	second := BuildTree(root, sheet)
	assert.Equal(t, first, second)
}

func TestStyledNode_Lookup(t *testing.T) {
	sn := &StyledNode{SpecifiedValues: PropertyMap{
		"margin-left": parser.PxLength(5),
		"margin":      parser.PxLength(2),
	}}

	assert.Equal(t, parser.PxLength(5), sn.Lookup("margin-left", "margin", parser.Zero))
	assert.Equal(t, parser.PxLength(2), sn.Lookup("margin-top", "margin", parser.Zero))
	assert.Equal(t, parser.Zero, sn.Lookup("padding-top", "padding", parser.Zero))
	assert.Equal(t, parser.Auto, sn.Lookup("width", "", parser.Auto))
}

func TestStyledNode_Display(t *testing.T) {
	tests := []struct {
		name   string
		values PropertyMap
		want   Display
	}{
		{"Absent", PropertyMap{}, DisplayInline},
		{"Block", PropertyMap{"display": parser.Keyword("block")}, DisplayBlock},
		{"None", PropertyMap{"display": parser.Keyword("none")}, DisplayNone},
		{"Inline", PropertyMap{"display": parser.Keyword("inline")}, DisplayInline},
		{"Unknown Keyword", PropertyMap{"display": parser.Keyword("flex")}, DisplayInline},
		{"Not A Keyword", PropertyMap{"display": parser.PxLength(1)}, DisplayInline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sn := &StyledNode{SpecifiedValues: tt.values}
			assert.Equal(t, tt.want, sn.Display())
		})
	}
}
