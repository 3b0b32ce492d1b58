package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/boxflow/internal/dom"
	"github.com/xkilldash9x/boxflow/internal/parser"
)

func element(tag string, attrs map[string]string) *dom.ElementData {
	return &dom.Elem(tag, attrs).Element
}

func TestMatches(t *testing.T) {
	div := element("div", map[string]string{"id": "main", "class": "a b"})

	tests := []struct {
		name     string
		selector parser.Selector
		want     bool
	}{
		{"Universal", parser.Selector{}, true},
		{"Tag", parser.Selector{TagName: "div"}, true},
		{"Wrong Tag", parser.Selector{TagName: "p"}, false},
		{"ID", parser.Selector{ID: "main"}, true},
		{"Wrong ID", parser.Selector{ID: "other"}, false},
		{"All Classes", parser.Selector{Classes: []string{"a", "b"}}, true},
		{"Missing Class", parser.Selector{Classes: []string{"a", "c"}}, false},
		{"Compound", parser.Selector{TagName: "div", ID: "main", Classes: []string{"b"}}, true},
		{"Compound With Wrong Part", parser.Selector{TagName: "span", ID: "main"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(div, tt.selector))
		})
	}

	t.Run("No ID Attribute", func(t *testing.T) {
		assert.False(t, Matches(element("div", nil), parser.Selector{ID: "main"}))
	})

	t.Run("Class Split On Single Spaces", func(t *testing.T) {
		elem := element("div", map[string]string{"class": "a  b"})
		assert.True(t, Matches(elem, parser.Selector{Classes: []string{"a", "b"}}))
	})
}

func TestMatchRule_FirstMatchingSelectorWins(t *testing.T) {
	elem := element("div", map[string]string{"id": "x"})
	rule := &parser.Rule{Selectors: []parser.Selector{{TagName: "div"}, {ID: "x"}}}

	matched, ok := MatchRule(elem, rule)
	require.True(t, ok)
	assert.Equal(t, parser.Specificity{0, 0, 1}, matched.Specificity)
	assert.Same(t, rule, matched.Rule)

	_, ok = MatchRule(elem, &parser.Rule{Selectors: []parser.Selector{{TagName: "p"}}})
	assert.False(t, ok)
}

func TestMatchingRules(t *testing.T) {
	sheet := &parser.StyleSheet{Rules: []parser.Rule{
		{Selectors: []parser.Selector{{TagName: "p"}}},
		{Selectors: []parser.Selector{{TagName: "div"}}},
		{Selectors: []parser.Selector{{}}},
	}}
	matched := MatchingRules(element("div", nil), sheet)
	require.Len(t, matched, 2)
	assert.Same(t, &sheet.Rules[1], matched[0].Rule)
	assert.Same(t, &sheet.Rules[2], matched[1].Rule)
}
