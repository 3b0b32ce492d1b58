// internal/style/matcher.go
package style

import (
	"github.com/xkilldash9x/boxflow/internal/dom"
	"github.com/xkilldash9x/boxflow/internal/parser"
)

// MatchedRule is a rule paired with the specificity it matched with.
type MatchedRule struct {
	Specificity parser.Specificity
	Rule        *parser.Rule
}

// Matches reports whether a simple selector matches the element. Every part
// present in the selector must hold: the tag name, the id and each class.
func Matches(elem *dom.ElementData, sel parser.Selector) bool {
	if sel.TagName != "" && sel.TagName != elem.TagName {
		return false
	}
	if sel.ID != "" {
		if id, ok := elem.ID(); !ok || id != sel.ID {
			return false
		}
	}
	if len(sel.Classes) > 0 {
		classes := elem.Classes()
		for _, class := range sel.Classes {
			if _, ok := classes[class]; !ok {
				return false
			}
		}
	}
	return true
}

// MatchRule tests the rule's selectors in the order they were written and
// reports the specificity of the first one that matches. A more specific
// selector later in the list does not raise it.
func MatchRule(elem *dom.ElementData, rule *parser.Rule) (MatchedRule, bool) {
	for _, sel := range rule.Selectors {
		if Matches(elem, sel) {
			return MatchedRule{Specificity: sel.Specificity(), Rule: rule}, true
		}
	}
	return MatchedRule{}, false
}

// MatchingRules returns every rule of the sheet that matches the element, in
// stylesheet order.
func MatchingRules(elem *dom.ElementData, sheet *parser.StyleSheet) []MatchedRule {
	var matched []MatchedRule
	for i := range sheet.Rules {
		if m, ok := MatchRule(elem, &sheet.Rules[i]); ok {
			matched = append(matched, m)
		}
	}
	return matched
}
