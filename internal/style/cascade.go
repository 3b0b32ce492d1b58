// internal/style/cascade.go
package style

import (
	"sort"

	"github.com/xkilldash9x/boxflow/internal/dom"
	"github.com/xkilldash9x/boxflow/internal/parser"
)

// PropertyMap maps property names to their specified values.
type PropertyMap map[string]parser.Value

// SpecifiedValues resolves the cascade for one element. Matching rules are
// applied from lowest to highest specificity; among equal specificities the
// rule that appears later in the sheet wins, as does the later declaration
// within one rule.
func SpecifiedValues(elem *dom.ElementData, sheet *parser.StyleSheet) PropertyMap {
	values := make(PropertyMap)
	rules := MatchingRules(elem, sheet)

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Specificity.Less(rules[j].Specificity)
	})

	for _, matched := range rules {
		for _, decl := range matched.Rule.Declarations {
			values[decl.Name] = decl.Value
		}
	}
	return values
}
