// internal/parser/css.go
package parser

import "strings"

// Declaration is a property name paired with its value (e.g., margin-top: 10px).
type Declaration struct {
	Name  string
	Value Value
}

// Selector is a simple selector: an optional tag name, an optional ID and a
// set of class names. Empty strings mean the part is absent.
type Selector struct {
	TagName string
	ID      string
	Classes []string
}

// Specificity is (id count, class count, tag count), compared lexicographically.
type Specificity [3]int

// Less reports whether s sorts strictly before other.
func (s Specificity) Less(other Specificity) bool {
	for i := range s {
		if s[i] != other[i] {
			return s[i] < other[i]
		}
	}
	return false
}

// Specificity calculates the specificity of the selector.
func (s Selector) Specificity() Specificity {
	var spec Specificity
	if s.ID != "" {
		spec[0] = 1
	}
	spec[1] = len(s.Classes)
	if s.TagName != "" {
		spec[2] = 1
	}
	return spec
}

func (s Selector) String() string {
	var b strings.Builder
	b.WriteString(s.TagName)
	if s.ID != "" {
		b.WriteString("#" + s.ID)
	}
	for _, class := range s.Classes {
		b.WriteString("." + class)
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}

// Rule is a list of selectors sharing one list of declarations.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// StyleSheet is an ordered list of rules.
type StyleSheet struct {
	Rules []Rule
}
