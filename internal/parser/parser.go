// internal/parser/parser.go
package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// SyntaxError describes a piece of the stylesheet that was skipped.
type SyntaxError struct {
	// Context is the selector or declaration text the error refers to.
	Context string
	Msg     string
}

func (e *SyntaxError) Error() string {
	if e.Context == "" {
		return "css: " + e.Msg
	}
	return fmt.Sprintf("css: %s in %q", e.Msg, e.Context)
}

// boxShorthands maps a shorthand to its longhands in top, right, bottom, left order.
var boxShorthands = map[string][4]string{
	"margin":       {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	"padding":      {"padding-top", "padding-right", "padding-bottom", "padding-left"},
	"border-width": {"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"},
}

// Parser reads stylesheets into StyleSheet values.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a stylesheet parser. A nil logger is replaced by a no-op logger.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger.Named("css-parser")}
}

// ParseString parses src with a parser that does not log.
func ParseString(src string) (StyleSheet, error) {
	return NewParser(nil).Parse(src)
}

// Parse reads src and returns every rule it could understand. Skipped
// selectors, declarations and rules are reported through the returned error,
// which combines one *SyntaxError per problem. The stylesheet is returned
// even when the error is non-nil.
func (p *Parser) Parse(src string) (StyleSheet, error) {
	var (
		sheet   StyleSheet
		errs    error
		pending strings.Builder
	)

	input := parse.NewInput(bytes.NewReader([]byte(src)))
	lexer := css.NewParser(input, false)

	for {
		gt, _, data := lexer.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := lexer.Err(); err != nil && err != io.EOF {
				errs = multierr.Append(errs, &SyntaxError{Msg: err.Error()})
			}
			p.logger.Debug("Stylesheet parsed",
				zap.Int("rules", len(sheet.Rules)),
				zap.Int("errors", len(multierr.Errors(errs))))
			return sheet, errs

		case css.BeginAtRuleGrammar:
			p.logger.Debug("Skipping at-rule block", zap.String("rule", string(data)))
			skipBlock(lexer)

		case css.AtRuleGrammar:
			p.logger.Debug("Skipping at-rule", zap.String("rule", string(data)))

		case css.QualifiedRuleGrammar:
			// A selector list split before its block; keep it for the ruleset that follows.
			writeTokens(&pending, data, lexer.Values())
			pending.WriteByte(',')

		case css.BeginRulesetGrammar:
			writeTokens(&pending, data, lexer.Values())
			selectorText := pending.String()
			pending.Reset()

			selectors, selErr := parseSelectorList(selectorText)
			errs = multierr.Append(errs, selErr)

			declarations, declErr := p.parseDeclarations(lexer)
			errs = multierr.Append(errs, declErr)

			if len(selectors) == 0 {
				errs = multierr.Append(errs, &SyntaxError{Context: selectorText, Msg: "rule has no usable selector"})
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selectors: selectors, Declarations: declarations})

		case css.DeclarationGrammar:
			errs = multierr.Append(errs, &SyntaxError{Context: string(data), Msg: "declaration outside of a rule"})
		}
	}
}

// parseDeclarations consumes declarations up to the end of the current ruleset.
func (p *Parser) parseDeclarations(lexer *css.Parser) ([]Declaration, error) {
	var (
		declarations []Declaration
		errs         error
	)
	for {
		gt, _, data := lexer.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return declarations, errs
		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			decls, err := parseDeclaration(name, lexer.Values())
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			declarations = append(declarations, decls...)
		case css.BeginRulesetGrammar, css.BeginAtRuleGrammar:
			skipBlock(lexer)
			errs = multierr.Append(errs, &SyntaxError{Context: string(data), Msg: "nested blocks are not supported"})
		case css.CustomPropertyGrammar:
			p.logger.Debug("Skipping custom property", zap.String("name", string(data)))
		}
	}
}

// parseDeclaration converts one declaration into one or more declarations,
// expanding box shorthands into their longhands.
func parseDeclaration(name string, tokens []css.Token) ([]Declaration, error) {
	groups := splitComponents(stripImportant(tokens))
	context := name + ": " + joinTokens(tokens)
	if len(groups) == 0 {
		return nil, &SyntaxError{Context: context, Msg: "missing value"}
	}

	values := make([]Value, 0, len(groups))
	for _, group := range groups {
		if len(group) != 1 {
			return nil, &SyntaxError{Context: context, Msg: "unsupported value"}
		}
		v, err := parseComponent(group[0])
		if err != nil {
			return nil, &SyntaxError{Context: context, Msg: err.Error()}
		}
		values = append(values, v)
	}

	longhands, isShorthand := boxShorthands[name]
	if !isShorthand {
		if len(values) != 1 {
			return nil, &SyntaxError{Context: context, Msg: "expected a single value"}
		}
		return []Declaration{{Name: name, Value: values[0]}}, nil
	}

	var top, right, bottom, left Value
	switch len(values) {
	case 1:
		top, right, bottom, left = values[0], values[0], values[0], values[0]
	case 2:
		top, right, bottom, left = values[0], values[1], values[0], values[1]
	case 3:
		top, right, bottom, left = values[0], values[1], values[2], values[1]
	case 4:
		top, right, bottom, left = values[0], values[1], values[2], values[3]
	default:
		return nil, &SyntaxError{Context: context, Msg: "shorthand takes one to four values"}
	}
	return []Declaration{
		{Name: longhands[0], Value: top},
		{Name: longhands[1], Value: right},
		{Name: longhands[2], Value: bottom},
		{Name: longhands[3], Value: left},
	}, nil
}

func parseComponent(t css.Token) (Value, error) {
	text := string(t.Data)
	switch t.TokenType {
	case css.DimensionToken:
		num, unit := splitDimension(text)
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid length %q", text)
		}
		if !strings.EqualFold(unit, "px") {
			return Value{}, fmt.Errorf("unsupported unit %q", unit)
		}
		return PxLength(f), nil
	case css.NumberToken:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || f != 0 {
			return Value{}, fmt.Errorf("length %q needs a unit", text)
		}
		return PxLength(0), nil
	case css.IdentToken:
		return Keyword(strings.ToLower(text)), nil
	case css.HashToken:
		c, ok := parseHexColor(text)
		if !ok {
			return Value{}, fmt.Errorf("invalid color %q", text)
		}
		return Value{Kind: ColorValue, Color: c}, nil
	}
	return Value{}, fmt.Errorf("unsupported value %q", text)
}

// splitDimension splits a dimension token such as "10.5px" or "1.5e1px" into
// its number and unit. The number is the longest prefix matching the CSS
// number grammar; everything after it is the unit.
func splitDimension(s string) (string, string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	i = skipDigits(s, i)
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i = skipDigits(s, i+1)
	}
	// An exponent needs at least one digit, so "2em" keeps "em" as its unit.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			i = skipDigits(s, j)
		}
	}
	return s[:i], s[i:]
}

func skipDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func parseHexColor(hex string) (Color, bool) {
	hex = strings.TrimPrefix(hex, "#")
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return Color{}, false
		}
	}
	d := func(i int) uint8 {
		v, _ := hexDigit(hex[i])
		return v
	}
	switch len(hex) {
	case 3:
		return Color{R: d(0) * 17, G: d(1) * 17, B: d(2) * 17, A: 255}, true
	case 6:
		return Color{R: d(0)<<4 | d(1), G: d(2)<<4 | d(3), B: d(4)<<4 | d(5), A: 255}, true
	}
	return Color{}, false
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// stripImportant drops a trailing "!important". Priorities are not modelled,
// so the declaration is treated as a normal one.
func stripImportant(tokens []css.Token) []css.Token {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end == 0 || tokens[end-1].TokenType != css.IdentToken || !strings.EqualFold(string(tokens[end-1].Data), "important") {
		return tokens
	}
	bang := end - 2
	for bang >= 0 && tokens[bang].TokenType == css.WhitespaceToken {
		bang--
	}
	if bang < 0 || tokens[bang].TokenType != css.DelimToken || string(tokens[bang].Data) != "!" {
		return tokens
	}
	return tokens[:bang]
}

// splitComponents groups tokens separated by whitespace.
func splitComponents(tokens []css.Token) [][]css.Token {
	var (
		groups  [][]css.Token
		current []css.Token
	)
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if len(current) > 0 {
				groups = append(groups, current)
				current = nil
			}
			continue
		}
		current = append(current, t)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

func writeTokens(b *strings.Builder, data []byte, values []css.Token) {
	b.Write(data)
	for _, v := range values {
		b.Write(v.Data)
	}
}

// skipBlock consumes grammar events until the block opened by the last event closes.
func skipBlock(lexer *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := lexer.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseSelectorList splits a comma separated selector list and parses each
// entry, keeping the order in which they were written.
func parseSelectorList(text string) ([]Selector, error) {
	var (
		selectors []Selector
		errs      error
	)
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sel, err := parseSelector(part)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		selectors = append(selectors, sel)
	}
	return selectors, errs
}

// parseSelector parses a compound such as div#id.class1.class2 or *.
func parseSelector(text string) (Selector, error) {
	var sel Selector
	pos := 0

	if text[0] == '*' {
		pos++
	} else if isIdentChar(text[0]) {
		ident := readIdent(text, pos)
		sel.TagName = strings.ToLower(ident)
		pos += len(ident)
	}

	for pos < len(text) {
		marker := text[pos]
		if marker != '#' && marker != '.' {
			return Selector{}, &SyntaxError{Context: text, Msg: fmt.Sprintf("unsupported selector syntax at %q", text[pos:])}
		}
		pos++
		ident := readIdent(text, pos)
		if ident == "" {
			return Selector{}, &SyntaxError{Context: text, Msg: "missing name after " + string(marker)}
		}
		pos += len(ident)
		if marker == '#' {
			if sel.ID != "" {
				return Selector{}, &SyntaxError{Context: text, Msg: "more than one id"}
			}
			sel.ID = ident
		} else {
			sel.Classes = append(sel.Classes, ident)
		}
	}
	return sel, nil
}

func readIdent(s string, start int) string {
	end := start
	for end < len(s) && isIdentChar(s[end]) {
		end++
	}
	return s[start:end]
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' || c >= 0x80
}
