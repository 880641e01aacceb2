package sprite

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// parserState collects rules while walking the token stream
type parserState struct {
	lexer *css.Lexer
	rules []Rule
	depth int // open at-rule blocks
}

// ParseStylesheet lexes a stylesheet into its rules, keeping selector and
// declaration order. Whitespace inside selectors and values is collapsed to a
// single space; comments are dropped. Blocks of at-rules such as @media are
// entered and their rules returned inline.
func ParseStylesheet(content string) ([]Rule, error) {
	s := &parserState{lexer: css.NewLexer(parse.NewInputString(content))}

	for {
		tt, text := s.lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := s.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return s.rules, err
			}
			return s.rules, nil
		case css.WhitespaceToken, css.CommentToken, css.CDOToken, css.CDCToken:
			continue
		case css.AtKeywordToken:
			s.handleAtRule()
		case css.RightBraceToken:
			if s.depth > 0 {
				s.depth--
			}
		default:
			s.handleRule(tt, text)
		}
	}
}

// handleAtRule skips the prelude of an at-rule. A block opened by it is
// entered so that nested rules are still read.
func (s *parserState) handleAtRule() {
	for {
		tt, _ := s.lexer.Next()
		switch tt {
		case css.ErrorToken, css.SemicolonToken:
			return
		case css.LeftBraceToken:
			s.depth++
			return
		}
	}
}

// handleRule reads a selector list starting with the given token, then its
// declaration block.
func (s *parserState) handleRule(tt css.TokenType, text []byte) {
	var (
		selectors []string
		current   strings.Builder
		brackets  int
	)
	flush := func() {
		if sel := strings.TrimSpace(current.String()); sel != "" {
			selectors = append(selectors, sel)
		}
		current.Reset()
	}

	for {
		switch tt {
		case css.ErrorToken:
			return
		case css.CommentToken:
		case css.WhitespaceToken:
			current.WriteByte(' ')
		case css.LeftBracketToken:
			brackets++
			current.Write(text)
		case css.RightBracketToken:
			brackets--
			current.Write(text)
		case css.CommaToken:
			if brackets > 0 {
				current.Write(text)
			} else {
				flush()
			}
		case css.LeftBraceToken:
			flush()
			s.rules = append(s.rules, Rule{
				Selectors:    selectors,
				Declarations: s.extractDeclarations(),
			})
			return
		default:
			current.Write(text)
		}
		tt, text = s.lexer.Next()
	}
}

// extractDeclarations reads property: value pairs until }
func (s *parserState) extractDeclarations() []Declaration {
	var (
		decls    []Declaration
		property string
		value    strings.Builder
		inValue  bool
	)
	save := func() {
		if v := collapseSpace(value.String()); property != "" && v != "" {
			decls = append(decls, Declaration{Property: property, Value: v})
		}
		property = ""
		inValue = false
		value.Reset()
	}

	for {
		tt, text := s.lexer.Next()
		switch {
		case tt == css.ErrorToken || tt == css.RightBraceToken:
			save()
			return decls
		case tt == css.CommentToken:
		case tt == css.SemicolonToken:
			save()
		case !inValue && tt == css.IdentToken && property == "":
			property = strings.ToLower(string(text))
		case !inValue && tt == css.ColonToken && property != "":
			inValue = true
		case inValue && tt == css.WhitespaceToken:
			value.WriteByte(' ')
		case inValue:
			value.Write(text)
		}
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SelectorClasses returns the class names referenced by a selector in order
// of appearance: ".wrap-img:hover .img-ok" -> [wrap-img img-ok].
func SelectorClasses(selector string) []string {
	lexer := css.NewLexer(parse.NewInputString(selector))

	var classes []string
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			return classes
		}
		if tt == css.DelimToken && len(text) > 0 && text[0] == '.' {
			if tt2, name := lexer.Next(); tt2 == css.IdentToken {
				classes = append(classes, unescapeIdent(string(name)))
			}
		}
	}
}

// unescapeIdent resolves the backslash escapes of an identifier:
// img-icon\.small -> img-icon.small, \31 a -> 1a.
func unescapeIdent(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		j := i
		for j < len(s) && j-i < 6 && isHex(s[j]) {
			j++
		}
		if j == i {
			b.WriteByte(s[i])
			continue
		}
		code, err := strconv.ParseUint(s[i:j], 16, 32)
		if err != nil || code == 0 || code > unicode.MaxRune {
			code = unicode.ReplacementChar
		}
		b.WriteRune(rune(code))
		if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
			j++
		}
		i = j - 1
	}
	return b.String()
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// ClassPrefix extracts the value of a [class^="..."] attribute selector,
// which is how the namespace rule announces the shared class prefix.
func ClassPrefix(selector string) (string, bool) {
	lexer := css.NewLexer(parse.NewInputString(selector))

	var attr string
	prefixMatch := false
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return "", false
		case css.LeftBracketToken:
			attr, prefixMatch = "", false
		case css.IdentToken:
			attr = string(text)
		case css.PrefixMatchToken:
			prefixMatch = true
		case css.StringToken:
			if attr == "class" && prefixMatch {
				return unquoteCSSString(string(text)), true
			}
		}
	}
}

// unquoteCSSString reverses quoteCSSString for the escapes it produces
func unquoteCSSString(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		if s[i] == 'a' || s[i] == 'A' {
			b.WriteByte('\n')
			if i+1 < len(s) && s[i+1] == ' ' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
