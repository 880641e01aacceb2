package sprite

import (
	"fmt"
	"strconv"
	"strings"
)

// Stylesheet is the ordered list of rules written next to the sprite
type Stylesheet struct {
	Rules []Rule
}

// Add appends a rule
func (s *Stylesheet) Add(r Rule) {
	s.Rules = append(s.Rules, r)
}

// String serializes the stylesheet compactly: sel1,sel2{p:v;p:v;} with no
// whitespace between rules.
func (s Stylesheet) String() string {
	var b strings.Builder
	for _, r := range s.Rules {
		r.writeTo(&b)
	}
	return b.String()
}

// String serializes a single rule
func (r Rule) String() string {
	var b strings.Builder
	r.writeTo(&b)
	return b.String()
}

func (r Rule) writeTo(b *strings.Builder) {
	b.WriteString(strings.Join(r.Selectors, ","))
	b.WriteByte('{')
	for _, d := range r.Declarations {
		b.WriteString(d.Property)
		b.WriteByte(':')
		b.WriteString(d.Value)
		b.WriteByte(';')
	}
	b.WriteByte('}')
}

// namespaceRule is the shared rule matching every class under the namespace
func namespaceRule(n Namer, imageURL string, size int) Rule {
	prefix := quoteCSSString(n.Prefix())
	r := Rule{
		Selectors: []string{
			`[class^=` + prefix + `]`,
			`[class*=` + quoteCSSString(" "+n.Prefix()) + `]`,
		},
	}
	r.Set("background-image", "url("+quoteCSSString(imageURL)+")").
		Set("background-position", "0 0").
		Set("background-repeat", "no-repeat").
		Set("display", "inline-block").
		Set("height", px(size)).
		Set("vertical-align", "middle").
		Set("width", px(size))
	return r
}

// imageRule positions class on rec inside the sprite
func imageRule(class string, rec ImageRecord) Rule {
	r := Rule{Selectors: []string{ClassSelector(class)}}
	r.Set("background-position", position(rec.X)).
		Set("width", px(rec.Width)).
		Set("height", px(rec.Height))
	return r
}

// stateRule switches class to the state image on :state, .state, and when a
// wrapper element is in that state.
func stateRule(n Namer, class, state string, rec ImageRecord) Rule {
	sel := ClassSelector(class)
	wrap := ClassSelector(n.Wrapper())
	r := Rule{
		Selectors: []string{
			sel + ":" + state,
			sel + "." + state,
			wrap + ":" + state + " " + sel,
			wrap + "." + state + " " + sel,
		},
	}
	r.Set("background-position", position(rec.X)).
		Set("background-position-x", offsetX(rec.X)).
		Set("width", px(rec.Width)).
		Set("height", px(rec.Height))
	return r
}

// ClassSelector returns the selector matching class, escaping every
// character that cannot appear as is in a CSS identifier:
//
//	img-icon.small -> .img-icon\.small
func ClassSelector(class string) string {
	var b strings.Builder
	b.Grow(len(class) + 1)
	b.WriteByte('.')
	for i, r := range class {
		switch {
		case r == '-' || r == '_' || r >= 0x80,
			r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			// a leading digit, or "-" then a digit, would start a number
			if i == 0 || (i == 1 && class[0] == '-') {
				fmt.Fprintf(&b, "\\%x ", r)
			} else {
				b.WriteRune(r)
			}
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, "\\%x ", r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

// offsetX is the negated horizontal offset: 0px, -10px
func offsetX(x int) string {
	if x == 0 {
		return "0px"
	}
	return "-" + px(x)
}

func position(x int) string {
	return offsetX(x) + " 0"
}

// quoteCSSString wraps s in double quotes, escaping what would end the string
func quoteCSSString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\a `)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
