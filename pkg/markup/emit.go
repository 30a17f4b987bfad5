package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Emit concatenates tokens back into a string.  Text is written as-is, except that a '<' which
// would open a tag, comment or declaration is written as &lt;.  That check looks past the end of
// a text token into whatever follows it, since Filter may have dropped a tag in between.  Tags are
// rebuilt from their name and attributes, with attribute values escaped and double-quoted.
func Emit(tokens []html.Token) string {
	b := &strings.Builder{}
	for i, t := range tokens {
		switch t.Type {
		case html.TextToken:
			writeText(b, t.Data, nextByte(tokens[i+1:]))
		case html.StartTagToken, html.SelfClosingTagToken:
			b.WriteByte('<')
			b.WriteString(t.Data)
			for _, a := range t.Attr {
				b.WriteByte(' ')
				b.WriteString(a.Key)
				b.WriteString(`="`)
				b.WriteString(html.EscapeString(a.Val))
				b.WriteByte('"')
			}
			b.WriteByte('>')
		case html.EndTagToken:
			b.WriteString("</")
			b.WriteString(t.Data)
			b.WriteByte('>')
		}
	}
	return b.String()
}

// writeText writes s, escaping each '<' that opens markup.  next is the first byte written after
// s, or 0 at the end of output.
func writeText(b *strings.Builder, s string, next byte) {
	for {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			b.WriteString(s)
			return
		}
		b.WriteString(s[:i])
		follow := next
		if i+1 < len(s) {
			follow = s[i+1]
		}
		if opensMarkup(follow) {
			b.WriteString("&lt;")
		} else {
			b.WriteByte('<')
		}
		s = s[i+1:]
	}
}

// nextByte returns the first byte Emit will write for tokens.
func nextByte(tokens []html.Token) byte {
	for _, t := range tokens {
		switch t.Type {
		case html.TextToken:
			if t.Data != "" {
				return t.Data[0]
			}
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			return '<'
		}
	}
	return 0
}

// opensMarkup reports whether c following '<' starts a tag, end tag, comment or declaration.
func opensMarkup(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '/' || c == '!' || c == '?'
}

// Sanitize runs s through Tokenize, Filter and Emit under p.
func Sanitize(s string, p *Policy) string {
	return Emit(Filter(Tokenize(s), p))
}
