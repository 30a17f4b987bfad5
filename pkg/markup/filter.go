package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Filter returns the subset of tokens that p permits.  Text tokens always pass.  Allowed tags keep
// only the attributes p lists for them, with href values checked by SanitizeHref.  Disallowed tags
// are dropped, but the text between them is not: it was tokenized separately and passes as text.
func Filter(tokens []html.Token, p *Policy) []html.Token {
	out := make([]html.Token, 0, len(tokens))
	for _, t := range tokens {
		switch t.Type {
		case html.TextToken:
			out = append(out, t)
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			a := t.DataAtom
			if a == 0 {
				a = atom.Lookup([]byte(strings.ToLower(t.Data)))
			}
			if !p.AllowsTag(a) {
				continue
			}
			t.DataAtom = a
			t.Data = a.String()
			if t.Type == html.EndTagToken {
				t.Attr = nil
			} else {
				t.Attr = filterAttrs(a, t.Attr, p)
			}
			out = append(out, t)
		}
	}
	return out
}

// filterAttrs returns a new slice holding the first occurrence of each attribute p allows on tag.
func filterAttrs(tag atom.Atom, attrs []html.Attribute, p *Policy) []html.Attribute {
	var out []html.Attribute
	seen := make(map[atom.Atom]bool, len(attrs))
	for _, a := range attrs {
		key := atom.Lookup([]byte(strings.ToLower(a.Key)))
		if !p.AllowsAttr(tag, key) || seen[key] {
			continue
		}
		seen[key] = true
		val := a.Val
		if key == atom.Href {
			var ok bool
			if val, ok = SanitizeHref(val); !ok {
				continue
			}
		}
		out = append(out, html.Attribute{Key: key.String(), Val: val})
	}
	return out
}
