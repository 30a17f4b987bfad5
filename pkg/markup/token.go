package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tokenize splits s into text runs and start, end and self-closing tags.  It never fails: a '<'
// that cannot open markup stays in its text run, and a tag, comment or declaration still open at
// the end of input comes back as literal text from its '<' onward.  Closed comments, declarations
// and processing instructions produce no token.
//
// Text is taken raw, so entities pass through undecoded.  Attribute values are decoded.  Script,
// style and the other raw text elements are tokenized like any other element.
func Tokenize(s string) []html.Token {
	var tokens []html.Token
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// Reading from a string only fails at EOF; Raw holds a tag left open there.
			return appendText(tokens, z.Raw())
		case html.TextToken:
			tokens = appendText(tokens, z.Raw())
		case html.StartTagToken, html.SelfClosingTagToken:
			// <script/> also switches the tokenizer to raw text.
			z.NextIsNotRawText()
			tokens = append(tokens, tagToken(z, tt))
		case html.EndTagToken:
			tokens = append(tokens, tagToken(z, tt))
		case html.CommentToken, html.DoctypeToken:
			if raw := z.Raw(); !closed(raw) {
				tokens = appendText(tokens, raw)
			}
		}
	}
}

// tagToken builds the current tag, keeping the first occurrence of each attribute.
func tagToken(z *html.Tokenizer, tt html.TokenType) html.Token {
	name, moreAttr := z.TagName()
	tok := html.Token{Type: tt, DataAtom: atom.Lookup(name), Data: string(name)}
	if tt == html.EndTagToken {
		return tok
	}
	for moreAttr {
		var key, val []byte
		key, val, moreAttr = z.TagAttr()
		addAttr(&tok, string(key), string(val))
	}
	return tok
}

// closed reports whether a comment or declaration ran to its closing '>' rather than to EOF.
func closed(raw []byte) bool {
	s := string(raw)
	if strings.HasPrefix(s, "<!--") {
		return len(s) >= len("<!-->") && (strings.HasSuffix(s, "-->") || strings.HasSuffix(s, "--!>"))
	}
	return strings.HasSuffix(s, ">")
}

func appendText(tokens []html.Token, raw []byte) []html.Token {
	if len(raw) == 0 {
		return tokens
	}
	return append(tokens, html.Token{Type: html.TextToken, Data: string(raw)})
}

// addAttr appends key=val to tok unless the key is empty or already present.
func addAttr(tok *html.Token, key, val string) {
	key = strings.ToLower(stripControl(key))
	if key == "" {
		return
	}
	for _, a := range tok.Attr {
		if a.Key == key {
			return
		}
	}
	tok.Attr = append(tok.Attr, html.Attribute{Key: key, Val: stripControl(val)})
}

// stripControl removes ASCII control characters.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < ' ' || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
