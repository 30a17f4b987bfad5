package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// allowedSchemes lists the URL schemes an href may carry.  Values without a scheme are relative
// and always allowed.
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// SanitizeHref validates an href value, returning it unchanged and true when it is safe to emit.
//
// The scheme is whatever precedes the first ':' once character references are decoded and ASCII
// whitespace and control characters are removed, so "jav&#x09;ascript:" and " JavaScript:" are
// both seen as javascript.  A value with no ':', or whose prefix contains '/', '?' or '#', has no
// scheme and is accepted as a relative or scheme-relative link.
func SanitizeHref(raw string) (string, bool) {
	decoded := html.UnescapeString(raw)
	i := strings.IndexByte(decoded, ':')
	if i < 0 {
		return raw, true
	}
	scheme := strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, decoded[:i])
	if strings.ContainsAny(scheme, "/?#") {
		return raw, true
	}
	if allowedSchemes[strings.ToLower(scheme)] {
		return raw, true
	}
	return "", false
}
