package markup

import (
	"sort"

	"github.com/microcosm-cc/bluemonday"
)

// Bluemonday builds a bluemonday policy equivalent to p, for a second pass over HTML that did not
// come from Tokenize, such as rendered markdown.
func (p *Policy) Bluemonday() *bluemonday.Policy {
	schemes := make([]string, 0, len(allowedSchemes))
	for s := range allowedSchemes {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)

	bm := bluemonday.NewPolicy()
	bm.AllowURLSchemes(schemes...)
	bm.AllowRelativeURLs(true)
	bm.RequireParseableURLs(true)
	for _, tag := range p.Tags() {
		attrs := p.Attrs(tag)
		if len(attrs) == 0 {
			bm.AllowElements(tag)
			continue
		}
		bm.AllowAttrs(attrs...).OnElements(tag)
		// An anchor whose href was rejected is kept without one.
		bm.AllowNoAttrs().OnElements(tag)
	}
	return bm
}
